package extraction

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RecordModel struct {
	ID           string         `gorm:"primaryKey;column:id"`
	TranscriptID string         `gorm:"column:transcript_id;index"`
	Transcript   string         `gorm:"column:transcript;type:text"`
	Result       datatypes.JSON `gorm:"column:result"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
}

func (RecordModel) TableName() string {
	return "clinical_extractions"
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&RecordModel{})
}

func (r *Repository) Save(ctx context.Context, rec *RecordModel) error {
	rec.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Repository) FindByID(ctx context.Context, id string) (*RecordModel, error) {
	var rec RecordModel
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
