package report

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReportModel struct {
	ID           string         `gorm:"primaryKey;column:id"`
	ExtractionID string         `gorm:"column:extraction_id;index"`
	TranscriptID string         `gorm:"column:transcript_id;index"`
	Narrative    string         `gorm:"column:narrative;type:text"`
	Sections     datatypes.JSON `gorm:"column:sections"`
	Codes        datatypes.JSON `gorm:"column:codes"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
}

func (ReportModel) TableName() string {
	return "clinical_reports"
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&ReportModel{})
}

func (r *Repository) Save(ctx context.Context, rec *ReportModel) error {
	rec.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Repository) FindByID(ctx context.Context, id string) (*ReportModel, error) {
	var rec ReportModel
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
