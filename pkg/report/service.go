package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clinscribe-ai/platform/pkg/common/kafka"
	"github.com/clinscribe-ai/platform/pkg/common/logger"
	"github.com/clinscribe-ai/platform/pkg/common/models"
	"github.com/clinscribe-ai/platform/pkg/observability/metrics"
	"github.com/clinscribe-ai/platform/pkg/summary"
	"github.com/clinscribe-ai/platform/pkg/terminology"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("report not found")

// Generator produces a structured narrative for a transcript. Satisfied by
// the narrative-service HTTP client.
type Generator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}

// Report is the clinician-facing assembly: the generated narrative split
// into sections, plus terminology codes for the extracted concepts.
type Report struct {
	ID           string                         `json:"id"`
	ExtractionID string                         `json:"extraction_id,omitempty"`
	TranscriptID string                         `json:"transcript_id,omitempty"`
	Narrative    string                         `json:"narrative"`
	Sections     summary.Sections               `json:"sections"`
	Codes        map[string]terminology.Concept `json:"codes,omitempty"`
	CreatedAt    time.Time                      `json:"created_at"`
}

type Service struct {
	generator Generator
	catalog   terminology.Catalog
	repo      *Repository
	producer  *kafka.Producer
	cache     *redis.Client
	cacheTTL  time.Duration
}

func NewService(generator Generator, catalog terminology.Catalog, repo *Repository,
	producer *kafka.Producer, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		generator: generator,
		catalog:   catalog,
		repo:      repo,
		producer:  producer,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Assemble generates the narrative for a transcript, segments it into
// sections, annotates the extracted concepts with terminology codes and
// persists the result.
func (s *Service) Assemble(ctx context.Context, extractionID, transcriptID, transcript string,
	result models.ExtractionResult) (*Report, error) {

	narrative, err := s.generator.Generate(ctx, transcript)
	if err != nil {
		metrics.IncReportsFailed()
		return nil, fmt.Errorf("generating narrative: %w", err)
	}

	sections := summary.Parse(narrative)
	metrics.IncSectionsParsed()

	rep := &Report{
		ID:           uuid.New().String(),
		ExtractionID: extractionID,
		TranscriptID: transcriptID,
		Narrative:    narrative,
		Sections:     sections,
		Codes:        AnnotateCodes(s.catalog, result),
		CreatedAt:    time.Now().UTC(),
	}

	sectionsJSON, err := json.Marshal(rep.Sections)
	if err != nil {
		return nil, fmt.Errorf("marshaling sections: %w", err)
	}
	codesJSON, err := json.Marshal(rep.Codes)
	if err != nil {
		return nil, fmt.Errorf("marshaling codes: %w", err)
	}

	record := &ReportModel{
		ID:           rep.ID,
		ExtractionID: extractionID,
		TranscriptID: transcriptID,
		Narrative:    narrative,
		Sections:     datatypes.JSON(sectionsJSON),
		Codes:        datatypes.JSON(codesJSON),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		metrics.IncReportsFailed()
		return nil, fmt.Errorf("persisting report: %w", err)
	}
	rep.CreatedAt = record.CreatedAt

	metrics.IncReportsAssembled()

	if s.producer != nil {
		payload := map[string]interface{}{
			"report_id":     rep.ID,
			"extraction_id": extractionID,
			"transcript_id": transcriptID,
		}
		if err := s.producer.PublishEvent(ctx, "report", "report-service", payload); err != nil {
			logger.Log.WithError(err).Error("failed to publish report event")
		}
	}

	return rep, nil
}

// Get returns an assembled report by ID, consulting the read cache first.
func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, "report:"+id).Bytes(); err == nil {
			var rep Report
			if err := json.Unmarshal(data, &rep); err == nil {
				return &rep, nil
			}
		}
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rep := &Report{
		ID:           rec.ID,
		ExtractionID: rec.ExtractionID,
		TranscriptID: rec.TranscriptID,
		Narrative:    rec.Narrative,
		CreatedAt:    rec.CreatedAt,
	}
	if err := json.Unmarshal(rec.Sections, &rep.Sections); err != nil {
		return nil, fmt.Errorf("decoding stored sections: %w", err)
	}
	if len(rec.Codes) > 0 {
		if err := json.Unmarshal(rec.Codes, &rep.Codes); err != nil {
			return nil, fmt.Errorf("decoding stored codes: %w", err)
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(rep); err == nil {
			_ = s.cache.Set(ctx, "report:"+id, data, s.cacheTTL).Err()
		}
	}

	return rep, nil
}

// HandleExtractionEvent assembles a report for each extraction event coming
// off the bus.
func (s *Service) HandleExtractionEvent(ctx context.Context, event models.Event) error {
	payload, err := decodeExtractionEvent(event)
	if err != nil {
		logger.Log.WithError(err).WithField("event_id", event.ID).Warn("skipping malformed extraction event")
		return nil
	}

	_, err = s.Assemble(ctx, payload.ExtractionID, payload.TranscriptID, payload.Transcript, payload.Result)
	return err
}

type extractionEventPayload struct {
	ExtractionID string                  `json:"extraction_id"`
	TranscriptID string                  `json:"transcript_id"`
	Transcript   string                  `json:"transcript"`
	Result       models.ExtractionResult `json:"result"`
}

func decodeExtractionEvent(event models.Event) (extractionEventPayload, error) {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return extractionEventPayload{}, err
	}
	var payload extractionEventPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return extractionEventPayload{}, err
	}
	if payload.Transcript == "" {
		return extractionEventPayload{}, errors.New("extraction event has no transcript")
	}
	return payload, nil
}

// AnnotateCodes attaches terminology codes to every extracted symptom and
// therapy the catalog knows about. Unknown concepts are left unannotated.
func AnnotateCodes(catalog terminology.Catalog, result models.ExtractionResult) map[string]terminology.Concept {
	codes := make(map[string]terminology.Concept)
	annotate := func(term string) {
		if _, ok := codes[term]; ok {
			return
		}
		if concept, ok := catalog.Lookup(term); ok {
			codes[term] = concept
		}
	}

	for _, symptom := range result.Symptoms {
		annotate(symptom)
	}
	for _, therapy := range result.Therapies {
		annotate(therapy)
	}
	for _, med := range result.Medications {
		annotate(med.Name)
	}

	if len(codes) == 0 {
		return nil
	}
	return codes
}
