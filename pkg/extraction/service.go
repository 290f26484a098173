package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clinscribe-ai/platform/pkg/clinical"
	"github.com/clinscribe-ai/platform/pkg/common/kafka"
	"github.com/clinscribe-ai/platform/pkg/common/logger"
	"github.com/clinscribe-ai/platform/pkg/common/models"
	"github.com/clinscribe-ai/platform/pkg/observability/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("extraction not found")

// Labeler produces labeled spans for a transcript. Satisfied by the
// labeler-service HTTP client.
type Labeler interface {
	Label(ctx context.Context, text string) ([]models.LabeledSpan, error)
}

type Service struct {
	extractor *clinical.Extractor
	labeler   Labeler
	repo      *Repository
	producer  *kafka.Producer
	dlq       *kafka.Producer
	cache     *redis.Client
	cacheTTL  time.Duration
}

func NewService(extractor *clinical.Extractor, labeler Labeler, repo *Repository,
	producer *kafka.Producer, dlq *kafka.Producer, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		extractor: extractor,
		labeler:   labeler,
		repo:      repo,
		producer:  producer,
		dlq:       dlq,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Process validates the request, obtains spans from the labeler when the
// caller did not supply any, runs the clinical extractor, persists the
// result and publishes an extraction event. Results are cached by transcript
// content hash so re-submitted transcripts skip the labeler round trip.
func (s *Service) Process(ctx context.Context, req models.ExtractRequest) (*models.ExtractResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	if cached := s.cacheLookup(ctx, req.Text); cached != nil {
		metrics.IncExtractionCacheHits()
		cached.Cached = true
		return cached, nil
	}

	spans := req.Spans
	if spans == nil {
		if s.labeler == nil {
			return nil, ValidationError{reason: errors.New("no spans supplied and no labeler configured")}
		}
		labeled, err := s.labeler.Label(ctx, req.Text)
		if err != nil {
			metrics.IncExtractionsFailed()
			return nil, fmt.Errorf("labeling transcript: %w", err)
		}
		metrics.IncLabelerCalls()
		spans = labeled
	}

	result, err := s.extractor.Extract(req.Text, spans)
	if err != nil {
		metrics.IncExtractionsFailed()
		return nil, ValidationError{reason: err}
	}

	id := uuid.New().String()
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshaling extraction result: %w", err)
	}

	record := &RecordModel{
		ID:           id,
		TranscriptID: req.TranscriptID,
		Transcript:   req.Text,
		Result:       datatypes.JSON(resultJSON),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		metrics.IncExtractionsFailed()
		return nil, fmt.Errorf("persisting extraction: %w", err)
	}

	resp := &models.ExtractResponse{
		ID:        id,
		Result:    *result,
		Timestamp: time.Now().UTC(),
	}

	s.cacheStore(ctx, req.Text, resp)
	metrics.IncExtractionsProcessed()

	payload := map[string]interface{}{
		"extraction_id": id,
		"transcript_id": req.TranscriptID,
		"transcript":    req.Text,
		"result":        result,
	}
	if err := s.producer.PublishEvent(ctx, "extraction", "extraction-service", payload); err != nil {
		logger.Log.WithError(err).Error("failed to publish extraction event")
		if s.dlq != nil {
			_ = s.dlq.PublishEvent(ctx, "extraction", "extraction-service", payload)
		}
	}

	return resp, nil
}

// Get returns a persisted extraction by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.ExtractResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(rec.Result, &result); err != nil {
		return nil, fmt.Errorf("decoding stored extraction: %w", err)
	}

	return &models.ExtractResponse{
		ID:        rec.ID,
		Result:    result,
		Timestamp: rec.CreatedAt,
	}, nil
}

// HandleTranscriptEvent processes a transcript event from the bus. Events
// carry the transcript text and optionally pre-computed spans.
func (s *Service) HandleTranscriptEvent(ctx context.Context, event models.Event) error {
	req, err := decodeTranscriptEvent(event)
	if err != nil {
		logger.Log.WithError(err).WithField("event_id", event.ID).Warn("skipping malformed transcript event")
		return nil // do not retry events that can never parse
	}

	_, err = s.Process(ctx, req)
	if IsValidationError(err) {
		logger.Log.WithError(err).WithField("event_id", event.ID).Warn("rejecting invalid transcript event")
		return nil
	}
	return err
}

func decodeTranscriptEvent(event models.Event) (models.ExtractRequest, error) {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return models.ExtractRequest{}, err
	}
	var req models.ExtractRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return models.ExtractRequest{}, err
	}
	if req.Text == "" {
		return models.ExtractRequest{}, errors.New("transcript event has no text")
	}
	return req, nil
}

func (s *Service) cacheLookup(ctx context.Context, text string) *models.ExtractResponse {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, cacheKey(text)).Bytes()
	if err != nil {
		return nil
	}
	var resp models.ExtractResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *Service) cacheStore(ctx context.Context, text string, resp *models.ExtractResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(text), data, s.cacheTTL).Err(); err != nil {
		logger.Log.WithError(err).Debug("failed to cache extraction result")
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "extraction:" + hex.EncodeToString(sum[:])
}
