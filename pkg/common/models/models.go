package models

import (
	"time"
)

// Upstream labeler output
type LabeledSpan struct {
	Text        string `json:"text"`
	Label       string `json:"label"`
	StartOffset int    `json:"start_offset"`
}

// Structured extraction output
type MedicationRecord struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Route     string `json:"route,omitempty"`
	Negated   bool   `json:"negated"`
}

type OtherEntity struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ExtractionResult struct {
	Symptoms      []string           `json:"symptoms"`
	Medications   []MedicationRecord `json:"medications"`
	Therapies     []string           `json:"therapies"`
	OtherEntities []OtherEntity      `json:"other_medical_entities"`
}

// Extraction API
type ExtractRequest struct {
	TranscriptID string            `json:"transcript_id,omitempty"`
	Text         string            `json:"text"`
	Spans        []LabeledSpan     `json:"spans,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type ExtractResponse struct {
	ID        string           `json:"id"`
	Result    ExtractionResult `json:"result"`
	Cached    bool             `json:"cached,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Section parsing API
type SectionsRequest struct {
	Narrative string `json:"narrative"`
}

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // transcript, extraction, report
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}
