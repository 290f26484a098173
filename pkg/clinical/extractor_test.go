package clinical

import (
	"strings"
	"testing"

	"github.com/clinscribe-ai/platform/pkg/common/models"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(newTestPatterns(t), 0, 0)
}

func TestExtractSymptoms(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "Patient denies fever but reports cough."

	result, err := extractor.Extract(text, []models.LabeledSpan{
		{Text: "fever", Label: "SIGN_SYMPTOM", StartOffset: strings.Index(text, "fever")},
		{Text: "cough", Label: "SIGN_SYMPTOM", StartOffset: strings.Index(text, "cough")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// negation never filters symptoms: "denies fever" still yields fever
	if len(result.Symptoms) != 2 {
		t.Fatalf("expected 2 symptoms, got %v", result.Symptoms)
	}
	if result.Symptoms[0] != "fever" || result.Symptoms[1] != "cough" {
		t.Fatalf("unexpected symptoms: %v", result.Symptoms)
	}
}

func TestExtractMedicationAttributes(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "No paracetamol 500mg oral bid was given"

	result, err := extractor.Extract(text, []models.LabeledSpan{
		{Text: "paracetamol", Label: "MEDICATION", StartOffset: strings.Index(text, "paracetamol")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Medications) != 1 {
		t.Fatalf("expected 1 medication, got %d", len(result.Medications))
	}
	med := result.Medications[0]
	if med.Name != "paracetamol" {
		t.Fatalf("unexpected name %q", med.Name)
	}
	if med.Dosage != "500mg" {
		t.Fatalf("expected dosage 500mg, got %q", med.Dosage)
	}
	if med.Frequency != "bid" {
		t.Fatalf("expected frequency bid, got %q", med.Frequency)
	}
	if med.Route != "oral" {
		t.Fatalf("expected route oral, got %q", med.Route)
	}
	if !med.Negated {
		t.Fatal("expected medication to be negated")
	}
}

func TestExtractDosageNormalized(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "Started levothyroxine 500mcg once daily"

	result, err := extractor.Extract(text, []models.LabeledSpan{
		{Text: "levothyroxine", Label: "DRUG", StartOffset: strings.Index(text, "levothyroxine")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	med := result.Medications[0]
	if med.Dosage != "0.5 mg" {
		t.Fatalf("expected normalized dosage 0.5 mg, got %q", med.Dosage)
	}
	if med.Frequency != "once daily" {
		t.Fatalf("expected frequency once daily, got %q", med.Frequency)
	}
	if med.Negated {
		t.Fatal("expected not negated")
	}
}

func TestExtractMedicationDedup(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "paracetamol 500mg oral bid"
	span := models.LabeledSpan{Text: "paracetamol", Label: "MEDICATION", StartOffset: 0}

	result, err := extractor.Extract(text, []models.LabeledSpan{span, span, span})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Medications) != 1 {
		t.Fatalf("expected duplicate records collapsed, got %d", len(result.Medications))
	}
}

func TestExtractTherapiesIndependentOfSpans(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "Patient underwent post-op chemo last week"

	// labeler produced nothing for the therapy mention
	result, err := extractor.Extract(text, []models.LabeledSpan{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Therapies) != 1 || result.Therapies[0] != "post-op chemo" {
		t.Fatalf("expected [post-op chemo], got %v", result.Therapies)
	}
}

func TestExtractOtherEntities(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "BP was 120/80 this morning"

	result, err := extractor.Extract(text, []models.LabeledSpan{
		{Text: "120/80", Label: "lab_value", StartOffset: strings.Index(text, "120/80")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.OtherEntities) != 1 {
		t.Fatalf("expected 1 other entity, got %v", result.OtherEntities)
	}
	if result.OtherEntities[0].Label != "LAB_VALUE" {
		t.Fatalf("expected label upper-cased, got %q", result.OtherEntities[0].Label)
	}
}

func TestExtractAttributeWindowIsLocal(t *testing.T) {
	extractor := newTestExtractor(t)
	// dosage sits far beyond the 50-char window around the mention
	text := "aspirin was mentioned here" + strings.Repeat(" filler", 20) + " ibuprofen 200mg"

	result, err := extractor.Extract(text, []models.LabeledSpan{
		{Text: "aspirin", Label: "MEDICATION", StartOffset: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Medications[0].Dosage != "" {
		t.Fatalf("expected no dosage outside window, got %q", result.Medications[0].Dosage)
	}
}

func TestExtractNegationUsesFirstOccurrence(t *testing.T) {
	extractor := newTestExtractor(t)
	// first occurrence is negated; the later repeat inherits that status
	text := "never prescribed warfarin before, but warfarin 5mg daily now"
	offset := strings.LastIndex(text, "warfarin")

	result, err := extractor.Extract(text, []models.LabeledSpan{
		{Text: "warfarin", Label: "DRUG", StartOffset: offset},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Medications[0].Negated {
		t.Fatal("expected negation status from first occurrence")
	}
}

func TestExtractContractViolations(t *testing.T) {
	extractor := newTestExtractor(t)

	if _, err := extractor.Extract("", []models.LabeledSpan{}); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := extractor.Extract("some text", nil); err == nil {
		t.Fatal("expected error for nil spans")
	}
	if _, err := extractor.Extract("short", []models.LabeledSpan{
		{Text: "x", Label: "DRUG", StartOffset: 99},
	}); err == nil {
		t.Fatal("expected error for out-of-range offset")
	}
}
