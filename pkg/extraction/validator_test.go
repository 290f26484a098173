package extraction

import (
	"testing"

	"github.com/clinscribe-ai/platform/pkg/common/models"
)

func TestValidateRequestRequiresText(t *testing.T) {
	err := ValidateRequest(models.ExtractRequest{})
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %T", err)
	}
}

func TestValidateRequestSpanBounds(t *testing.T) {
	req := models.ExtractRequest{
		Text: "short text",
		Spans: []models.LabeledSpan{
			{Text: "short", Label: "FINDING", StartOffset: 50},
		},
	}
	if err := ValidateRequest(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for out-of-range offset, got %v", err)
	}

	req.Spans[0].StartOffset = -1
	if err := ValidateRequest(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for negative offset, got %v", err)
	}
}

func TestValidateRequestSpanText(t *testing.T) {
	req := models.ExtractRequest{
		Text:  "some transcript",
		Spans: []models.LabeledSpan{{Label: "DRUG", StartOffset: 0}},
	}
	if err := ValidateRequest(req); !IsValidationError(err) {
		t.Fatalf("expected validation error for span without text, got %v", err)
	}
}

func TestValidateRequestAcceptsValid(t *testing.T) {
	req := models.ExtractRequest{
		Text: "Patient reports cough",
		Spans: []models.LabeledSpan{
			{Text: "cough", Label: "SIGN_SYMPTOM", StartOffset: 16},
		},
	}
	if err := ValidateRequest(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequestAllowsMissingSpans(t *testing.T) {
	// spans are optional at the API boundary; the labeler fills them in
	req := models.ExtractRequest{Text: "Patient reports cough"}
	if err := ValidateRequest(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
