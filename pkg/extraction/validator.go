package extraction

import (
	"errors"
	"fmt"

	"github.com/clinscribe-ai/platform/pkg/common/models"
)

var (
	errEmptyText   = errors.New("transcript text required")
	errInvalidSpan = errors.New("invalid span")
)

// ValidationError marks contract violations the caller controls: these
// surface as 400s instead of being swallowed, unlike the soft degradation
// the extractor applies to malformed clinical content.
type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ValidateRequest checks an extraction request against the contract: text
// must be present, and any caller-supplied spans must carry text and an
// offset inside the transcript.
func ValidateRequest(req models.ExtractRequest) error {
	if req.Text == "" {
		return ValidationError{reason: errEmptyText}
	}

	for i, span := range req.Spans {
		if span.Text == "" {
			return ValidationError{reason: fmt.Errorf("span %d has no text: %w", i, errInvalidSpan)}
		}
		if span.StartOffset < 0 || span.StartOffset >= len(req.Text) {
			return ValidationError{reason: fmt.Errorf(
				"span %d offset %d out of range [0,%d): %w",
				i, span.StartOffset, len(req.Text), errInvalidSpan)}
		}
	}

	return nil
}
