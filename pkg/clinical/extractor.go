package clinical

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clinscribe-ai/platform/pkg/common/models"
)

const (
	// DefaultAttributeWindow is the half-width, in characters, of the text
	// neighbourhood searched for dosage/frequency/route evidence around a
	// medication mention.
	DefaultAttributeWindow = 50

	// DefaultNegationWindow is how many characters before a mention are
	// inspected for negation cues.
	DefaultNegationWindow = 25
)

var (
	ErrEmptyText = fmt.Errorf("source text is empty")
	ErrNilSpans  = fmt.Errorf("span sequence is nil")
)

var symptomLabels = map[string]struct{}{
	"SIGN_SYMPTOM": {},
	"DISEASE":      {},
	"SIGN":         {},
	"SYMPTOM":      {},
	"CONDITION":    {},
	"FINDING":      {},
}

var medicationLabels = map[string]struct{}{
	"CHEMICAL":                  {},
	"MEDICATION":                {},
	"DRUG":                      {},
	"THERAPEUTIC_PROCEDURE":     {},
	"PHARMACOLOGICAL_SUBSTANCE": {},
}

// Extractor turns raw labeler spans over a transcript into a normalized
// structured record. It is a pure function of its inputs: no state is kept
// between calls and a single Extractor may be shared across goroutines.
type Extractor struct {
	patterns        *PatternSet
	attributeWindow int
	negationWindow  int
}

func NewExtractor(patterns *PatternSet, attributeWindow, negationWindow int) *Extractor {
	if attributeWindow <= 0 {
		attributeWindow = DefaultAttributeWindow
	}
	if negationWindow <= 0 {
		negationWindow = DefaultNegationWindow
	}
	return &Extractor{
		patterns:        patterns,
		attributeWindow: attributeWindow,
		negationWindow:  negationWindow,
	}
}

// Extract buckets the labeled spans into symptoms, medications and other
// entities, resolves medication attributes from the surrounding text, and
// scans the whole transcript for therapy mentions independently of the spans
// (the upstream labeler frequently misses them).
//
// Only contract violations error out: empty text, a nil span slice, or a span
// offset outside the text. Missing attributes, unknown labels and unparseable
// dosages all degrade to absent fields.
func (e *Extractor) Extract(text string, spans []models.LabeledSpan) (*models.ExtractionResult, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if spans == nil {
		return nil, ErrNilSpans
	}

	result := &models.ExtractionResult{
		Symptoms:      []string{},
		Medications:   []models.MedicationRecord{},
		Therapies:     []string{},
		OtherEntities: []models.OtherEntity{},
	}

	seenSymptoms := make(map[string]struct{})
	seenMedications := make(map[models.MedicationRecord]struct{})

	for i, span := range spans {
		if span.StartOffset < 0 || span.StartOffset >= len(text) {
			return nil, fmt.Errorf("span %d (%q): start offset %d out of range for text of length %d",
				i, span.Text, span.StartOffset, len(text))
		}

		label := strings.ToUpper(strings.TrimSpace(span.Label))

		switch {
		case isSymptomLabel(label):
			if _, ok := seenSymptoms[span.Text]; !ok {
				seenSymptoms[span.Text] = struct{}{}
				result.Symptoms = append(result.Symptoms, span.Text)
			}

		case isMedicationLabel(label):
			record := models.MedicationRecord{
				Name:      span.Text,
				Frequency: e.nearby(e.patterns.frequency, text, span.StartOffset),
				Route:     e.nearby(e.patterns.route, text, span.StartOffset),
				Negated:   e.negated(span.Text, text),
			}
			if dose := e.nearby(e.patterns.dose, text, span.StartOffset); dose != "" {
				record.Dosage = NormalizeDose(dose)
			}
			if _, ok := seenMedications[record]; !ok {
				seenMedications[record] = struct{}{}
				result.Medications = append(result.Medications, record)
			}

		default:
			result.OtherEntities = append(result.OtherEntities, models.OtherEntity{
				Label: label,
				Value: span.Text,
			})
		}
	}

	result.Therapies = e.patterns.FindTherapies(text)
	if result.Therapies == nil {
		result.Therapies = []string{}
	}

	return result, nil
}

// nearby searches the window around offset for the first match of re.
func (e *Extractor) nearby(re *regexp.Regexp, text string, offset int) string {
	start := offset - e.attributeWindow
	if start < 0 {
		start = 0
	}
	end := offset + e.attributeWindow
	if end > len(text) {
		end = len(text)
	}
	return re.FindString(text[start:end])
}

// negated reports whether a negation cue appears in the window immediately
// preceding the first occurrence of the mention. Only the first occurrence
// is checked; repeated mentions inherit its status. Known approximation,
// inherited from the upstream annotation conventions.
func (e *Extractor) negated(mention, text string) bool {
	lowered := strings.ToLower(text)
	idx := strings.Index(lowered, strings.ToLower(mention))
	if idx == -1 {
		return false
	}

	start := idx - e.negationWindow
	if start < 0 {
		start = 0
	}
	window := lowered[start:idx]

	for _, cue := range e.patterns.NegationCues() {
		if strings.Contains(window, cue) {
			return true
		}
	}
	return false
}

func isSymptomLabel(label string) bool {
	_, ok := symptomLabels[label]
	return ok
}

func isMedicationLabel(label string) bool {
	_, ok := medicationLabels[label]
	return ok
}
