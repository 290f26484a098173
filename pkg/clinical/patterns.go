package clinical

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PatternSet holds the compiled matchers for dosage, frequency, route and
// therapy mentions. Compiled once at construction; safe for concurrent use.
type PatternSet struct {
	dose      *regexp.Regexp
	frequency *regexp.Regexp
	route     *regexp.Regexp
	therapy   *regexp.Regexp
	cues      []string
}

func NewPatternSet(vocab Vocabulary) (*PatternSet, error) {
	dose, err := regexp.Compile(`(?i)\b\d+(\.\d+)?\s?(` + alternation(vocab.DosageUnits) + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compiling dosage pattern: %w", err)
	}
	frequency, err := compilePhrasePattern(vocab.Frequencies)
	if err != nil {
		return nil, fmt.Errorf("compiling frequency pattern: %w", err)
	}
	route, err := compilePhrasePattern(vocab.Routes)
	if err != nil {
		return nil, fmt.Errorf("compiling route pattern: %w", err)
	}
	therapy, err := compilePhrasePattern(vocab.Therapies)
	if err != nil {
		return nil, fmt.Errorf("compiling therapy pattern: %w", err)
	}

	cues := make([]string, 0, len(vocab.NegationCues))
	for _, cue := range vocab.NegationCues {
		if trimmed := strings.ToLower(strings.TrimSpace(cue)); trimmed != "" {
			cues = append(cues, trimmed)
		}
	}

	return &PatternSet{
		dose:      dose,
		frequency: frequency,
		route:     route,
		therapy:   therapy,
		cues:      cues,
	}, nil
}

// FindDose returns the first dosage mention in s, or "".
func (p *PatternSet) FindDose(s string) string {
	return p.dose.FindString(s)
}

// FindFrequency returns the first frequency mention in s, or "".
func (p *PatternSet) FindFrequency(s string) string {
	return p.frequency.FindString(s)
}

// FindRoute returns the first route mention in s, or "".
func (p *PatternSet) FindRoute(s string) string {
	return p.route.FindString(s)
}

// FindTherapies scans the whole text for therapy mentions and returns the
// distinct matches in first-seen order, as they appear in the text.
func (p *PatternSet) FindTherapies(text string) []string {
	var therapies []string
	seen := make(map[string]struct{})
	for _, match := range p.therapy.FindAllString(text, -1) {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		therapies = append(therapies, match)
	}
	return therapies
}

// NegationCues returns the lexical markers that rule a mention out.
func (p *PatternSet) NegationCues() []string {
	return p.cues
}

// compilePhrasePattern builds a case-insensitive word-bounded alternation of
// literal phrases. Longer phrases are tried first so that "once daily" is not
// shadowed by "daily" starting at the same position.
func compilePhrasePattern(phrases []string) (*regexp.Regexp, error) {
	ordered := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		if trimmed := strings.TrimSpace(phrase); trimmed != "" {
			ordered = append(ordered, trimmed)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	return regexp.Compile(`(?i)\b(` + alternation(ordered) + `)\b`)
}

func alternation(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	return strings.Join(quoted, "|")
}
