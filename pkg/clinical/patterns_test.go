package clinical

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestPatterns(t *testing.T) *PatternSet {
	t.Helper()
	patterns, err := NewPatternSet(DefaultVocabulary())
	if err != nil {
		t.Fatalf("failed to compile patterns: %v", err)
	}
	return patterns
}

func TestFindDose(t *testing.T) {
	patterns := newTestPatterns(t)

	if got := patterns.FindDose("take 500mg after meals"); got != "500mg" {
		t.Fatalf("expected 500mg, got %q", got)
	}
	if got := patterns.FindDose("take 0.5 G at night"); got != "0.5 G" {
		t.Fatalf("expected case-insensitive match, got %q", got)
	}
	if got := patterns.FindDose("no dosage here"); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestFindFrequencyPrefersLongerPhrase(t *testing.T) {
	patterns := newTestPatterns(t)

	if got := patterns.FindFrequency("take once daily with food"); got != "once daily" {
		t.Fatalf("expected 'once daily' not 'daily', got %q", got)
	}
	if got := patterns.FindFrequency("paracetamol BID"); got != "BID" {
		t.Fatalf("expected BID, got %q", got)
	}
}

func TestFindRoute(t *testing.T) {
	patterns := newTestPatterns(t)

	if got := patterns.FindRoute("administered via IV drip"); got != "IV" {
		t.Fatalf("expected IV, got %q", got)
	}
	if got := patterns.FindRoute("given orally"); got != "" {
		t.Fatalf("expected word-bounded match only, got %q", got)
	}
}

func TestFindTherapies(t *testing.T) {
	patterns := newTestPatterns(t)

	therapies := patterns.FindTherapies("Patient underwent post-op chemo last week")
	if len(therapies) != 1 || therapies[0] != "post-op chemo" {
		t.Fatalf("expected [post-op chemo], got %v", therapies)
	}

	therapies = patterns.FindTherapies("chemo today, chemo tomorrow, then radiotherapy")
	if len(therapies) != 2 {
		t.Fatalf("expected distinct matches, got %v", therapies)
	}
}

func TestLoadVocabularyDefault(t *testing.T) {
	vocab, err := LoadVocabulary("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vocab.NegationCues) == 0 {
		t.Fatal("expected default negation cues")
	}
}

func TestLoadVocabularyMissingFileFallsBack(t *testing.T) {
	vocab, err := LoadVocabulary("/nonexistent/vocab.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(vocab.Frequencies) == 0 {
		t.Fatal("expected default vocabulary alongside the error")
	}
}

func TestLoadVocabularyInvalidYAMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("dosage_units: {not: a list}"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	vocab, err := LoadVocabulary(path)
	if err == nil {
		t.Fatal("expected error for malformed vocabulary file")
	}
	if len(vocab.DosageUnits) == 0 || len(vocab.NegationCues) == 0 {
		t.Fatal("expected default vocabulary alongside the error")
	}

	patterns, err := NewPatternSet(vocab)
	if err != nil {
		t.Fatalf("failed to compile patterns: %v", err)
	}
	if got := patterns.FindDose("No paracetamol 500 was given"); got != "" {
		t.Fatalf("unitless number must not match as a dosage, got %q", got)
	}
}

func TestLoadVocabularyIncompleteFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("dosage_units: [mg]\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	vocab, err := LoadVocabulary(path)
	if err == nil {
		t.Fatal("expected error for incomplete vocabulary file")
	}
	if len(vocab.Therapies) == 0 || len(vocab.NegationCues) == 0 {
		t.Fatal("expected default vocabulary alongside the error")
	}
}
