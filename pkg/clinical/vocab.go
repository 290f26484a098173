package clinical

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the word lists the pattern matchers are compiled from.
// Therapy terms may contain several spellings of the same treatment; the
// matcher returns whichever variant actually appears in the transcript.
type Vocabulary struct {
	DosageUnits  []string `yaml:"dosage_units" json:"dosage_units"`
	Frequencies  []string `yaml:"frequencies" json:"frequencies"`
	Routes       []string `yaml:"routes" json:"routes"`
	Therapies    []string `yaml:"therapies" json:"therapies"`
	NegationCues []string `yaml:"negation_cues" json:"negation_cues"`
}

// LoadVocabulary reads the word lists from a YAML file. On any failure
// (unreadable file, bad YAML, missing lists) it returns the built-in default
// alongside the error so callers can keep running on known-good patterns.
func LoadVocabulary(path string) (Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultVocabulary(), err
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(content, &vocab); err != nil {
		return DefaultVocabulary(), err
	}

	if len(vocab.DosageUnits) == 0 || len(vocab.Frequencies) == 0 ||
		len(vocab.Routes) == 0 || len(vocab.Therapies) == 0 || len(vocab.NegationCues) == 0 {
		return DefaultVocabulary(), errors.New("clinical vocabulary incomplete")
	}

	return vocab, nil
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		DosageUnits: []string{"mg", "mcg", "g", "ml"},
		Frequencies: []string{
			"once daily", "twice daily", "thrice daily", "daily",
			"bid", "tid", "qid",
		},
		Routes: []string{"oral", "iv", "intravenous", "topical", "injection"},
		Therapies: []string{
			"chemotherapy", "chemo",
			"radiotherapy", "radiation therapy", "radio therapy",
			"post-op chemo", "post op chemo", "postop chemo",
			"postoperative chemotherapy",
		},
		NegationCues: []string{"no", "denies", "without", "not", "never"},
	}
}
