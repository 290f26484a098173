package terminology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Concept struct {
	Display string `yaml:"display" json:"display"`
	SNOMED  string `yaml:"snomed" json:"snomed"`
	ICD10   string `yaml:"icd10" json:"icd10"`
}

type Catalog struct {
	Concepts map[string]Concept `yaml:"concepts" json:"concepts"`
}

// Load reads a concept catalog from a YAML file. On any failure it returns
// the built-in default alongside the error so annotation keeps working.
func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return DefaultCatalog(), err
	}
	if len(cat.Concepts) == 0 {
		return DefaultCatalog(), fmt.Errorf("terminology catalog empty")
	}
	return cat, nil
}

func (c Catalog) Lookup(key string) (Concept, bool) {
	if c.Concepts == nil {
		return Concept{}, false
	}
	concept, ok := c.Concepts[strings.ToLower(key)]
	if ok {
		return concept, true
	}
	for k, v := range c.Concepts {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return Concept{}, false
}

func DefaultCatalog() Catalog {
	return Catalog{Concepts: map[string]Concept{
		"fever": {
			Display: "Fever",
			SNOMED:  "386661006",
			ICD10:   "R50.9",
		},
		"cough": {
			Display: "Cough",
			SNOMED:  "49727002",
			ICD10:   "R05",
		},
		"nausea": {
			Display: "Nausea",
			SNOMED:  "422587007",
			ICD10:   "R11.0",
		},
		"hypertension": {
			Display: "Essential Hypertension",
			SNOMED:  "59621000",
			ICD10:   "I10",
		},
		"diabetes": {
			Display: "Diabetes Mellitus",
			SNOMED:  "73211009",
			ICD10:   "E14",
		},
		"paracetamol": {
			Display: "Paracetamol",
			SNOMED:  "387517004",
			ICD10:   "",
		},
		"chemotherapy": {
			Display: "Chemotherapy",
			SNOMED:  "367336001",
			ICD10:   "Z51.11",
		},
		"radiotherapy": {
			Display: "Radiation Therapy",
			SNOMED:  "108290001",
			ICD10:   "Z51.0",
		},
	}}
}
