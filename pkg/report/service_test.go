package report

import (
	"testing"

	"github.com/clinscribe-ai/platform/pkg/common/models"
	"github.com/clinscribe-ai/platform/pkg/terminology"
)

func TestAnnotateCodes(t *testing.T) {
	catalog := terminology.DefaultCatalog()
	result := models.ExtractionResult{
		Symptoms:  []string{"fever", "mystery symptom"},
		Therapies: []string{"chemotherapy"},
		Medications: []models.MedicationRecord{
			{Name: "paracetamol", Dosage: "500mg"},
		},
	}

	codes := AnnotateCodes(catalog, result)

	if _, ok := codes["fever"]; !ok {
		t.Fatal("expected fever annotated")
	}
	if _, ok := codes["chemotherapy"]; !ok {
		t.Fatal("expected chemotherapy annotated")
	}
	if _, ok := codes["paracetamol"]; !ok {
		t.Fatal("expected paracetamol annotated")
	}
	if _, ok := codes["mystery symptom"]; ok {
		t.Fatal("unknown concepts must be left unannotated")
	}
}

func TestAnnotateCodesEmptyResult(t *testing.T) {
	codes := AnnotateCodes(terminology.DefaultCatalog(), models.ExtractionResult{})
	if codes != nil {
		t.Fatalf("expected nil codes for empty result, got %v", codes)
	}
}
