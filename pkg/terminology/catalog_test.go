package terminology

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupCaseInsensitive(t *testing.T) {
	catalog := DefaultCatalog()

	concept, ok := catalog.Lookup("FEVER")
	if !ok {
		t.Fatal("expected fever in default catalog")
	}
	if concept.SNOMED == "" {
		t.Fatal("expected SNOMED code for fever")
	}
}

func TestLookupUnknownConcept(t *testing.T) {
	catalog := DefaultCatalog()
	if _, ok := catalog.Lookup("unobtainium"); ok {
		t.Fatal("expected miss for unknown concept")
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	catalog, err := Load("/nonexistent/catalog.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(catalog.Concepts) == 0 {
		t.Fatal("expected default catalog alongside the error")
	}
}

func TestLoadInvalidFileFallsBack(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("concepts: [not, a, map]"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	catalog, err := Load(bad)
	if err == nil {
		t.Fatal("expected error for malformed catalog file")
	}
	if _, ok := catalog.Lookup("fever"); !ok {
		t.Fatal("expected default catalog alongside the error")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("concepts: {}\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	catalog, err = Load(empty)
	if err == nil {
		t.Fatal("expected error for empty catalog file")
	}
	if _, ok := catalog.Lookup("fever"); !ok {
		t.Fatal("expected default catalog alongside the error")
	}
}
