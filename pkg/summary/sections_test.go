package summary

import "testing"

func TestParseBoldHeadings(t *testing.T) {
	sections := Parse("**VITALS:**\nBP 120/80\n\n**NOTES:**\nNone.")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if body, ok := sections.Get("VITALS"); !ok || body != "BP 120/80" {
		t.Fatalf("unexpected VITALS body: %q", body)
	}
	if body, ok := sections.Get("NOTES"); !ok || body != "None." {
		t.Fatalf("unexpected NOTES body: %q", body)
	}
}

func TestParseHeadingEndingWithColon(t *testing.T) {
	sections := Parse("**PLAN:\nrest and fluids")

	if body, ok := sections.Get("PLAN"); !ok || body != "rest and fluids" {
		t.Fatalf("expected PLAN section, got %v", sections)
	}
}

func TestParseMultilineBody(t *testing.T) {
	sections := Parse("**SYMPTOMS:**\n- fever\n- cough\n\n- nausea")

	body, ok := sections.Get("SYMPTOMS")
	if !ok {
		t.Fatal("missing SYMPTOMS section")
	}
	// blank lines are dropped, remaining lines joined by newline
	if body != "- fever\n- cough\n- nausea" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestParseNoHeadingsFallback(t *testing.T) {
	sections := Parse("just plain text")

	if len(sections) != 1 {
		t.Fatalf("expected single fallback section, got %d", len(sections))
	}
	if body, ok := sections.Get(FallbackTitle); !ok || body != "just plain text" {
		t.Fatalf("unexpected fallback body: %q", body)
	}
}

func TestParseRepeatedHeadingOverwrites(t *testing.T) {
	sections := Parse("**A:**\nfirst\n**B:**\nmiddle\n**A:**\nsecond")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	// later content replaces earlier, position of the first A is kept
	if sections[0].Title != "A" || sections[0].Body != "second" {
		t.Fatalf("unexpected first section: %+v", sections[0])
	}
	if sections[1].Title != "B" {
		t.Fatalf("unexpected second section: %+v", sections[1])
	}
}

func TestParseTrailingEmptySectionDropped(t *testing.T) {
	sections := Parse("**A:**\nbody\n**B:**")

	if len(sections) != 1 {
		t.Fatalf("expected trailing empty section dropped, got %v", sections)
	}
	if _, ok := sections.Get("B"); ok {
		t.Fatal("B should not be present")
	}
}

func TestParseEmptyInput(t *testing.T) {
	if sections := Parse(""); len(sections) != 0 {
		t.Fatalf("expected no sections, got %v", sections)
	}
	if sections := Parse("\n\n\n"); len(sections) != 0 {
		t.Fatalf("expected no sections for blank input, got %v", sections)
	}
}
