package seed

import (
	"strings"
	"testing"
)

const sampleDoc = `
module:
  code: PMDC-PG-2023
  title: Postgraduate Accreditation Standards
  authority: PMDC
  version: "2023.1"
sections:
  - code: S1
    title: Governance
    weight: 2
    items:
      - code: S1.1
        text: Institution has a governing body
        evidence: charter document
        weight: 3
        critical: true
      - code: S1.2
        text: Annual reports are published
  - code: S2
    title: Faculty
    items:
      - code: S2.1
        text: Supervisor to trainee ratio within limits
`

func TestParse_FullDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Module.Code != "PMDC-PG-2023" {
		t.Fatalf("unexpected module code %q", doc.Module.Code)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if len(doc.Sections[0].Items) != 2 {
		t.Fatalf("expected 2 items in first section, got %d", len(doc.Sections[0].Items))
	}
	item := doc.Sections[0].Items[0]
	if !item.Critical {
		t.Fatalf("expected first item to be critical")
	}
	if item.Weight == nil || *item.Weight != 3 {
		t.Fatalf("unexpected item weight: %v", item.Weight)
	}
	if doc.Sections[1].Items[0].Weight != nil {
		t.Fatalf("expected absent weight to stay nil")
	}
}

func TestParse_MissingModuleCodeIsFatal(t *testing.T) {
	raw := strings.Replace(sampleDoc, "code: PMDC-PG-2023", "code: \"\"", 1)
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatalf("expected error for missing module code")
	}
}

func TestParse_EmptySectionsIsLegal(t *testing.T) {
	doc, err := Parse([]byte("module:\n  code: X\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 0 {
		t.Fatalf("expected no sections")
	}
}

func TestModuleMeta_Fallbacks(t *testing.T) {
	m := ModuleMeta{Code: "X"}
	if m.ResolvedTitle() != "X" {
		t.Fatalf("title should fall back to code")
	}
	if m.ResolvedAuthority() != "PMDC" {
		t.Fatalf("authority should default to PMDC")
	}
	if m.ResolvedVersion() != "1.0" {
		t.Fatalf("version should default to 1.0")
	}
}
