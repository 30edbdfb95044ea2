package known

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scrypster/rostrum/pkg/types"
)

func TestLookup_Containment(t *testing.T) {
	r := NewResolver(nil, 0)

	q, ok := r.Lookup("education is the most powerful weapon which you can use to change the world")
	if !ok {
		t.Fatal("Lookup missed a containment hit")
	}
	if q.Source != "Nelson Mandela" {
		t.Errorf("source = %q, want Nelson Mandela", q.Source)
	}
	if q.Explanation == "" {
		t.Error("expected an explanation on the curated entry")
	}
}

func TestLookup_FuzzyHit(t *testing.T) {
	r := NewResolver(nil, 0)

	// One word changed from the curated key; similarity carries the hit.
	q, ok := r.Lookup("to save succeeding generations from the scourges of war")
	if !ok {
		t.Fatal("Lookup missed a fuzzy hit")
	}
	if q.Source != "UN Charter Preamble" {
		t.Errorf("source = %q, want UN Charter Preamble", q.Source)
	}
}

func TestLookup_Miss(t *testing.T) {
	r := NewResolver(nil, 0)

	if _, ok := r.Lookup("a completely novel sentence about trade agreements and fisheries"); ok {
		t.Error("Lookup reported a hit for an unknown quote")
	}
}

func TestLookup_CustomTable(t *testing.T) {
	r := NewResolver([]types.KnownQuote{
		{Key: "ask not what your country can do for you", Source: "John F. Kennedy", Explanation: "1961 inaugural address."},
	}, 0)

	if _, ok := r.Lookup("education is the most powerful weapon"); ok {
		t.Error("custom table should fully replace the default")
	}

	q, ok := r.Lookup("ask not what your country can do for you, ask what you can do for your country")
	if !ok {
		t.Fatal("Lookup missed a custom entry")
	}
	if q.Source != "John F. Kennedy" {
		t.Errorf("source = %q", q.Source)
	}
}

func TestLoadQuotes_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.yaml")
	content := `
quotes:
  - key: ask not what your country can do for you
    source: John F. Kennedy
    explanation: 1961 inaugural address.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	quotes, err := LoadQuotes(path)
	if err != nil {
		t.Fatalf("LoadQuotes failed: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Source != "John F. Kennedy" {
		t.Errorf("unexpected quotes: %+v", quotes)
	}
}

func TestLoadQuotes_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.yaml")
	if err := os.WriteFile(path, []byte("quotes: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	if _, err := LoadQuotes(path); err == nil {
		t.Error("LoadQuotes should reject an empty table")
	}
}
