package attribution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve_AliasTable(t *testing.T) {
	r := NewResolver(nil, 0, 0)
	text := `Nelson Mandela said, "Education is the most powerful weapon."`
	pos := strings.Index(text, "said")

	if got := r.Resolve(text, pos); got != "Nelson Mandela" {
		t.Errorf("Resolve = %q, want Nelson Mandela", got)
	}
}

func TestResolve_AliasCanonicalization(t *testing.T) {
	r := NewResolver(nil, 0, 0)
	text := `As MLK reminded us, "Injustice anywhere is a threat to justice everywhere."`
	pos := strings.Index(text, "reminded")

	if got := r.Resolve(text, pos); got != "Martin Luther King Jr." {
		t.Errorf("Resolve = %q, want the canonical name for the mlk alias", got)
	}
}

func TestResolve_NamePatternFallback(t *testing.T) {
	r := NewResolver(nil, 0, 0)
	// "Vaclav Havel" is not in the curated table; the capitalized-name
	// heuristic before a speech verb must pick it up.
	text := `Years ago Vaclav Havel said that hope is a state of mind, and we still believe it.`
	pos := strings.Index(text, "said")

	if got := r.Resolve(text, pos); got != "Vaclav Havel" {
		t.Errorf("Resolve = %q, want Vaclav Havel", got)
	}
}

func TestResolve_HonorificPattern(t *testing.T) {
	r := NewResolver(nil, 0, 0)
	text := `We recall what President Nyerere told this assembly about dignity and freedom.`
	pos := len(text) - 1

	if got := r.Resolve(text, pos); got != "Nyerere" {
		t.Errorf("Resolve = %q, want Nyerere", got)
	}
}

func TestResolve_LastMatchWins(t *testing.T) {
	r := NewResolver([]Alias{{"zzz-no-such-alias", "Nobody"}}, 0, 0)
	// Two candidate names before the quote position: the later one is the
	// more proximate attribution.
	text := `Earlier Anna Marsh said one thing. Later Brian Okafor said another thing entirely.`
	pos := len(text) - 1

	if got := r.Resolve(text, pos); got != "Brian Okafor" {
		t.Errorf("Resolve = %q, want the most proximate name", got)
	}
}

func TestResolve_NoFabrication(t *testing.T) {
	r := NewResolver(nil, 0, 0)
	text := `the assembly heard a quotation with no nearby name whatsoever today`

	if got := r.Resolve(text, len(text)/2); got != "" {
		t.Errorf("Resolve = %q, want empty attribution", got)
	}
}

func TestResolve_EmptyText(t *testing.T) {
	r := NewResolver(nil, 0, 0)
	if got := r.Resolve("", 0); got != "" {
		t.Errorf("Resolve on empty text = %q, want empty", got)
	}
}

func TestLoadAliases_MissingFile(t *testing.T) {
	if _, err := LoadAliases("/nonexistent/aliases.yaml"); err == nil {
		t.Error("LoadAliases on a missing file should fail")
	}
}

func TestLoadAliases_Valid(t *testing.T) {
	path := writeTempFile(t, `
aliases:
  - alias: mandela
    name: Nelson Mandela
  - alias: gandhi
    name: Mahatma Gandhi
`)

	aliases, err := LoadAliases(path)
	if err != nil {
		t.Fatalf("LoadAliases failed: %v", err)
	}
	if len(aliases) != 2 {
		t.Fatalf("got %d aliases, want 2", len(aliases))
	}
	if aliases[0].Alias != "mandela" || aliases[0].Name != "Nelson Mandela" {
		t.Errorf("unexpected first alias: %+v", aliases[0])
	}
}

func TestLoadAliases_IncompleteEntry(t *testing.T) {
	path := writeTempFile(t, `
aliases:
  - alias: mandela
`)

	if _, err := LoadAliases(path); err == nil {
		t.Error("LoadAliases should reject an entry without a name")
	}
}

// writeTempFile writes content to a temp file and returns its path.
func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
