package extract

import "testing"

func TestNormalize_CaseAndWhitespace(t *testing.T) {
	got := Normalize("  'Said,  clearly!!'  ")
	want := Normalize("said, clearly")
	if got != want {
		t.Errorf("Normalize mismatch: %q vs %q", got, want)
	}
	if want != "said, clearly" {
		t.Errorf("Normalize(\"said, clearly\") = %q, want unchanged", want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  'Said,  clearly!!'  ",
		"To save succeeding generations from the scourge of war.",
		"peace…  at last..",
		"“We the peoples of the United Nations…”",
		"never — again —",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_Ellipsis(t *testing.T) {
	cases := map[string]string{
		"war.... and peace":   "war... and peace",
		"war… and peace":      "war... and peace",
		"war .. and peace":    "war ... and peace",
		"internal... kept ok": "internal... kept ok",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize_BoundaryPunctuation(t *testing.T) {
	cases := map[string]string{
		`"Education is the most powerful weapon."`: "education is the most powerful weapon",
		"— never again —":                          "never again",
		"…peace at last…":                          "peace at last",
		"“quoted text”":                            "quoted text",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
