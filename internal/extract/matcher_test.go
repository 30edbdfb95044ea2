package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestScanSpeech_DirectAttribution(t *testing.T) {
	m := NewMatcher()
	text := `Nelson Mandela said, "Education is the most powerful weapon."`

	matches := m.ScanSpeech(text)
	if len(matches) == 0 {
		t.Fatal("ScanSpeech found no matches for a direct attribution")
	}

	found := false
	for _, match := range matches {
		if match.PatternID != "direct-verb" {
			continue
		}
		found = true
		if match.Quote != "Education is the most powerful weapon." {
			t.Errorf("quote = %q, want the quoted sentence", match.Quote)
		}
		if !match.Direct {
			t.Error("direct-verb match should be flagged direct")
		}
		if match.Confidence < 0.9 {
			t.Errorf("confidence = %v, want >= 0.9", match.Confidence)
		}
	}
	if !found {
		t.Error("direct-verb pattern did not fire")
	}
}

func TestScanSpeech_UnicodeQuotes(t *testing.T) {
	m := NewMatcher()
	text := `The Secretary-General declared: “We must act together before it is too late.”`

	matches := m.ScanSpeech(text)
	if len(matches) == 0 {
		t.Fatal("ScanSpeech found no matches with curly quotes")
	}
	if matches[0].Quote != "We must act together before it is too late." {
		t.Errorf("quote = %q", matches[0].Quote)
	}
}

func TestScanSpeech_ShortCaptureDiscarded(t *testing.T) {
	m := NewMatcher()
	text := `He said, "Too short."`

	for _, match := range m.ScanSpeech(text) {
		if len(match.Quote) < 15 {
			t.Errorf("short capture %q was not discarded", match.Quote)
		}
	}
}

func TestScanSpeech_NoBareQuote(t *testing.T) {
	m := NewMatcher()
	// A quoted span with no attribution cue anywhere must not match.
	text := `"Education is the most powerful weapon which you can use to change the world."`

	if matches := m.ScanSpeech(text); len(matches) != 0 {
		t.Errorf("expected no matches for a cue-less quote, got %d", len(matches))
	}
}

func TestScanSpeech_OverlappingFamilies(t *testing.T) {
	m := NewMatcher()
	// "famously said" satisfies both direct-verb ("said") and past-tense
	// ("famously said"): both families must report, dedup happens later.
	text := `Churchill famously said: "Success is not final, failure is not fatal."`

	ids := map[string]bool{}
	for _, match := range m.ScanSpeech(text) {
		ids[match.PatternID] = true
	}
	if !ids["direct-verb"] || !ids["past-tense"] {
		t.Errorf("expected both direct-verb and past-tense to fire, got %v", ids)
	}
}

func TestScanTarget_DirectQuote(t *testing.T) {
	m := NewMatcher()
	text := `As we gather here, let us recall that Nelson Mandela said, "Education is the most powerful weapon which you can use to change the world." That belief guides us.`

	res, ok := m.ScanTarget(text, "nelson mandela", 500)
	if !ok {
		t.Fatal("ScanTarget did not find the alias")
	}
	if !res.Direct {
		t.Error("expected a direct quote")
	}
	if res.Confidence < 0.9 {
		t.Errorf("confidence = %v, want >= 0.9", res.Confidence)
	}
	if res.PatternID != "figure-said" {
		t.Errorf("pattern = %q, want figure-said", res.PatternID)
	}
	if !strings.Contains(res.Quote, "Education is the most powerful weapon") {
		t.Errorf("quote = %q", res.Quote)
	}
}

func TestScanTarget_QuoteDashAttribution(t *testing.T) {
	m := NewMatcher()
	text := `We remember the words: "Be the change you wish to see in the world" — Gandhi taught generations this truth.`

	res, ok := m.ScanTarget(text, "gandhi", 500)
	if !ok {
		t.Fatal("ScanTarget did not find the alias")
	}
	if !res.Direct {
		t.Error("expected a direct quote via dash attribution")
	}
	if res.PatternID != "quote-dash-figure" {
		t.Errorf("pattern = %q, want quote-dash-figure", res.PatternID)
	}
	if res.Quote != "Be the change you wish to see in the world" {
		t.Errorf("quote = %q", res.Quote)
	}
}

func TestScanTarget_WeakIndicator(t *testing.T) {
	m := NewMatcher()
	text := `The philosophy of Mahatma Gandhi guides our approach to conflict resolution and peace.`

	res, ok := m.ScanTarget(text, "mahatma gandhi", 500)
	if !ok {
		t.Fatal("ScanTarget did not find the alias")
	}
	if res.Direct {
		t.Error("weak indicator must not be a direct quote")
	}
	if res.Confidence != 0.4 {
		t.Errorf("confidence = %v, want 0.4 for philosophy-of", res.Confidence)
	}
	if res.Quote == "" {
		t.Error("expected the mention context as the span")
	}
}

func TestScanTarget_BareMentionFloor(t *testing.T) {
	m := NewMatcher()
	text := `Mahatma Gandhi attended the conference and met with several delegations afterwards.`

	res, ok := m.ScanTarget(text, "mahatma gandhi", 500)
	if !ok {
		t.Fatal("ScanTarget did not find the alias")
	}
	if res.Direct {
		t.Error("bare mention must not be a direct quote")
	}
	if res.Confidence != 0.3 {
		t.Errorf("confidence = %v, want the 0.3 floor", res.Confidence)
	}
	if res.PatternID != "mention" {
		t.Errorf("pattern = %q, want mention", res.PatternID)
	}
}

func TestScanTarget_AliasAbsent(t *testing.T) {
	m := NewMatcher()
	if _, ok := m.ScanTarget("No figures are mentioned here at all.", "mandela", 500); ok {
		t.Error("ScanTarget reported a hit for an absent alias")
	}
}

func TestTruncate_RuneAware(t *testing.T) {
	s := strings.Repeat("é", 30)

	got := truncate(s, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate split a rune: %q", got)
	}
	if got != strings.Repeat("é", 10) {
		t.Errorf("truncate = %q, want 10 characters", got)
	}

	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q, want unchanged", got)
	}
}
