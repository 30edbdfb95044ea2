package cluster

import (
	"math"
	"strings"
	"testing"
)

func TestRatio_Identical(t *testing.T) {
	if r := Ratio("to save succeeding generations", "to save succeeding generations"); r != 1.0 {
		t.Errorf("Ratio(identical) = %v, want 1.0", r)
	}
}

func TestRatio_BothEmpty(t *testing.T) {
	if r := Ratio("", ""); r != 1.0 {
		t.Errorf("Ratio(\"\", \"\") = %v, want 1.0", r)
	}
}

func TestRatio_Disjoint(t *testing.T) {
	if r := Ratio("aaaa", "bbbb"); r != 0.0 {
		t.Errorf("Ratio(disjoint) = %v, want 0.0", r)
	}
}

func TestRatio_ReferenceValue(t *testing.T) {
	// The documented reference value: "abcd" vs "bcde" shares the block
	// "bcd", so the ratio is 2*3/8 = 0.75.
	if r := Ratio("abcd", "bcde"); math.Abs(r-0.75) > 1e-9 {
		t.Errorf("Ratio(abcd, bcde) = %v, want 0.75", r)
	}
}

func TestRatio_NearIdenticalAboveThreshold(t *testing.T) {
	a := "education is the most powerful weapon which you can use to change the world"
	b := "education is the most powerful weapon which you can use to change world"

	if r := Ratio(a, b); r < DefaultThreshold {
		t.Errorf("Ratio(near-identical) = %v, want >= %v", r, DefaultThreshold)
	}
}

func TestRatio_DifferentSentencesBelowThreshold(t *testing.T) {
	a := "to save succeeding generations from the scourge of war"
	b := "development is the new name of peace"

	if r := Ratio(a, b); r >= DefaultThreshold {
		t.Errorf("Ratio(different sentences) = %v, want < %v", r, DefaultThreshold)
	}
}

// longQuote is past the 200-character mark where the popularity filter kicks
// in and drops common letters from the index.
const longQuote = "we the peoples of the united nations determined to save succeeding generations from the scourge of war which twice in our lifetime has brought untold sorrow to mankind and to reaffirm faith in fundamental human rights in the dignity and worth of the human person"

func TestRatio_LongIdentical(t *testing.T) {
	if len([]rune(longQuote)) < 200 {
		t.Fatal("test precondition failed: quote shorter than 200 characters")
	}

	if r := Ratio(longQuote, longQuote); r != 1.0 {
		t.Errorf("Ratio(long identical) = %v, want 1.0", r)
	}
}

func TestRatio_LongNearIdenticalAboveThreshold(t *testing.T) {
	variant := strings.Replace(longQuote, "untold sorrow", "untold grief", 1)

	if r := Ratio(longQuote, variant); r < DefaultThreshold {
		t.Errorf("Ratio(long near-identical) = %v, want >= %v", r, DefaultThreshold)
	}
}

func TestRatio_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a", ""},
		{"", "a"},
		{"short", "a much longer string with plenty of characters"},
		{"we the peoples", "we the peoples of the united nations"},
	}
	for _, p := range pairs {
		r := Ratio(p[0], p[1])
		if r < 0 || r > 1 {
			t.Errorf("Ratio(%q, %q) = %v outside [0,1]", p[0], p[1], r)
		}
	}
}
