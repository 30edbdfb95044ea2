// Package types defines the core domain types for the Rostrum quotation
// mining engine: corpus records read from the store, quotation candidates
// produced by the pattern matchers, and the grouped quotations produced by
// fuzzy deduplication.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// MinQuoteLength is the minimum length, in characters, a quote must have
// after normalization to become a candidate. Shorter spans are discarded.
const MinQuoteLength = 20

// Speech is a single transcribed speech from the corpus store.
// Speeches are immutable input: the engine only ever reads them.
type Speech struct {
	// ID is the store's primary key for the speech.
	ID int64

	// Year the speech was delivered.
	Year int

	// Country is the delivering country's name.
	Country string

	// Speaker is the person who delivered the speech (not necessarily the
	// person being quoted within it).
	Speaker string

	// Text is the full transcribed text. May be empty for damaged records;
	// empty speeches are skipped, not treated as errors.
	Text string
}

// Chunk is a pre-segmented slice of a speech, used by targeted extraction.
type Chunk struct {
	ID       int64
	SpeechID int64
	Text     string

	// Year, Country and Speaker are denormalized from the owning speech.
	Year    int
	Country string
	Speaker string
}

// NotableFigure is a curated figure whose quotations the targeted extractor
// searches for.
type NotableFigure struct {
	ID       int64
	Name     string
	Category string

	// SearchPatterns is the raw JSON-encoded alias list as stored
	// (e.g. `["mandela", "nelson mandela"]`). Use Aliases to decode it.
	SearchPatterns string
}

// Aliases decodes the figure's search patterns into an ordered alias list.
// An unparsable encoding is a per-figure error: the caller logs it and skips
// the figure, the run continues.
func (f *NotableFigure) Aliases() ([]string, error) {
	if f.SearchPatterns == "" {
		return nil, fmt.Errorf("figure %q: empty search patterns", f.Name)
	}

	var aliases []string
	if err := json.Unmarshal([]byte(f.SearchPatterns), &aliases); err != nil {
		return nil, fmt.Errorf("figure %q: unparsable search patterns: %w", f.Name, err)
	}
	if len(aliases) == 0 {
		return nil, fmt.Errorf("figure %q: no aliases", f.Name)
	}

	return aliases, nil
}

// QuoteCandidate is one raw extraction of a quoted span with its provisional
// attribution and confidence. Candidates are created once per successful
// pattern match and never mutated afterwards; many candidates may map to the
// same underlying quotation.
type QuoteCandidate struct {
	// FigureID is set for targeted candidates (attribution by construction)
	// and nil for untargeted ones.
	FigureID *int64

	// SpeechID identifies the speech the span was found in.
	SpeechID int64

	// ChunkID is set when the span was found via chunk search, nil otherwise.
	ChunkID *int64

	// RawText is the extracted span with original casing, trimmed.
	RawText string

	// NormalizedText is the comparison key produced by extract.Normalize.
	NormalizedText string

	// ContextText is the surrounding text captured around the match, used
	// for review; may be empty for untargeted candidates.
	ContextText string

	// StartOffset is the character offset of the match within the scanned text.
	StartOffset int

	// PatternID identifies which cascade pattern produced the match.
	PatternID string

	// IsDirectQuote reports whether an explicit attribution construction
	// fired (as opposed to a weak indicator or bare mention).
	IsDirectQuote bool

	// Confidence is the heuristic strength-of-evidence for the attribution,
	// in [0,1]. Set by the matcher, monotone in pattern specificity.
	Confidence float64

	// AttributedSpeaker is the resolved quoted person, or "" when attribution
	// failed. An empty attribution is a valid, reportable state.
	AttributedSpeaker string

	// Year and Country are provenance copied from the owning speech.
	Year    int
	Country string
}

// Validate checks the candidate's internal invariants.
func (q *QuoteCandidate) Validate() error {
	if q.SpeechID == 0 {
		return errors.New("candidate: speech ID is required")
	}
	if q.Confidence < 0 || q.Confidence > 1 {
		return fmt.Errorf("candidate: confidence %v outside [0,1]", q.Confidence)
	}
	if utf8.RuneCountInString(q.NormalizedText) < MinQuoteLength {
		return fmt.Errorf("candidate: normalized text shorter than %d characters", MinQuoteLength)
	}
	return nil
}

// QuoteGroup is a cluster of candidates judged to represent the same
// underlying quotation. Groups exist only for the duration of a reporting
// run; they are recomputed from candidates, never persisted standalone.
type QuoteGroup struct {
	// Representative is the most common exact surface form among members.
	Representative string

	// NormalizedKey is the seed member's normalized text.
	NormalizedKey string

	// Members holds every candidate in the cluster, in discovery order.
	Members []QuoteCandidate

	// AttributedSpeaker is the majority attribution among members, or ""
	// when no member resolved a speaker.
	AttributedSpeaker string

	// KnownSource and KnownExplanation are set when the group matched the
	// curated famous-quote table; a known source overrides the heuristic
	// attribution in reporting.
	KnownSource      string
	KnownExplanation string
}

// Count returns the number of member occurrences.
func (g *QuoteGroup) Count() int {
	return len(g.Members)
}

// Years returns the distinct member years, ascending.
func (g *QuoteGroup) Years() []int {
	seen := make(map[int]bool, len(g.Members))
	var years []int
	for _, m := range g.Members {
		if !seen[m.Year] {
			seen[m.Year] = true
			years = append(years, m.Year)
		}
	}
	sort.Ints(years)
	return years
}

// FirstYear returns the earliest member year, or 0 for an empty group.
func (g *QuoteGroup) FirstYear() int {
	years := g.Years()
	if len(years) == 0 {
		return 0
	}
	return years[0]
}

// YearRange formats the member years as "1965" or "1965–2019".
func (g *QuoteGroup) YearRange() string {
	years := g.Years()
	switch len(years) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%d", years[0])
	default:
		return fmt.Sprintf("%d–%d", years[0], years[len(years)-1])
	}
}

// Countries returns the distinct member countries, in first-seen order.
func (g *QuoteGroup) Countries() []string {
	seen := make(map[string]bool, len(g.Members))
	var countries []string
	for _, m := range g.Members {
		if m.Country != "" && !seen[m.Country] {
			seen[m.Country] = true
			countries = append(countries, m.Country)
		}
	}
	return countries
}

// Attribution returns the display attribution for the group: the curated
// known source when present, else the majority speaker, else "Unknown".
func (g *QuoteGroup) Attribution() string {
	if g.KnownSource != "" {
		return g.KnownSource
	}
	if g.AttributedSpeaker != "" {
		return g.AttributedSpeaker
	}
	return "Unknown"
}

// KnownQuote is one entry of the curated famous-quotation table.
type KnownQuote struct {
	// Key is the normalized quote text or a distinctive fragment of it.
	Key string `yaml:"key"`

	// Source is the canonical attribution (person or document).
	Source string `yaml:"source"`

	// Explanation gives the quote's origin and context.
	Explanation string `yaml:"explanation"`
}
