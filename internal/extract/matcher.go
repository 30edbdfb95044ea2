// Package extract implements the pattern cascade matcher and quote span
// extraction: an ordered set of attribution-cue expressions applied in two
// modes, an untargeted scan for generic cues anywhere in a speech and a
// targeted scan anchored around mentions of a known figure's alias.
package extract

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// Limits on persisted span sizes, matching the derived-table contract.
const (
	maxQuoteTextLen   = 1000
	maxContextTextLen = 1500

	// mentionRadius is how much text around a bare alias mention is kept as
	// the span when no quoted text could be extracted.
	mentionRadius = 150

	// baseMentionConfidence is the floor for a bare name-plus-context
	// co-occurrence with no attribution construction at all.
	baseMentionConfidence = 0.3
)

// Match is one untargeted cascade hit within a speech.
type Match struct {
	// PatternID names the cue family that fired.
	PatternID string

	// Start is the byte offset of the match within the speech text.
	Start int

	// Quote is the captured quoted span, trimmed, original casing.
	Quote string

	// Confidence and Direct carry the firing family's tags.
	Confidence float64
	Direct     bool
}

// Matcher applies the untargeted cue cascade to speech texts. It is
// stateless apart from the compiled patterns and safe for concurrent use.
type Matcher struct {
	patterns []Pattern

	// cascades caches compiled targeted cascades per alias. Aliases repeat
	// across chunks, so compilation happens once per alias per run.
	mu       sync.Mutex
	cascades map[string]*figureCascade
}

// NewMatcher creates a matcher over the standard cue cascade.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: CuePatterns(),
		cascades: make(map[string]*figureCascade),
	}
}

// ScanSpeech applies every cue pattern to the text and returns all hits.
// Patterns are tried independently: overlapping matches from different
// families each produce a hit, and the pipeline's exact dedup collapses
// them later. Captures shorter than the family minimum are discarded.
// A capture group that did not participate in a match is a non-match, not
// an error.
func (m *Matcher) ScanSpeech(text string) []Match {
	if text == "" {
		return nil
	}

	var matches []Match
	for _, p := range m.patterns {
		for _, idx := range p.Re.FindAllStringSubmatchIndex(text, -1) {
			quote, ok := captureAt(text, idx, p.Group)
			if !ok {
				continue
			}
			quote = strings.TrimSpace(quote)
			if utf8.RuneCountInString(quote) < p.MinLen {
				continue
			}
			matches = append(matches, Match{
				PatternID:  p.ID,
				Start:      idx[0],
				Quote:      quote,
				Confidence: p.Confidence,
				Direct:     p.Direct,
			})
		}
	}

	return matches
}

// TargetResult is the outcome of a targeted scan around one alias mention.
type TargetResult struct {
	// Quote is the extracted span: a quoted passage when a direct pattern
	// fired, otherwise the text surrounding the mention.
	Quote string

	// Context is the window captured around the mention.
	Context string

	// PatternID names the strongest pattern that fired, or "mention" when
	// only the bare co-occurrence was found.
	PatternID string

	// Direct reports whether an explicit attribution construction matched.
	Direct bool

	// Confidence is the attribution strength: the direct pattern's score,
	// the best weak indicator, or the bare-mention floor.
	Confidence float64

	// MentionPos is the byte offset of the alias within the scanned text.
	MentionPos int
}

// ScanTarget scans a chunk for a quote attributed to the given alias.
// Returns ok=false when the alias does not occur in the text. The scan is
// bounded to a window of contextWindow bytes either side of the first
// mention. Direct attribution patterns are tried in order and the first hit
// wins; failing those, weak indicators raise the confidence floor and the
// mention's surrounding text becomes the span.
func (m *Matcher) ScanTarget(text, alias string, contextWindow int) (TargetResult, bool) {
	// The offset is found on the lowercased text and applied to the original.
	// A case fold that changes byte length (e.g. U+0130) would skew the
	// window; aliases are curated ASCII, and the skew matches the lower()+find
	// semantics the 0.3/0.4 confidence floors were tuned against.
	pos := strings.Index(strings.ToLower(text), strings.ToLower(alias))
	if pos < 0 {
		return TargetResult{}, false
	}

	start := pos - contextWindow
	if start < 0 {
		start = 0
	}
	end := pos + len(alias) + contextWindow
	if end > len(text) {
		end = len(text)
	}
	context := text[start:end]

	cascade := m.cascadeFor(alias)
	res := TargetResult{
		Context:    truncate(context, maxContextTextLen),
		PatternID:  "mention",
		Confidence: baseMentionConfidence,
		MentionPos: pos,
	}

	for _, p := range cascade.direct {
		idx := p.Re.FindStringSubmatchIndex(context)
		if idx == nil {
			continue
		}
		quote, ok := captureAt(context, idx, p.Group)
		if !ok {
			continue
		}
		if utf8.RuneCountInString(quote) < 10 {
			continue
		}
		res.Quote = truncate(quote, maxQuoteTextLen)
		res.PatternID = p.ID
		res.Direct = true
		res.Confidence = p.Confidence
		return res, true
	}

	for _, w := range cascade.weak {
		if w.Re.MatchString(context) && w.Confidence > res.Confidence {
			res.Confidence = w.Confidence
			res.PatternID = w.ID
		}
	}

	// No quoted span: keep the text around the mention as the span.
	mentionInContext := pos - start
	ms := mentionInContext - mentionRadius
	if ms < 0 {
		ms = 0
	}
	me := mentionInContext + len(alias) + mentionRadius
	if me > len(context) {
		me = len(context)
	}
	res.Quote = truncate(strings.TrimSpace(context[ms:me]), maxQuoteTextLen)

	return res, true
}

// cascadeFor returns the compiled targeted cascade for an alias, building
// it on first use.
func (m *Matcher) cascadeFor(alias string) *figureCascade {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.cascades[alias]; ok {
		return c
	}
	c := newFigureCascade(alias)
	m.cascades[alias] = c
	return c
}

// captureAt extracts capture group n from a FindStringSubmatchIndex result.
// Returns ok=false when the group is out of range or did not participate in
// the match, so a cascade entry with a bad group tag degrades to a
// non-match instead of aborting the scan.
func captureAt(text string, idx []int, n int) (string, bool) {
	lo, hi := 2*n, 2*n+1
	if hi >= len(idx) || idx[lo] < 0 || idx[hi] < 0 {
		return "", false
	}
	return text[idx[lo]:idx[hi]], true
}

// truncate caps s at n characters, never splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
