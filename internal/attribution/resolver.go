// Package attribution resolves who is being quoted. Given the text around
// an untargeted match, the resolver checks a curated alias table first and
// falls back to capitalized-name heuristics. It never fabricates a name:
// when nothing in the window matches, the quote stays unattributed, which
// is a valid, reportable state.
package attribution

import (
	"regexp"
	"strings"
)

// Default window bounds around a match, in bytes.
const (
	DefaultWindowBefore = 300
	DefaultWindowAfter  = 50
)

// namePatterns are the capitalized-name heuristics, tried in order after
// the alias table. The last match in the window is taken as the most
// proximate to the quote.
var namePatterns = []*regexp.Regexp{
	// Two-word name directly before a speech verb.
	regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+) (?:said|wrote|declared|stated|once said)`),
	// Honorific or title followed by a one- or two-word name.
	regexp.MustCompile(`(?:President|Secretary-General|Prime Minister|Pope|Dr\.|Mr\.|Mrs\.|Ms\.) ([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	// Three-word name before said/wrote.
	regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+ [A-Z][a-z]+) (?:said|wrote)`),
	// "words of X" / "quoting X".
	regexp.MustCompile(`words of ([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`quoting ([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
}

// Resolver infers the quoted speaker for untargeted candidates. The alias
// table is immutable after construction; a Resolver is safe for concurrent
// use.
type Resolver struct {
	aliases      []Alias
	windowBefore int
	windowAfter  int
}

// NewResolver creates a resolver over the given alias table. A nil or empty
// table falls back to the curated default.
func NewResolver(aliases []Alias, windowBefore, windowAfter int) *Resolver {
	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}
	if windowBefore <= 0 {
		windowBefore = DefaultWindowBefore
	}
	if windowAfter <= 0 {
		windowAfter = DefaultWindowAfter
	}
	return &Resolver{
		aliases:      aliases,
		windowBefore: windowBefore,
		windowAfter:  windowAfter,
	}
}

// Resolve scans the window around quotePos for the quoted speaker and
// returns the canonical name, or "" when nothing matches. It never returns
// an error: absence of attribution is an expected outcome.
//
// Resolution order: (1) first alias-table hit in table order wins;
// (2) otherwise capitalized-name heuristics, taking the last match in the
// window as most proximate to the quote.
func (r *Resolver) Resolve(text string, quotePos int) string {
	if text == "" {
		return ""
	}

	start := quotePos - r.windowBefore
	if start < 0 {
		start = 0
	}
	end := quotePos + r.windowAfter
	if end > len(text) {
		end = len(text)
	}

	window := text[start:end]
	lower := strings.ToLower(window)

	for _, a := range r.aliases {
		if strings.Contains(lower, a.Alias) {
			return a.Name
		}
	}

	for _, p := range namePatterns {
		matches := p.FindAllStringSubmatch(window, -1)
		if len(matches) > 0 {
			return matches[len(matches)-1][1]
		}
	}

	return ""
}
