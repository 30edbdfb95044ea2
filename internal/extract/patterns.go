package extract

import (
	"fmt"
	"regexp"
)

// Quotation mark character classes. Content classes exclude every quote
// character so a capture can never run through a closing mark into the next
// quoted span.
const (
	quoteOpen    = `["'“‘«]`
	quoteClose   = `["'”’»]`
	quoteContent = `[^"'“”‘’«»]`
)

// Pattern is one capability-tagged matcher of the cascade: a compiled
// expression plus the metadata the pipeline needs to turn a match into a
// candidate. Patterns are tried independently, never first-match-wins; the
// same text region may satisfy several patterns and the resulting duplicate
// candidates are collapsed by exact dedup later.
type Pattern struct {
	// ID names the pattern family in candidates and reports.
	ID string

	// Re is the compiled expression. Exactly one capturing group holds the
	// quoted span.
	Re *regexp.Regexp

	// Group is the index of the quote capture group.
	Group int

	// MinLen is the minimum trimmed capture length for this family.
	MinLen int

	// Confidence is the attribution strength this family implies.
	Confidence float64

	// Direct reports whether the family is an explicit attribution
	// construction rather than a weak indicator.
	Direct bool
}

// CuePatterns returns the untargeted cascade: generic attribution cues that
// can fire anywhere in a speech, with no prior target figure. Ordered most
// specific first; order only affects candidate discovery order, not which
// patterns run.
func CuePatterns() []Pattern {
	span := func(min int) string {
		return fmt.Sprintf(`\s*[:,]?\s*%s(%s{%d,300})%s`, quoteOpen, quoteContent, min, quoteClose)
	}

	mk := func(id, prefix string, min int, confidence float64, direct bool) Pattern {
		return Pattern{
			ID:         id,
			Re:         regexp.MustCompile(`(?i)` + prefix + span(min)),
			Group:      1,
			MinLen:     min,
			Confidence: confidence,
			Direct:     direct,
		}
	}

	return []Pattern{
		// X said: "..."
		mk("direct-verb", `(?:said|wrote|declared|stated|observed|noted|remarked|proclaimed|quoted)`, 15, 0.90, true),
		// X once/famously said "..."
		mk("past-tense", `(?:once said|famously said|once wrote|famously wrote|has said|had said)`, 15, 0.95, true),
		// in the words of X, "..."
		mk("words-of", `(?:words of|words from)[^:"'“”‘’«»]*[:,]`, 15, 0.90, true),
		// as X put it: "..."
		mk("as-put-it", `as[^:"'“”‘’«»]{1,50}put it[:,]?`, 15, 0.90, true),
		// quoting X, "..."
		mk("quoting", `quot(?:ing|ed)[^:"'“”‘’«»]*[:,]?`, 15, 0.90, true),
		// to quote X, "..."
		mk("to-quote", `to quote[^:"'“”‘’«»]*[:,]?`, 15, 0.90, true),
		// X reminded us that "..."
		mk("reminded-us", `reminded us[^:"'“”‘’«»]*[:,]?`, 15, 0.85, true),
		// X called for "..."
		mk("called-for", `(?:called for|urged|appealed)[^:"'“”‘’«»]*[:,]?`, 15, 0.70, true),
		// the Charter/preamble proclaims "..."
		mk("charter-preamble", `(?:charter|preamble)[^"'“”‘’«»]*[:,]?`, 20, 0.60, false),
		// according to X, "..."
		mk("according-to", `according to[^"'“”‘’«»]*[:,]?`, 15, 0.50, false),
	}
}

// figurePattern is one targeted matcher anchored on a literal figure alias.
type figurePattern struct {
	ID         string
	Re         *regexp.Regexp
	Group      int
	Confidence float64
}

// weakIndicator is a targeted pattern that signals belief or teaching rather
// than a quoted span. It raises the bare-mention confidence floor without
// marking the candidate as a direct quote.
type weakIndicator struct {
	ID         string
	Re         *regexp.Regexp
	Confidence float64
}

// figureCascade holds the compiled targeted patterns for a single alias.
type figureCascade struct {
	alias   string
	direct  []figurePattern
	weak    []weakIndicator
	mention *regexp.Regexp
}

// newFigureCascade compiles the targeted cascade around a literal alias.
// The direct patterns are tried in order and the first hit wins its
// confidence; this mirrors explicit constructions being strictly stronger
// evidence than trailing attributions.
func newFigureCascade(alias string) *figureCascade {
	a := regexp.QuoteMeta(alias)
	qspan := `(` + quoteContent + `{10,500})`

	direct := []figurePattern{
		{"figure-said", re(a + `\s+(?:once\s+)?said[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.95},
		{"figure-wrote", re(a + `\s+(?:once\s+)?wrote[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.95},
		{"said-figure", re(`said\s+` + a + `[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.90},
		{"as-figure-said", re(`as\s+` + a + `\s+(?:once\s+)?(?:said|wrote|put it)[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.95},
		{"in-words-of", re(`in the words of\s+` + a + `[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.95},
		{"figure-famously", re(a + `\s+famously\s+(?:said|wrote)[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.95},
		{"to-quote-figure", re(`to quote\s+` + a + `[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.95},
		{"figure-reminded", re(a + `\s+reminded us[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.90},
		{"figure-taught", re(a + `\s+taught us[,:.;]?\s*` + quoteOpen + qspan + quoteClose), 1, 0.90},
		{"quote-dash-figure", re(quoteOpen + qspan + quoteClose + `\s*[-–—]\s*` + a), 1, 0.95},
		{"quote-said-figure", re(quoteOpen + qspan + quoteClose + `\s*,?\s*(?:said|wrote)\s+` + a), 1, 0.90},
	}

	weak := []weakIndicator{
		{"figure-believed", re(a + `\s+believed`), 0.5},
		{"figure-argued", re(a + `\s+argued`), 0.5},
		{"figure-stated", re(a + `\s+stated`), 0.5},
		{"according-to-figure", re(`according to\s+` + a), 0.4},
		{"philosophy-of", re(`philosophy of\s+` + a), 0.4},
		{"teachings-of", re(`teachings of\s+` + a), 0.5},
		{"ideas-of", re(`ideas of\s+` + a), 0.4},
		{"legacy-of", re(`legacy of\s+` + a), 0.4},
		{"figure-possessive", re(a + `['’]s\s+(?:words|teachings|philosophy|ideas)`), 0.5},
	}

	return &figureCascade{
		alias:   alias,
		direct:  direct,
		weak:    weak,
		mention: re(a),
	}
}

// re compiles a case-insensitive pattern.
func re(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}
