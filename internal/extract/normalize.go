package extract

import (
	"regexp"
	"strings"
)

var (
	// ellipsisRe unifies runs of dots and the ellipsis glyph to "...".
	ellipsisRe = regexp.MustCompile(`\.{2,}|…`)

	// boundaryRe trims quotation marks, dashes, terminal punctuation, and
	// whitespace from the edges of a quote. Ellipses are unified before this
	// runs so a trailing "..." is trimmed the same way on every pass.
	boundaryRe = regexp.MustCompile(`^[\s.,;:!?\-–—"'“”‘’«»]+|[\s.,;:!?\-–—"'“”‘’«»]+$`)

	// whitespaceRe collapses internal whitespace runs to a single space.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a quote for comparison: lowercase, unify ellipsis
// variants, strip boundary punctuation, and collapse whitespace. The output
// serves both as an exact-dedup key and as similarity input.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(quote string) string {
	s := strings.ToLower(strings.TrimSpace(quote))
	s = ellipsisRe.ReplaceAllString(s, "...")
	s = boundaryRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return s
}
