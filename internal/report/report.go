// Package report renders ranked quotation groups as a markdown document and
// a colored console summary. Formatting only; the ranking itself is fixed by
// the grouper and never altered by truncated top-N views.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/scrypster/rostrum/internal/storage"
	"github.com/scrypster/rostrum/pkg/types"
)

// Report is an immutable view over ranked groups plus run metadata.
type Report struct {
	Groups []types.QuoteGroup
	RunID  string

	// MinYear and MaxYear bound the corpus years covered, for the header.
	MinYear int
	MaxYear int
}

// Build assembles a report from ranked groups. The groups are assumed
// already sorted by the grouper; Build never reorders them.
func Build(groups []types.QuoteGroup, runID string) *Report {
	r := &Report{Groups: groups, RunID: runID}
	for _, g := range groups {
		for _, m := range g.Members {
			if m.Year == 0 {
				continue
			}
			if r.MinYear == 0 || m.Year < r.MinYear {
				r.MinYear = m.Year
			}
			if m.Year > r.MaxYear {
				r.MaxYear = m.Year
			}
		}
	}
	return r
}

// WriteMarkdown renders the ranked report, truncated to the top n groups.
// Truncation affects output only, never the underlying ranking.
func (r *Report) WriteMarkdown(w io.Writer, n int) error {
	var b strings.Builder

	b.WriteString("# Most Quoted Quotations\n\n")
	if r.MinYear > 0 {
		fmt.Fprintf(&b, "Analysis of speeches (%d–%d) to find the exact quotations\nrepeated most frequently across different speeches.\n\n", r.MinYear, r.MaxYear)
	}
	fmt.Fprintf(&b, "**Found %d unique quotes that appear 2+ times.**\n\n", len(r.Groups))

	top := r.Groups
	if n > 0 && len(top) > n {
		top = top[:n]
	}
	fmt.Fprintf(&b, "## Top %d Most Repeated Quotations\n\n", len(top))

	for i, g := range top {
		fmt.Fprintf(&b, "### %d. Quoted %d times\n\n", i+1, g.Count())
		fmt.Fprintf(&b, "> %q\n\n", g.Representative)

		if g.KnownSource != "" {
			fmt.Fprintf(&b, "**Source:** %s\n", g.KnownSource)
			if g.KnownExplanation != "" {
				fmt.Fprintf(&b, "\n*%s*\n", g.KnownExplanation)
			}
		} else if g.AttributedSpeaker != "" {
			fmt.Fprintf(&b, "**Attributed to:** %s\n", g.AttributedSpeaker)
		}

		countries := g.Countries()
		fmt.Fprintf(&b, "\n**Years:** %s | **Countries:** %d\n", g.YearRange(), len(countries))
		if len(countries) > 0 && len(countries) <= 5 {
			fmt.Fprintf(&b, "\n*Quoted by: %s*\n", strings.Join(countries, ", "))
		}

		b.WriteString("\n---\n\n")
	}

	b.WriteString("## Statistics\n\n")
	total := 0
	for _, g := range r.Groups {
		total += g.Count()
	}
	fmt.Fprintf(&b, "- **Unique repeated quotes:** %d\n", len(r.Groups))
	fmt.Fprintf(&b, "- **Total quote occurrences:** %d\n", total)
	if len(r.Groups) > 0 {
		fmt.Fprintf(&b, "- **Most repeated quote:** %d times\n", r.Groups[0].Count())
	}
	if r.RunID != "" {
		fmt.Fprintf(&b, "- **Run:** %s\n", r.RunID)
	}

	b.WriteString("\n## Methodology\n\n")
	b.WriteString("Quotes were extracted using pattern matching for common attribution phrases\n")
	b.WriteString("(said, wrote, quoted, etc.) and fuzzy matching to group similar variations.\n")
	b.WriteString("Minimum quote length: 20 characters. Similarity threshold: 85%.\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// PrintTop writes the top-n console listing. Surface forms longer than 80
// characters are truncated with an ellipsis.
func (r *Report) PrintTop(w io.Writer, n int, colorize bool) {
	heading := color.New(color.FgCyan, color.Bold)
	attrib := color.New(color.FgYellow)
	if !colorize {
		heading.DisableColor()
		attrib.DisableColor()
	}

	heading.Fprintln(w, strings.Repeat("=", 60))
	heading.Fprintf(w, "TOP %d MOST QUOTED QUOTATIONS:\n", n)
	heading.Fprintln(w, strings.Repeat("=", 60))

	top := r.Groups
	if n > 0 && len(top) > n {
		top = top[:n]
	}

	for i, g := range top {
		fmt.Fprintf(w, "\n%d. (%d times) — ", i+1, g.Count())
		attrib.Fprintln(w, g.Attribution())

		display := g.Representative
		if runes := []rune(display); len(runes) > 80 {
			display = string(runes[:80]) + "..."
		}
		fmt.Fprintf(w, "   %q\n", display)
	}
}

// PrintExtractSummary writes the per-category and top-figure tables produced
// after a targeted extraction run.
func PrintExtractSummary(w io.Writer, categories []storage.CategoryCount, figures []storage.FigureCount, colorize bool) {
	heading := color.New(color.FgCyan, color.Bold)
	if !colorize {
		heading.DisableColor()
	}

	if len(categories) > 0 {
		heading.Fprintln(w, "\nQuotations by category:")
		for _, c := range categories {
			fmt.Fprintf(w, "  %s: %d mentions (%d direct quotes)\n", c.Category, c.Mentions, c.Direct)
		}
	}

	if len(figures) > 0 {
		heading.Fprintf(w, "\nTop %d figures by direct quotes:\n", len(figures))
		for _, f := range figures {
			fmt.Fprintf(w, "  %s: %d mentions (%d direct quotes)\n", f.Name, f.Mentions, f.Direct)
		}
	}
}
