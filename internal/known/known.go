// Package known resolves quote clusters against a curated table of famous
// quotations. A hit attaches a definitive source and explanation that
// overrides heuristic attribution in reporting.
package known

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scrypster/rostrum/internal/cluster"
	"github.com/scrypster/rostrum/pkg/types"
)

// quoteTable is one curated famous-quote file.
type quoteTable struct {
	Quotes []types.KnownQuote `yaml:"quotes"`
}

// DefaultQuotes is the curated famous-quotation table. Keys are normalized
// quote text or a distinctive fragment of it.
func DefaultQuotes() []types.KnownQuote {
	return []types.KnownQuote{
		{
			Key:         "to save succeeding generations from the scourge of war",
			Source:      "UN Charter Preamble",
			Explanation: "The opening words of the 1945 UN Charter, expressing the primary purpose of the United Nations.",
		},
		{
			Key:         "we the peoples of the united nations",
			Source:      "UN Charter Preamble",
			Explanation: "The iconic opening phrase of the UN Charter, emphasizing that the UN represents peoples, not just governments.",
		},
		{
			Key:         "development is the new name of peace",
			Source:      "Pope Paul VI",
			Explanation: "From his 1967 encyclical Populorum Progressio, quoted in his historic 1965 UN address.",
		},
		{
			Key:         "i have a dream",
			Source:      "Martin Luther King Jr.",
			Explanation: "From his famous 1963 speech at the Lincoln Memorial during the March on Washington.",
		},
		{
			Key:         "injustice anywhere is a threat to justice everywhere",
			Source:      "Martin Luther King Jr.",
			Explanation: "From his 1963 \"Letter from Birmingham Jail.\"",
		},
		{
			Key:         "be the change you wish to see",
			Source:      "Mahatma Gandhi",
			Explanation: "Often attributed to Gandhi, summarizing his philosophy of leading by example.",
		},
		{
			Key:         "never again",
			Source:      "Holocaust Remembrance",
			Explanation: "A pledge repeated after World War II to prevent future genocides.",
		},
		{
			Key:         "peace cannot be kept by force",
			Source:      "Albert Einstein",
			Explanation: "Einstein's view that lasting peace requires understanding, not military power.",
		},
		{
			Key:         "the arc of the moral universe is long",
			Source:      "Martin Luther King Jr.",
			Explanation: "Popularized by King, originally from Theodore Parker.",
		},
		{
			Key:         "education is the most powerful weapon",
			Source:      "Nelson Mandela",
			Explanation: "Mandela's belief in education as a tool for social change.",
		},
		{
			Key:         "love is the strongest force",
			Source:      "Mahatma Gandhi",
			Explanation: "Gandhi's philosophy of nonviolent resistance through love.",
		},
		{
			Key:         "i am a nationalist, but my nationalism is humanity",
			Source:      "Mahatma Gandhi",
			Explanation: "Gandhi expressing that his patriotism extends to all of humanity.",
		},
	}
}

// LoadQuotes reads a curated famous-quote table from a YAML file of the form:
//
//	quotes:
//	  - key: education is the most powerful weapon
//	    source: Nelson Mandela
//	    explanation: ...
//
// The file fully replaces the default table.
func LoadQuotes(path string) ([]types.KnownQuote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("known: failed to read quote table %s: %w", path, err)
	}

	var table quoteTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("known: failed to parse quote table %s: %w", path, err)
	}
	if len(table.Quotes) == 0 {
		return nil, fmt.Errorf("known: quote table %s has no entries", path)
	}

	for i, q := range table.Quotes {
		if q.Key == "" || q.Source == "" {
			return nil, fmt.Errorf("known: quote table %s entry %d is incomplete", path, i)
		}
	}

	return table.Quotes, nil
}

// Resolver looks up cluster representatives against the curated table.
// The table is immutable after construction.
type Resolver struct {
	quotes    []types.KnownQuote
	threshold float64
}

// NewResolver creates a resolver. A nil or empty table falls back to the
// curated default; a zero threshold falls back to the grouping default.
func NewResolver(quotes []types.KnownQuote, threshold float64) *Resolver {
	if len(quotes) == 0 {
		quotes = DefaultQuotes()
	}
	if threshold <= 0 {
		threshold = cluster.DefaultThreshold
	}
	return &Resolver{quotes: quotes, threshold: threshold}
}

// Lookup checks a normalized representative text against the table: a hit
// is either substring containment of the curated key or similarity at or
// above the threshold. Returns ok=false on miss, in which case the caller
// falls back to the majority heuristic attribution.
func (r *Resolver) Lookup(normalized string) (types.KnownQuote, bool) {
	for _, q := range r.quotes {
		if strings.Contains(normalized, q.Key) || cluster.Ratio(normalized, q.Key) >= r.threshold {
			return q, true
		}
	}
	return types.KnownQuote{}, false
}
