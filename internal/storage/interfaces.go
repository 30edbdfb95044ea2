// Package storage provides composable storage interfaces for the Rostrum
// corpus store.
//
// The store is an external collaborator with a narrow surface: the engine
// reads speeches, chunks, and curated figures from it, and replaces one
// derived table (quotations) transactionally at the end of an extraction
// run. The interfaces are kept small so backends can be implemented and
// tested independently.
package storage

import (
	"context"

	"github.com/scrypster/rostrum/pkg/types"
)

// CorpusReader provides read-only access to the speech corpus and the
// curated notable-figures table.
type CorpusReader interface {
	// ListSpeeches returns every speech in the corpus, ordered by year
	// ascending. Speeches with empty text are returned as-is; skipping them
	// is the pipeline's decision, not the store's.
	ListSpeeches(ctx context.Context) ([]types.Speech, error)

	// ListFigures returns every curated notable figure with its raw
	// search-pattern encoding.
	ListFigures(ctx context.Context) ([]types.NotableFigure, error)

	// SearchChunks returns chunks whose text contains the alias
	// (case-insensitive substring match), joined with the owning speech's
	// year, country, and speaker, ordered by year descending.
	SearchChunks(ctx context.Context, alias string) ([]types.Chunk, error)
}

// QuotationWriter persists the derived quotations table.
type QuotationWriter interface {
	// ReplaceQuotations deletes all existing quotation rows and inserts the
	// given rows in a single transaction, so a failed run never leaves
	// partial derived data visible to readers. runID stamps every row for
	// provenance.
	ReplaceQuotations(ctx context.Context, runID string, rows []QuotationRow) error

	// CategoryCounts returns per-category mention and direct-quote counts
	// over the persisted quotations, ordered by mention count descending.
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)

	// TopFiguresByDirectQuotes returns up to limit figures ordered by direct
	// quote count descending, then mention count descending.
	TopFiguresByDirectQuotes(ctx context.Context, limit int) ([]FigureCount, error)
}

// CorpusStore combines corpus reading and quotation persistence.
type CorpusStore interface {
	CorpusReader
	QuotationWriter

	// Close releases any resources held by the store.
	Close() error
}

// QuotationRow is one persisted quotation occurrence: a candidate plus the
// rank and size of the group it landed in, when the run grouped candidates.
// Rank and size are nil for targeted extraction runs, which persist raw
// candidates without clustering.
type QuotationRow struct {
	types.QuoteCandidate

	GroupRank *int
	GroupSize *int
}

// CategoryCount is one row of the per-category extraction summary.
type CategoryCount struct {
	Category string
	Mentions int
	Direct   int
}

// FigureCount is one row of the top-figures extraction summary.
type FigureCount struct {
	Name     string
	Mentions int
	Direct   int
}
