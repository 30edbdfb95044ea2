// Package sqlite provides a SQLite implementation of the corpus store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scrypster/rostrum/internal/storage"
	"github.com/scrypster/rostrum/pkg/types"
)

// CorpusStore implements storage.CorpusStore using SQLite.
type CorpusStore struct {
	db *sql.DB
}

// NewCorpusStore opens a SQLite corpus database and applies the idempotent
// schema. An open or schema failure here is fatal for the run: the engine
// never starts extracting against a store it cannot reach.
func NewCorpusStore(dsn string) (*CorpusStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors; WAL mode lets
	// concurrent readers proceed without blocking the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &CorpusStore{db: db}, nil
}

// DB exposes the underlying handle for test fixtures.
func (s *CorpusStore) DB() *sql.DB {
	return s.db
}

// Close releases the database connection.
func (s *CorpusStore) Close() error {
	return s.db.Close()
}

// ListSpeeches returns every speech ordered by year ascending.
func (s *CorpusStore) ListSpeeches(ctx context.Context) ([]types.Speech, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, year, country_name, COALESCE(speaker, ''), COALESCE(text, '')
		FROM speeches
		ORDER BY year, id
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list speeches: %w", err)
	}
	defer rows.Close()

	var speeches []types.Speech
	for rows.Next() {
		var sp types.Speech
		if err := rows.Scan(&sp.ID, &sp.Year, &sp.Country, &sp.Speaker, &sp.Text); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan speech: %w", err)
		}
		speeches = append(speeches, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: speech iteration failed: %w", err)
	}

	return speeches, nil
}

// ListFigures returns every curated notable figure.
func (s *CorpusStore) ListFigures(ctx context.Context) ([]types.NotableFigure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(category, ''), search_patterns
		FROM notable_figures
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list figures: %w", err)
	}
	defer rows.Close()

	var figures []types.NotableFigure
	for rows.Next() {
		var f types.NotableFigure
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.SearchPatterns); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan figure: %w", err)
		}
		figures = append(figures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: figure iteration failed: %w", err)
	}

	return figures, nil
}

// SearchChunks returns chunks mentioning the alias, joined with speech
// provenance, ordered by year descending.
func (s *CorpusStore) SearchChunks(ctx context.Context, alias string) ([]types.Chunk, error) {
	if alias == "" {
		return nil, storage.ErrInvalidInput
	}

	pattern := "%" + strings.ToLower(alias) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.speech_id, c.text, s.year, s.country_name, COALESCE(s.speaker, '')
		FROM chunks c
		JOIN speeches s ON c.speech_id = s.id
		WHERE LOWER(c.text) LIKE ?
		ORDER BY s.year DESC, c.id
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("sqlite: chunk search for %q failed: %w", alias, err)
	}
	defer rows.Close()

	var chunks []types.Chunk
	for rows.Next() {
		var c types.Chunk
		if err := rows.Scan(&c.ID, &c.SpeechID, &c.Text, &c.Year, &c.Country, &c.Speaker); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: chunk iteration failed: %w", err)
	}

	return chunks, nil
}

// ReplaceQuotations deletes all existing quotation rows and inserts the
// batch inside a single transaction. Re-running extraction on an unchanged
// corpus therefore produces identical table contents (modulo run_id).
func (s *CorpusStore) ReplaceQuotations(ctx context.Context, runID string, quotationRows []storage.QuotationRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM quotations"); err != nil {
		return fmt.Errorf("sqlite: failed to clear quotations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotations
		(figure_id, speech_id, chunk_id, quote_text, context_text,
		 year, country_name, is_direct_quote, confidence_score,
		 attributed_to, pattern_id, run_id, group_rank, group_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range quotationRows {
		q := &quotationRows[i]
		if _, err := stmt.ExecContext(ctx,
			q.FigureID, q.SpeechID, q.ChunkID, q.RawText, q.ContextText,
			q.Year, q.Country, q.IsDirectQuote, q.Confidence,
			nullableString(q.AttributedSpeaker), q.PatternID, runID, q.GroupRank, q.GroupSize,
		); err != nil {
			return fmt.Errorf("sqlite: failed to insert quotation (speech %d): %w", q.SpeechID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: failed to commit quotations: %w", err)
	}

	return nil
}

// CategoryCounts returns per-category mention and direct-quote counts.
func (s *CorpusStore) CategoryCounts(ctx context.Context) ([]storage.CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(nf.category, 'uncategorized'), COUNT(*),
		       SUM(CASE WHEN q.is_direct_quote THEN 1 ELSE 0 END)
		FROM quotations q
		JOIN notable_figures nf ON q.figure_id = nf.id
		GROUP BY nf.category
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: category counts failed: %w", err)
	}
	defer rows.Close()

	var counts []storage.CategoryCount
	for rows.Next() {
		var c storage.CategoryCount
		if err := rows.Scan(&c.Category, &c.Mentions, &c.Direct); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: category iteration failed: %w", err)
	}

	return counts, nil
}

// TopFiguresByDirectQuotes returns figures ordered by direct-quote count.
func (s *CorpusStore) TopFiguresByDirectQuotes(ctx context.Context, limit int) ([]storage.FigureCount, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT nf.name, COUNT(*),
		       SUM(CASE WHEN q.is_direct_quote THEN 1 ELSE 0 END) AS direct
		FROM quotations q
		JOIN notable_figures nf ON q.figure_id = nf.id
		GROUP BY nf.id
		ORDER BY direct DESC, COUNT(*) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: top figures query failed: %w", err)
	}
	defer rows.Close()

	var counts []storage.FigureCount
	for rows.Next() {
		var f storage.FigureCount
		if err := rows.Scan(&f.Name, &f.Mentions, &f.Direct); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan figure count: %w", err)
		}
		counts = append(counts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: figure iteration failed: %w", err)
	}

	return counts, nil
}

// nullableString maps "" to NULL so unattributed quotes stay NULL in the table.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
