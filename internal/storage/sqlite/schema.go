package sqlite

// Schema defines the corpus database schema. Every statement is idempotent
// so the store can be opened against an already-populated corpus without
// touching existing data. The speeches, chunks, and notable_figures tables
// are owned by the ingestion side; quotations is the one table this engine
// writes.
const Schema = `
CREATE TABLE IF NOT EXISTS speeches (
    id           INTEGER PRIMARY KEY,
    year         INTEGER NOT NULL,
    country_name TEXT NOT NULL,
    speaker      TEXT,
    text         TEXT
);

CREATE INDEX IF NOT EXISTS idx_speeches_year ON speeches(year);

CREATE TABLE IF NOT EXISTS chunks (
    id        INTEGER PRIMARY KEY,
    speech_id INTEGER NOT NULL REFERENCES speeches(id),
    text      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_speech ON chunks(speech_id);

CREATE TABLE IF NOT EXISTS notable_figures (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    category        TEXT,
    search_patterns TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quotations (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    figure_id        INTEGER REFERENCES notable_figures(id),
    speech_id        INTEGER NOT NULL REFERENCES speeches(id),
    chunk_id         INTEGER REFERENCES chunks(id),
    quote_text       TEXT NOT NULL,
    context_text     TEXT,
    year             INTEGER,
    country_name     TEXT,
    is_direct_quote  INTEGER NOT NULL DEFAULT 0,
    confidence_score REAL NOT NULL,
    attributed_to    TEXT,
    pattern_id       TEXT,
    run_id           TEXT,
    group_rank       INTEGER,
    group_size       INTEGER,
    created_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_quotations_figure ON quotations(figure_id);
CREATE INDEX IF NOT EXISTS idx_quotations_speech ON quotations(speech_id);
`
