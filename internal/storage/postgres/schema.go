package postgres

// Schema defines the corpus schema for PostgreSQL deployments where the
// corpus is shared between ingestion and analysis. All statements are
// idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS speeches (
    id           BIGSERIAL PRIMARY KEY,
    year         INTEGER NOT NULL,
    country_name TEXT NOT NULL,
    speaker      TEXT,
    text         TEXT
);

CREATE INDEX IF NOT EXISTS idx_speeches_year ON speeches(year);

CREATE TABLE IF NOT EXISTS chunks (
    id        BIGSERIAL PRIMARY KEY,
    speech_id BIGINT NOT NULL REFERENCES speeches(id),
    text      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_speech ON chunks(speech_id);

CREATE TABLE IF NOT EXISTS notable_figures (
    id              BIGSERIAL PRIMARY KEY,
    name            TEXT NOT NULL,
    category        TEXT,
    search_patterns TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quotations (
    id               BIGSERIAL PRIMARY KEY,
    figure_id        BIGINT REFERENCES notable_figures(id),
    speech_id        BIGINT NOT NULL REFERENCES speeches(id),
    chunk_id         BIGINT REFERENCES chunks(id),
    quote_text       TEXT NOT NULL,
    context_text     TEXT,
    year             INTEGER,
    country_name     TEXT,
    is_direct_quote  BOOLEAN NOT NULL DEFAULT FALSE,
    confidence_score DOUBLE PRECISION NOT NULL,
    attributed_to    TEXT,
    pattern_id       TEXT,
    run_id           TEXT,
    group_rank       INTEGER,
    group_size       INTEGER,
    created_at       TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_quotations_figure ON quotations(figure_id);
CREATE INDEX IF NOT EXISTS idx_quotations_speech ON quotations(speech_id);
`
