// Package pipeline orchestrates the quotation mining runs: the untargeted
// corpus-wide analysis and the targeted per-figure extraction. Per-item
// failures (an empty speech, a bad capture, one figure's corrupt alias
// encoding) are isolated and counted; only store-level errors abort a run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/scrypster/rostrum/internal/attribution"
	"github.com/scrypster/rostrum/internal/cluster"
	"github.com/scrypster/rostrum/internal/config"
	"github.com/scrypster/rostrum/internal/extract"
	"github.com/scrypster/rostrum/internal/known"
	"github.com/scrypster/rostrum/internal/storage"
	"github.com/scrypster/rostrum/pkg/types"
)

// Engine wires the matcher, resolver, grouper, and known-quote table over a
// corpus store. Curated tables are loaded once at construction and passed
// in; nothing here holds ambient global state.
type Engine struct {
	store    storage.CorpusStore
	cfg      *config.Config
	workers  int
	matcher  *extract.Matcher
	resolver *attribution.Resolver
	grouper  *cluster.Grouper
	known    *known.Resolver
}

// defaultWorkers is the matcher fan-out used when the configured count is
// not positive.
const defaultWorkers = 4

// New builds an engine over the store, loading curated table overrides from
// the configured paths when set. A missing or malformed curated file is a
// startup error, not a mid-run surprise.
func New(store storage.CorpusStore, cfg *config.Config) (*Engine, error) {
	aliases := attribution.DefaultAliases()
	if path := cfg.Extract.FigureTablePath; path != "" {
		loaded, err := attribution.LoadAliases(path)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		aliases = loaded
	}

	quotes := known.DefaultQuotes()
	if path := cfg.Extract.KnownQuoteTablePath; path != "" {
		loaded, err := known.LoadQuotes(path)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		quotes = loaded
	}

	workers := cfg.Extract.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	return &Engine{
		store:    store,
		cfg:      cfg,
		workers:  workers,
		matcher:  extract.NewMatcher(),
		resolver: attribution.NewResolver(aliases, cfg.Extract.AttributionWindowBefore, cfg.Extract.AttributionWindowAfter),
		grouper:  cluster.NewGrouper(cfg.Extract.SimilarityThreshold),
		known:    known.NewResolver(quotes, cfg.Extract.SimilarityThreshold),
	}, nil
}

// AnalysisStats summarizes an untargeted run for the user-visible summary
// line: counts processed, matched, and skipped with reason.
type AnalysisStats struct {
	SpeechesProcessed   int
	SpeechesSkippedText int // skipped: null or empty text
	RawMatches          int
	Candidates          int // retained after length filter and exact dedup input
	Groups              int
}

// AnalysisResult is the outcome of an untargeted analysis run.
type AnalysisResult struct {
	RunID  string
	Groups []types.QuoteGroup
	Stats  AnalysisStats
}

// Analyze runs the untargeted pipeline: scan every speech for attribution
// cues, resolve speakers heuristically, normalize, fuzzy-group across the
// corpus, and resolve known quotes. Matching is fanned out across workers
// (speeches are independent); grouping is the one inherently sequential
// phase and runs as a single ordered pass under the configured deadline.
//
// Candidate order entering the grouper is the speeches' store order
// regardless of worker scheduling, so re-running over an unchanged corpus
// produces identical groups.
func (e *Engine) Analyze(ctx context.Context) (*AnalysisResult, error) {
	speeches, err := e.store.ListSpeeches(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: failed to load corpus: %w", err)
	}

	log.Printf("pipeline: analyzing %d speeches", len(speeches))

	stats := AnalysisStats{}
	perSpeech := make([][]types.QuoteCandidate, len(speeches))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				perSpeech[i] = e.scanOne(&speeches[i])
			}
		}()
	}

	for i := range speeches {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var candidates []types.QuoteCandidate
	for i := range speeches {
		if speeches[i].Text == "" {
			stats.SpeechesSkippedText++
			continue
		}
		stats.SpeechesProcessed++
		candidates = append(candidates, perSpeech[i]...)
	}
	stats.RawMatches = len(candidates)

	log.Printf("pipeline: found %d quote instances", len(candidates))

	groupCtx := ctx
	if timeout := e.cfg.Extract.GroupTimeout; timeout > 0 {
		var cancel context.CancelFunc
		groupCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	groups, err := e.grouper.Group(groupCtx, candidates)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	for i := range groups {
		if kq, ok := e.known.Lookup(groups[i].NormalizedKey); ok {
			groups[i].KnownSource = kq.Source
			groups[i].KnownExplanation = kq.Explanation
		}
	}

	stats.Candidates = len(candidates)
	stats.Groups = len(groups)

	log.Printf("pipeline: processed %d speeches (%d skipped: empty text), %d candidates, %d repeated groups",
		stats.SpeechesProcessed, stats.SpeechesSkippedText, stats.Candidates, stats.Groups)

	return &AnalysisResult{
		RunID:  uuid.New().String(),
		Groups: groups,
		Stats:  stats,
	}, nil
}

// scanOne applies the cue cascade to a single speech and builds candidates.
// Runs on a worker goroutine; touches no shared state beyond its result slot.
func (e *Engine) scanOne(speech *types.Speech) []types.QuoteCandidate {
	if speech.Text == "" {
		return nil
	}

	minLen := e.cfg.Extract.MinQuoteLength
	var out []types.QuoteCandidate
	for _, m := range e.matcher.ScanSpeech(speech.Text) {
		normalized := extract.Normalize(m.Quote)
		if utf8.RuneCountInString(normalized) < minLen {
			continue
		}

		out = append(out, types.QuoteCandidate{
			SpeechID:          speech.ID,
			RawText:           m.Quote,
			NormalizedText:    normalized,
			StartOffset:       m.Start,
			PatternID:         m.PatternID,
			IsDirectQuote:     m.Direct,
			Confidence:        m.Confidence,
			AttributedSpeaker: e.resolver.Resolve(speech.Text, m.Start),
			Year:              speech.Year,
			Country:           speech.Country,
		})
	}
	return out
}

// PersistGroups writes the analysis result's group members to the derived
// quotations table, one row per occurrence with its group's rank and size,
// replacing previous derived data in a single transaction.
func (e *Engine) PersistGroups(ctx context.Context, result *AnalysisResult) error {
	var rows []storage.QuotationRow
	for gi := range result.Groups {
		g := &result.Groups[gi]
		rank, size := gi+1, g.Count()
		for _, m := range g.Members {
			r := rank
			s := size
			rows = append(rows, storage.QuotationRow{
				QuoteCandidate: m,
				GroupRank:      &r,
				GroupSize:      &s,
			})
		}
	}

	if err := e.store.ReplaceQuotations(ctx, result.RunID, rows); err != nil {
		return fmt.Errorf("pipeline: failed to persist groups: %w", err)
	}

	log.Printf("pipeline: persisted %d quotation rows across %d groups", len(rows), len(result.Groups))
	return nil
}

// ExtractStats summarizes a targeted extraction run.
type ExtractStats struct {
	RunID          string
	FiguresTotal   int
	FiguresSkipped int // skipped: unparsable search patterns
	Mentions       int
	DirectQuotes   int
}

// Extract runs the targeted pipeline: for every curated figure, search
// chunks mentioning each alias, scan the mention context for attributed
// quotes, and replace the derived quotations table transactionally. A
// figure with a corrupt alias encoding is logged and skipped; a store
// error aborts the run before any write.
func (e *Engine) Extract(ctx context.Context) (*ExtractStats, error) {
	figures, err := e.store.ListFigures(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: failed to load figures: %w", err)
	}

	log.Printf("pipeline: processing %d notable figures", len(figures))

	var limiter *rate.Limiter
	if rps := e.cfg.Extract.QueryRateLimit; rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	stats := &ExtractStats{
		RunID:        uuid.New().String(),
		FiguresTotal: len(figures),
	}

	var rows []storage.QuotationRow
	for fi := range figures {
		figure := &figures[fi]

		aliases, err := figure.Aliases()
		if err != nil {
			log.Printf("pipeline: skipping figure: %v", err)
			stats.FiguresSkipped++
			continue
		}

		candidates, err := e.extractFigure(ctx, figure, aliases, limiter)
		if err != nil {
			return nil, err
		}

		candidates = dedupeFigure(candidates)

		direct := 0
		for _, c := range candidates {
			if c.IsDirectQuote {
				direct++
			}
			rows = append(rows, storage.QuotationRow{QuoteCandidate: c})
		}

		stats.Mentions += len(candidates)
		stats.DirectQuotes += direct
		log.Printf("pipeline: %s: %d mentions (%d direct quotes)", figure.Name, len(candidates), direct)
	}

	if err := e.store.ReplaceQuotations(ctx, stats.RunID, rows); err != nil {
		return nil, fmt.Errorf("pipeline: failed to persist quotations: %w", err)
	}

	log.Printf("pipeline: extracted %d mentions (%d direct quotes), %d of %d figures skipped",
		stats.Mentions, stats.DirectQuotes, stats.FiguresSkipped, stats.FiguresTotal)

	return stats, nil
}

// extractFigure scans every chunk mentioning any of a figure's aliases.
// Chunk queries are paced by the limiter when one is configured.
func (e *Engine) extractFigure(ctx context.Context, figure *types.NotableFigure, aliases []string, limiter *rate.Limiter) ([]types.QuoteCandidate, error) {
	var out []types.QuoteCandidate

	for _, alias := range aliases {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("pipeline: extraction cancelled: %w", err)
			}
		}

		chunks, err := e.store.SearchChunks(ctx, alias)
		if err != nil {
			return nil, fmt.Errorf("pipeline: chunk search failed for %s: %w", figure.Name, err)
		}

		for ci := range chunks {
			chunk := &chunks[ci]
			res, ok := e.matcher.ScanTarget(chunk.Text, alias, e.cfg.Extract.ContextWindow)
			if !ok {
				continue
			}

			figureID := figure.ID
			chunkID := chunk.ID
			out = append(out, types.QuoteCandidate{
				FigureID:          &figureID,
				SpeechID:          chunk.SpeechID,
				ChunkID:           &chunkID,
				RawText:           res.Quote,
				NormalizedText:    extract.Normalize(res.Quote),
				ContextText:       res.Context,
				StartOffset:       res.MentionPos,
				PatternID:         res.PatternID,
				IsDirectQuote:     res.Direct,
				Confidence:        res.Confidence,
				AttributedSpeaker: figure.Name,
				Year:              chunk.Year,
				Country:           chunk.Country,
			})
		}
	}

	return out, nil
}

// dedupeFigure collapses a figure's candidates on exact (speechID, raw text
// prefix) keys: the same quotation found via two aliases, or two overlapping
// chunk matches, counts once.
func dedupeFigure(candidates []types.QuoteCandidate) []types.QuoteCandidate {
	type key struct {
		speechID int64
		prefix   string
	}

	seen := make(map[key]bool, len(candidates))
	unique := candidates[:0:0]
	for _, c := range candidates {
		prefix := c.RawText
		if len(prefix) > 100 {
			prefix = prefix[:100]
		}
		k := key{c.SpeechID, prefix}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, c)
	}
	return unique
}
