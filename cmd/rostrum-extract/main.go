// Command rostrum-extract runs the targeted quotation extraction: for every
// curated notable figure it searches corpus chunks mentioning the figure's
// aliases, extracts attributed quote spans with confidence scores, and
// replaces the derived quotations table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scrypster/rostrum/internal/config"
	"github.com/scrypster/rostrum/internal/pipeline"
	"github.com/scrypster/rostrum/internal/report"
	"github.com/scrypster/rostrum/internal/storage"
	"github.com/scrypster/rostrum/internal/storage/postgres"
	"github.com/scrypster/rostrum/internal/storage/sqlite"
)

var (
	dbPath    = flag.String("db", "", "Path to sqlite corpus database (overrides config)")
	engine    = flag.String("engine", "", "Storage engine: sqlite or postgres (overrides config)")
	topLimit  = flag.Int("top-figures", 20, "Number of figures in the direct-quote summary")
	noSummary = flag.Bool("no-summary", false, "Skip the per-category console summary")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *dbPath != "" {
		cfg.Storage.SQLitePath = *dbPath
	}
	if *engine != "" {
		cfg.Storage.Engine = *engine
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open corpus store: %v", err)
	}
	defer store.Close()

	eng, err := pipeline.New(store, cfg)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	ctx := context.Background()

	stats, err := eng.Extract(ctx)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Printf("\nTotal quotations extracted: %d\n", stats.Mentions)
	fmt.Printf("Total direct quotes: %d\n", stats.DirectQuotes)
	if stats.FiguresSkipped > 0 {
		fmt.Printf("Figures skipped (bad search patterns): %d of %d\n", stats.FiguresSkipped, stats.FiguresTotal)
	}

	if *noSummary {
		return
	}

	categories, err := store.CategoryCounts(ctx)
	if err != nil {
		log.Fatalf("Failed to load category summary: %v", err)
	}
	figures, err := store.TopFiguresByDirectQuotes(ctx, *topLimit)
	if err != nil {
		log.Fatalf("Failed to load figure summary: %v", err)
	}

	report.PrintExtractSummary(os.Stdout, categories, figures, cfg.Report.Color)
}

// openStore constructs the configured corpus store backend.
func openStore(cfg *config.Config) (storage.CorpusStore, error) {
	switch cfg.Storage.Engine {
	case "postgres":
		return postgres.NewCorpusStore(cfg.Storage.PostgresDSN)
	default:
		return sqlite.NewCorpusStore(cfg.Storage.SQLitePath)
	}
}
