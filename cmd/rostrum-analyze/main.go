// Command rostrum-analyze runs the untargeted quotation analysis: it scans
// every speech in the corpus for attribution cues, groups repeated
// quotations by fuzzy similarity, and writes a ranked markdown report.
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
	dbPath     = flag.String("db", "", "Path to sqlite corpus database (overrides config)")
	engine     = flag.String("engine", "", "Storage engine: sqlite or postgres (overrides config)")
	outputPath = flag.String("out", "", "Markdown report path (overrides config)")
	topN       = flag.Int("top", 0, "Number of ranked quotations in the report (overrides config)")
	persist    = flag.Bool("persist", false, "Also write grouped quotations to the derived table")
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
	if *outputPath != "" {
		cfg.Report.OutputPath = *outputPath
	}
	if *topN > 0 {
		cfg.Report.TopN = *topN
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

	result, err := eng.Analyze(ctx)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if *persist {
		if err := eng.PersistGroups(ctx, result); err != nil {
			log.Fatalf("Failed to persist groups: %v", err)
		}
	}

	rep := report.Build(result.Groups, result.RunID)

	f, err := os.Create(cfg.Report.OutputPath)
	if err != nil {
		log.Fatalf("Failed to create report file: %v", err)
	}
	if err := rep.WriteMarkdown(f, cfg.Report.TopN); err != nil {
		f.Close()
		log.Fatalf("Failed to write report: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to close report file: %v", err)
	}

	fmt.Printf("Report saved to %s\n", cfg.Report.OutputPath)
	rep.PrintTop(os.Stdout, 10, cfg.Report.Color)
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
