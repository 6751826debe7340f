// Package main provides the entry point for the catalog enrichment CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/dbellini/catalog-enricher/internal/config"
	"github.com/dbellini/catalog-enricher/internal/export"
	"github.com/dbellini/catalog-enricher/internal/llm"
	"github.com/dbellini/catalog-enricher/internal/pipeline"
	"github.com/dbellini/catalog-enricher/internal/source"
	"github.com/dbellini/catalog-enricher/internal/store"
	"github.com/dbellini/catalog-enricher/internal/transform"
)

var rootCmd = &cobra.Command{
	Use:   "enricher [limit]",
	Short: "Enrich product catalog descriptions with selected highlights",
	Long: `Enricher drives the product catalog through Gemini, selecting the most
relevant highlight from each group and weaving them into the description.
Results accumulate in a JSON checkpoint file (safe to interrupt and resume)
and are exported to an Excel sheet at the end of the run.

The optional positional argument limits how many leading catalog items are
considered for this run.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	limit := -1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("limit must be a non-negative integer, got %q", args[0])
		}
		limit = n
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	items, err := source.LoadWorkItems(cfg.ProductsPath)
	if err != nil {
		return err
	}
	highlights, err := source.LoadHighlights(cfg.HighlightsPath)
	if err != nil {
		return err
	}
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}

	st := store.New(cfg.ResultsPath)
	existing, err := st.Load()
	if err != nil {
		return err
	}

	client, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	results, failures, err := pipeline.Run(ctx, items, existing, pipeline.Options{
		BatchSize:    cfg.BatchSize,
		Transformer:  transform.New(client, cfg, log),
		Checkpoint:   st,
		HighlightSet: highlights,
		Log:          log,
	})
	if err != nil {
		// Checkpoint failure: data integrity outweighs partial progress.
		return err
	}

	if err := st.Save(results); err != nil {
		return err
	}
	log.Info("results saved", "path", st.Path(), "total", len(results))

	if err := export.ToExcel(cfg.ExcelPath, results); err != nil {
		// Results are already durably checkpointed; a failed export does
		// not turn the run into a failure.
		log.Error("excel export failed", "error", err)
	} else {
		log.Info("excel saved", "path", cfg.ExcelPath, "rows", len(results))
	}

	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "\nFailed %d items:\n", len(failures))
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  - ID %d | %s | %v\n", f.ID, f.Title, f.Err)
		}
	}

	return nil
}
