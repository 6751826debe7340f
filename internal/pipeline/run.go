// Package pipeline provides the batch orchestration for the enrichment run:
// pending/skip partitioning, bounded-concurrency batches, per-batch
// checkpointing and failure aggregation.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/dbellini/catalog-enricher/internal/store"
	"github.com/dbellini/catalog-enricher/internal/transform"
	"github.com/dbellini/catalog-enricher/internal/types"
	"github.com/dbellini/catalog-enricher/internal/validate"
)

// Checkpointer persists the full accumulated result list. *store.Store
// satisfies it; tests substitute a recorder.
type Checkpointer interface {
	Save(results []types.ProcessingResult) error
}

// Options configures one orchestration run.
type Options struct {
	BatchSize    int
	Transformer  *transform.Transformer
	Checkpoint   Checkpointer
	HighlightSet types.HighlightSet
	Log          *slog.Logger
}

// Run drives the pending work items through the transformer in sequential
// batches of at most BatchSize concurrent calls, checkpointing the full
// accumulated result list after each batch drains. One item's failure
// never aborts its siblings or later batches; a checkpoint failure does
// abort the run.
//
// The returned results reflect completion order within a run, not
// submission order. Callers key on id, never on position.
func Run(ctx context.Context, items []types.WorkItem, existing []types.ProcessingResult, opts Options) ([]types.ProcessingResult, []types.Failure, error) {
	log := opts.Log

	completed := store.CompletedIDs(existing)

	var pending []types.WorkItem
	skipped := 0
	for _, item := range items {
		if _, done := completed[item.ID]; done {
			log.Info("skipping completed item", "id", item.ID, "title", item.Title)
			skipped++
			continue
		}
		pending = append(pending, item)
	}

	if len(pending) == 0 {
		log.Info("all items already processed", "total", len(items), "stored", len(existing))
		return existing, nil, nil
	}

	log.Info("processing items",
		"pending", len(pending),
		"skipped", skipped,
		"concurrency", opts.BatchSize)

	results := append([]types.ProcessingResult(nil), existing...)
	var resultsMu sync.Mutex

	var failures []types.Failure
	var failuresMu sync.Mutex

	// Caps in-flight service calls across the whole run.
	sem := semaphore.NewWeighted(int64(opts.BatchSize))

	for _, batch := range partition(pending, opts.BatchSize) {
		g := new(errgroup.Group)

		for _, item := range batch {
			g.Go(func() error {
				if err := sem.Acquire(ctx, 1); err != nil {
					failuresMu.Lock()
					failures = append(failures, types.Failure{ID: item.ID, Title: item.Title, Err: err})
					failuresMu.Unlock()
					return nil
				}
				defer sem.Release(1)

				result, err := opts.Transformer.Process(ctx, item, opts.HighlightSet)
				if err != nil {
					log.Error("item failed", "id", item.ID, "title", item.Title, "error", err)
					failuresMu.Lock()
					failures = append(failures, types.Failure{ID: item.ID, Title: item.Title, Err: err})
					failuresMu.Unlock()
					return nil
				}

				for _, w := range validate.CheckHighlights(result, opts.HighlightSet) {
					log.Warn("validation warning", "id", item.ID, "warning", w.String())
				}
				for _, w := range validate.CheckMarkup(result) {
					log.Warn("validation warning", "id", item.ID, "warning", w.String())
				}

				resultsMu.Lock()
				results = append(results, result)
				resultsMu.Unlock()
				log.Info("item completed", "id", item.ID, "title", item.Title, "seconds", result.DurationSeconds)
				return nil
			})
		}

		// Item errors are collected, never returned, so Wait only joins.
		_ = g.Wait()

		if err := opts.Checkpoint.Save(results); err != nil {
			return results, failures, err
		}
	}

	log.Info("run complete",
		"processed", len(pending)-len(failures),
		"failed", len(failures),
		"skipped", skipped,
		"stored", len(results))

	return results, failures, nil
}

// partition splits items into consecutive batches of at most size.
func partition(items []types.WorkItem, size int) [][]types.WorkItem {
	var batches [][]types.WorkItem
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
