package runctx

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/logging"
)

// SaveFunc persists one batch of updates.
type SaveFunc func(ctx context.Context, batch []catalog.Update) (*catalog.SaveResult, error)

// CommitResult reports what Commit persisted. On failure it covers only the
// batches saved before the failing one. Saved counts the updates sent;
// Mutated counts the entities the catalog reported as changed.
type CommitResult struct {
	Batches int
	Saved   int
	Mutated int
	Total   int
}

// Commit saves the queued updates in queue order, batchSize at a time. The
// last batch may be short. The first failing batch stops the commit; batches
// already saved stay saved, nothing is rolled back.
//
// After Commit returns (whether success or failure), the RunContext is marked
// as committed and no further updates can be queued. An empty queue issues no
// save call.
//
// Returns ErrAlreadyCommitted if called more than once.
func (rc *RunContext) Commit(ctx context.Context, batchSize int, save SaveFunc) (CommitResult, error) {
	if batchSize < 1 {
		return CommitResult{}, fmt.Errorf("%w, got %d", ErrInvalidBatchSize, batchSize)
	}
	if rc.committed {
		return CommitResult{}, ErrAlreadyCommitted
	}
	rc.committed = true

	logger := logging.FromContext(ctx)
	res := CommitResult{Total: len(rc.queue)}
	batches := (len(rc.queue) + batchSize - 1) / batchSize

	for batch := range slices.Chunk(rc.queue, batchSize) {
		step := res.Batches + 1

		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("saving batch %d of %d: %w", step, batches, err)
		}

		saved, err := save(ctx, batch)
		if err != nil {
			logger.ErrorContext(ctx, "batch save failed, earlier batches remain committed",
				slog.String("operation", "RunContext.Commit"),
				slog.Int("failed_batch", step),
				slog.Int("batches", batches),
				slog.Int("saved", res.Saved),
				slog.Any("error", err),
			)
			return res, fmt.Errorf("saving batch %d of %d: %w", step, batches, err)
		}

		res.Batches++
		res.Saved += len(batch)
		res.Mutated += saved.Len()

		logger.InfoContext(ctx, "batch saved",
			slog.String("operation", "RunContext.Commit"),
			slog.Int("batch", step),
			slog.Int("batches", batches),
			slog.Int("saved", res.Saved),
			slog.Int("mutated", saved.Len()),
			slog.Int("total", res.Total),
		)
	}

	return res, nil
}
