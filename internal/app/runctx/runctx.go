// Package runctx provides run-scoped state for the domain sync.
//
// RunContext extends Go's context.Context with in-memory memoization of
// data fetched once per run and a queue of staged domain-assignment
// updates that Commit flushes in fixed-size batches.
//
// A new RunContext is created per sync run and must not be shared between
// concurrent runs:
//
//	rc := runctx.New(ctx, runID)
//
//	// Stage 1: Fetch data with memoization
//	index, err := runctx.GetOrFetch(rc, "domains", buildIndex)
//
//	// Stage 2: Queue updates
//	err = rc.Queue(project.AssignDomain(guid))
//
//	// Stage 3: Save in batches
//	res, err := rc.Commit(ctx, 50, client.Save)
package runctx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
)

// ErrAlreadyCommitted is returned when Queue or Commit is called on a
// RunContext that has already been committed.
var ErrAlreadyCommitted = errors.New("runctx: run already committed")

// ErrTypeMismatch is returned by GetOrFetch when a cached value's type does
// not match the requested type T. This indicates a programming error where
// the same cache key is used with different types.
var ErrTypeMismatch = errors.New("runctx: cached value type mismatch")

// ErrInvalidBatchSize is returned by Commit for a batch size below one.
var ErrInvalidBatchSize = errors.New("runctx: batch size must be >= 1")

// RunContext is a run-scoped context wrapper providing memoization and a
// staged update queue. It is NOT safe for concurrent use.
type RunContext struct {
	context.Context
	id        string
	cache     map[string]cacheEntry
	queue     []catalog.Update
	committed bool
}

// cacheEntry stores the result of a GetOrFetch call, including any error.
type cacheEntry struct {
	value any
	err   error
}

// New creates a RunContext wrapping ctx and identified by runID.
func New(ctx context.Context, runID string) *RunContext {
	return &RunContext{
		Context: ctx,
		id:      runID,
		cache:   make(map[string]cacheEntry),
	}
}

// ID returns the run identifier.
func (rc *RunContext) ID() string {
	return rc.id
}

// GetOrFetch returns a cached value for key, or calls fetchFn to fetch and
// cache it. Both successful results and errors are cached so a failed fetch
// is not retried within the same run.
//
// The same key must always be used with the same type T. If a cached value
// exists but its type does not match T, GetOrFetch returns ErrTypeMismatch.
func GetOrFetch[T any](rc *RunContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	if entry, ok := rc.cache[key]; ok {
		if entry.err != nil {
			var zero T
			return zero, entry.err
		}
		v, ok := entry.value.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
		}
		return v, nil
	}

	val, err := fetchFn(rc.Context)
	rc.cache[key] = cacheEntry{value: val, err: err}
	return val, err
}

// DataProvider binds a cache key and fetch function together.
type DataProvider[T any] struct {
	key     string
	fetchFn func(ctx context.Context) (T, error)
}

// NewDataProvider creates a DataProvider with the given cache key and fetch
// function.
func NewDataProvider[T any](key string, fetchFn func(ctx context.Context) (T, error)) *DataProvider[T] {
	return &DataProvider[T]{key: key, fetchFn: fetchFn}
}

// Get returns the cached value or fetches it using the provider's fetch
// function.
func (p *DataProvider[T]) Get(rc *RunContext) (T, error) {
	return GetOrFetch(rc, p.key, p.fetchFn)
}

// Queue appends updates to the save queue in order.
// Returns ErrAlreadyCommitted once the run has been committed.
func (rc *RunContext) Queue(updates ...catalog.Update) error {
	if rc.committed {
		return ErrAlreadyCommitted
	}
	rc.queue = append(rc.queue, updates...)
	return nil
}

// Len returns the number of queued updates.
func (rc *RunContext) Len() int {
	return len(rc.queue)
}

// Pending returns a copy of the queued updates in queue order.
func (rc *RunContext) Pending() []catalog.Update {
	out := make([]catalog.Update, len(rc.queue))
	copy(out, rc.queue)
	return out
}
