package catalog

import (
	"context"
	"errors"
	"iter"
)

// ErrResultsConsumed is yielded when a Results is iterated a second time.
var ErrResultsConsumed = errors.New("catalog: results already consumed")

// PageFunc fetches the page of results starting at offset from. more reports
// whether another page may follow.
type PageFunc[T any] func(ctx context.Context, from int) (items []T, more bool, err error)

// Results is a lazy, finite, non-restartable sequence of search results.
// Pages are fetched only as iteration reaches them, and the sequence can be
// consumed once. Results is not safe for concurrent use.
type Results[T any] struct {
	fetch    PageFunc[T]
	consumed bool
}

// NewResults returns a Results that pulls pages from fetch.
func NewResults[T any](fetch PageFunc[T]) *Results[T] {
	return &Results[T]{fetch: fetch}
}

// FromSlice returns a single-page Results over items.
func FromSlice[T any](items []T) *Results[T] {
	return NewResults(func(_ context.Context, _ int) ([]T, bool, error) {
		return items, false, nil
	})
}

// FromError returns a Results whose first fetch fails with err.
func FromError[T any](err error) *Results[T] {
	return NewResults(func(_ context.Context, _ int) ([]T, bool, error) {
		return nil, false, err
	})
}

// All yields each result in order. A fetch error is yielded once with the
// zero value and ends the sequence. Iterating a second time yields
// ErrResultsConsumed.
func (r *Results[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if r.consumed {
			yield(zero, ErrResultsConsumed)
			return
		}
		r.consumed = true

		from := 0
		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			items, more, err := r.fetch(ctx, from)
			if err != nil {
				yield(zero, err)
				return
			}
			for _, it := range items {
				if !yield(it, nil) {
					return
				}
			}
			if !more || len(items) == 0 {
				return
			}
			from += len(items)
		}
	}
}

// Collect drains the sequence into a slice, stopping at the first error.
func (r *Results[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for it, err := range r.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, it)
	}
	return out, nil
}
