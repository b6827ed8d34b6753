package fetch

import "context"

// Limiter drives a batch of work items so that no more than a configured
// number of callbacks run at once. Items are dispatched in input order;
// completion order is unconstrained.
type Limiter struct {
	limit int
}

// NewLimiter creates a Limiter. Limits below one are clamped to one.
func NewLimiter(limit int) *Limiter {
	if limit < 1 {
		limit = 1
	}
	return &Limiter{limit: limit}
}

// Limit returns the configured concurrency limit
func (l *Limiter) Limit() int {
	return l.limit
}

// Run invokes fn for indices 0..n-1 with at most the configured number in
// flight. When the in-flight set is at capacity it waits for any one
// operation to settle before admitting the next item, and after dispatch
// it waits for all remaining operations to settle.
//
// The first failure is returned verbatim. Failures are observed only at
// those synchronization points: once one is seen no further items are
// admitted, but in-flight siblings are not cancelled — they drain to
// completion, so Run always terminates.
func (l *Limiter) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	// Unbuffered: a settled operation is only removed from the in-flight
	// set when the dispatcher reaches its next synchronization point.
	done := make(chan error)

	inFlight := 0
	var firstErr error

	for i := 0; i < n && firstErr == nil; i++ {
		if inFlight == l.limit {
			if err := <-done; err != nil {
				firstErr = err
			}
			inFlight--
			if firstErr != nil {
				break
			}
		}

		idx := i
		inFlight++
		go func() {
			done <- fn(ctx, idx)
		}()
	}

	// Final join: drain whatever is still in flight.
	for ; inFlight > 0; inFlight-- {
		if err := <-done; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
