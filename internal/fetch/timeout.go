package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/devscaffold/scafsync/internal/domain"
)

// WithDeadline bounds a cancellable operation with a wall-clock deadline.
// The operation receives a context derived from ctx that is cancelled when
// the deadline fires; cancellation is cooperative, so the guard settles as
// a TimeoutError at the deadline even if the operation takes longer to
// observe it. The derived context is always cancelled, so no timer leaks.
//
// Callers that wrap a whole retry sequence get a single deadline spanning
// all attempts, not one deadline per attempt. A non-positive deadline runs
// the operation unguarded.
func WithDeadline(ctx context.Context, deadline time.Duration, op func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if deadline <= 0 {
		return op(ctx)
	}

	dctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()

	type outcome struct {
		data []byte
		err  error
	}
	// Buffered so an abandoned operation can still settle and exit.
	done := make(chan outcome, 1)

	go func() {
		data, err := op(dctx)
		done <- outcome{data: data, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(dctx.Err(), context.DeadlineExceeded) {
			return nil, &domain.TimeoutError{Elapsed: time.Since(start)}
		}
		return out.data, out.err
	case <-dctx.Done():
		if errors.Is(dctx.Err(), context.DeadlineExceeded) {
			return nil, &domain.TimeoutError{Elapsed: time.Since(start)}
		}
		return nil, dctx.Err()
	}
}
