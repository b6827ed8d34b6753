package fetch

import (
	"context"

	"github.com/devscaffold/scafsync/internal/domain"
)

// Attempt performs one try of a fetch. A network-layer failure returns a
// non-nil error and no status; otherwise the response body and status code
// are returned and classification is left to the retrier.
type Attempt func(ctx context.Context) (data []byte, status int, err error)

// SuccessFn decides whether a status code counts as success.
type SuccessFn func(status int) bool

// DefaultSuccess treats exactly the two completion codes the endpoints
// use as success, not the whole 2xx class.
func DefaultSuccess(status int) bool {
	return status == 200 || status == 201
}

// Retrier executes one logical fetch: up to tryLimits attempts of an
// Attempt, retrying only transient outcomes. Retries are immediate; there
// is no backoff between attempts.
type Retrier struct {
	tryLimits int
	success   SuccessFn
}

// NewRetrier creates a Retrier with the given attempt budget. A nil
// success predicate falls back to DefaultSuccess.
func NewRetrier(tryLimits int, success SuccessFn) *Retrier {
	if success == nil {
		success = DefaultSuccess
	}
	return &Retrier{
		tryLimits: tryLimits,
		success:   success,
	}
}

// Do runs op until it succeeds, the attempt budget is exhausted, or a
// non-retryable outcome is observed.
//
// Outcomes per attempt:
//   - network failure (no response): retryable, recorded as TransientError
//   - status in [500,600): retryable, recorded as StatusError
//   - any other non-success status: not retryable, returned immediately
//     regardless of remaining budget
//   - success status: data returned
//
// A budget of zero or less fails with ErrInvalidTryLimit without running
// op. After the last permitted attempt the last recorded error is
// returned.
func (r *Retrier) Do(ctx context.Context, url string, op Attempt) ([]byte, error) {
	if r.tryLimits <= 0 {
		return nil, domain.ErrInvalidTryLimit
	}

	var lastErr error
	for attempt := 1; attempt <= r.tryLimits; attempt++ {
		if err := ctx.Err(); err != nil {
			// Deadline or cancellation spans the whole retry sequence;
			// stop burning attempts the transport would fail anyway.
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, &domain.TransientError{Err: err}
		}

		data, status, err := op(ctx)
		if err != nil {
			lastErr = &domain.TransientError{Err: err}
			continue
		}
		if r.success(status) {
			return data, nil
		}

		statusErr := &domain.StatusError{Code: status, URL: url}
		lastErr = statusErr
		if !statusErr.Retryable() {
			return nil, statusErr
		}
	}

	return nil, lastErr
}
