package domain

import (
	"errors"
	"fmt"
	"time"
)

// Common domain errors
var (
	// ErrInvalidTryLimit indicates a retry budget of zero or less was
	// supplied by the caller. It is a configuration error, not a request
	// outcome.
	ErrInvalidTryLimit = errors.New("try limit must be at least 1")

	// ErrTruncatedListing indicates the remote listing endpoint could not
	// return the full recursive tree in one call.
	ErrTruncatedListing = errors.New("remote listing is truncated")
)

// TransientError wraps a network-layer failure where no response was
// received at all. Always retryable.
type TransientError struct {
	Err error
}

// Error returns the error message
func (e *TransientError) Error() string {
	if e.Err != nil {
		return "no response: " + e.Err.Error()
	}
	return "no response"
}

// Unwrap returns the underlying error
func (e *TransientError) Unwrap() error {
	return e.Err
}

// StatusError represents a response with a non-success status code.
type StatusError struct {
	Code int
	URL  string
}

// Error returns the error message
func (e *StatusError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("unexpected status %d fetching %s", e.Code, e.URL)
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Retryable reports whether the status is worth retrying. Only the
// server-error range is; anything else (4xx included) surfaces immediately.
func (e *StatusError) Retryable() bool {
	return e.Code >= 500 && e.Code < 600
}

// TimeoutError indicates a logical fetch exceeded its deadline. It carries
// no status code; the deadline fired before an outcome was observed.
type TimeoutError struct {
	Elapsed time.Duration
}

// Error returns the error message
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch timed out after %s", e.Elapsed)
}

// IsRetryable returns true if the error should be retried: either no
// response was received, or the response status was in [500,600).
func IsRetryable(err error) bool {
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return false
}

// IsTimeout returns true if the error is a deadline expiry
func IsTimeout(err error) bool {
	var to *TimeoutError
	return errors.As(err, &to)
}

// StatusCode returns the status code carried by the error, if any
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}
