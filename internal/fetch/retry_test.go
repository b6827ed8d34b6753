package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devscaffold/scafsync/internal/domain"
)

// scriptedAttempt replays a fixed sequence of outcomes, then repeats the
// last one.
type scriptedOutcome struct {
	data   []byte
	status int
	err    error
}

func scriptedAttempt(outcomes []scriptedOutcome, calls *int) Attempt {
	return func(ctx context.Context) ([]byte, int, error) {
		i := *calls
		if i >= len(outcomes) {
			i = len(outcomes) - 1
		}
		*calls++
		out := outcomes[i]
		return out.data, out.status, out.err
	}
}

func TestRetrier_TransientThenSuccess(t *testing.T) {
	// For every budget N, failing the first N-1 attempts with a 503 and
	// succeeding on attempt N must return the success value.
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("budget %d", n), func(t *testing.T) {
			outcomes := make([]scriptedOutcome, 0, n)
			for i := 0; i < n-1; i++ {
				outcomes = append(outcomes, scriptedOutcome{status: 503})
			}
			outcomes = append(outcomes, scriptedOutcome{data: []byte("payload"), status: 200})

			calls := 0
			r := NewRetrier(n, nil)
			data, err := r.Do(context.Background(), "u", scriptedAttempt(outcomes, &calls))
			if err != nil {
				t.Fatalf("Do() error = %v, want nil", err)
			}
			if string(data) != "payload" {
				t.Errorf("Do() = %q, want %q", data, "payload")
			}
			if calls != n {
				t.Errorf("attempts = %d, want %d", calls, n)
			}
		})
	}
}

func TestRetrier_ClientErrorStopsImmediately(t *testing.T) {
	// A 404 is not retried: exactly one attempt runs no matter the budget.
	calls := 0
	r := NewRetrier(5, nil)
	_, err := r.Do(context.Background(), "u", scriptedAttempt([]scriptedOutcome{{status: 404}}, &calls))

	if calls != 1 {
		t.Errorf("attempts = %d, want 1", calls)
	}
	var se *domain.StatusError
	if !errors.As(err, &se) || se.Code != 404 {
		t.Errorf("Do() error = %v, want StatusError 404", err)
	}
}

func TestRetrier_ExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	r := NewRetrier(3, nil)
	_, err := r.Do(context.Background(), "u", scriptedAttempt([]scriptedOutcome{
		{status: 500},
		{status: 502},
		{status: 503},
	}, &calls))

	if calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}
	var se *domain.StatusError
	if !errors.As(err, &se) || se.Code != 503 {
		t.Errorf("Do() error = %v, want last StatusError 503", err)
	}
}

func TestRetrier_NetworkFailureRetries(t *testing.T) {
	calls := 0
	r := NewRetrier(2, nil)
	data, err := r.Do(context.Background(), "u", scriptedAttempt([]scriptedOutcome{
		{err: errors.New("connection reset")},
		{data: []byte("ok"), status: 200},
	}, &calls))

	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}
	if string(data) != "ok" {
		t.Errorf("Do() = %q, want %q", data, "ok")
	}
}

func TestRetrier_NetworkFailureExhaustion(t *testing.T) {
	netErr := errors.New("connection refused")
	calls := 0
	r := NewRetrier(3, nil)
	_, err := r.Do(context.Background(), "u", scriptedAttempt([]scriptedOutcome{{err: netErr}}, &calls))

	if calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}
	if !errors.Is(err, netErr) {
		t.Errorf("Do() error = %v, want wrapped %v", err, netErr)
	}
	if !domain.IsRetryable(err) {
		t.Error("exhaustion error should still classify as transient")
	}
}

func TestRetrier_InvalidTryLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		calls := 0
		r := &Retrier{tryLimits: limit, success: DefaultSuccess}
		_, err := r.Do(context.Background(), "u", scriptedAttempt([]scriptedOutcome{{status: 200}}, &calls))

		if !errors.Is(err, domain.ErrInvalidTryLimit) {
			t.Errorf("limit %d: Do() error = %v, want ErrInvalidTryLimit", limit, err)
		}
		if calls != 0 {
			t.Errorf("limit %d: op ran %d times, want 0", limit, calls)
		}
	}
}

func TestRetrier_CustomSuccessFn(t *testing.T) {
	// 204 is not a success by default but an alternate endpoint may treat
	// it as one.
	calls := 0
	r := NewRetrier(1, func(status int) bool { return status == 204 })
	_, err := r.Do(context.Background(), "u", scriptedAttempt([]scriptedOutcome{{status: 204}}, &calls))
	if err != nil {
		t.Errorf("Do() error = %v, want nil with custom success fn", err)
	}
}

func TestDefaultSuccess(t *testing.T) {
	// Exactly two codes count as success, not the whole 2xx class.
	tests := []struct {
		status int
		want   bool
	}{
		{200, true},
		{201, true},
		{202, false},
		{204, false},
		{299, false},
		{404, false},
	}
	for _, tt := range tests {
		if got := DefaultSuccess(tt.status); got != tt.want {
			t.Errorf("DefaultSuccess(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRetrier_CancelledContextStopsAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	r := NewRetrier(3, nil)
	_, err := r.Do(ctx, "u", scriptedAttempt([]scriptedOutcome{{status: 503}}, &calls))

	if calls != 0 {
		t.Errorf("attempts = %d, want 0 with pre-cancelled context", calls)
	}
	if err == nil {
		t.Error("Do() error = nil, want cancellation error")
	}
}
