package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSingleAttemptByDefault(t *testing.T) {
	exec := NewExecutor(Config{BreakerEnabled: false})

	calls := 0
	wantErr := errors.New("boom")
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return wantErr
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Fatalf("default config must not retry, calls = %d", calls)
	}
}

func TestRetriesWhenConfigured(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2.0,
		BreakerEnabled:      false,
	})

	calls := 0
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestNonRetryableStopsImmediately(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    5,
		RetryInitialBackoff: time.Millisecond,
		BreakerEnabled:      false,
	})

	calls := 0
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("permanent")
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	})
	if err == nil || calls != 1 {
		t.Fatalf("err = %v, calls = %d", err, calls)
	}
}

func TestCanceledContextShortCircuits(t *testing.T) {
	exec := NewExecutor(Config{BreakerEnabled: false})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := exec.Execute(ctx, "op", func(context.Context) error {
		calls++
		return nil
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if calls != 0 {
		t.Fatal("callback must not run after cancellation")
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	exec := NewExecutor(Config{
		BreakerEnabled:      true,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	})

	classifier := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 3; i++ {
		_ = exec.Execute(context.Background(), "op", func(context.Context) error {
			return errors.New("down")
		}, classifier)
	}

	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		t.Fatal("callback must not run while the circuit is open")
		return nil
	}, classifier)
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestBreakersAreScopedPerOperation(t *testing.T) {
	exec := NewExecutor(Config{
		BreakerEnabled:      true,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	})

	classifier := func(error) ErrorClassification {
		return ErrorClassification{RecordFailure: true}
	}
	for i := 0; i < 2; i++ {
		_ = exec.Execute(context.Background(), "broken", func(context.Context) error {
			return errors.New("down")
		}, classifier)
	}

	if err := exec.Execute(context.Background(), "healthy", func(context.Context) error {
		return nil
	}, classifier); err != nil {
		t.Fatalf("independent operation must stay closed, got %v", err)
	}
}
