package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetryConfig(), func() error {
		attempts++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryRecoversAfterFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetryConfig(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	wantErr := errors.New("persistent")
	attempts := 0
	err := Retry(context.Background(), fastRetryConfig(), func() error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected last error %v, got %v", wantErr, err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := Retry(ctx, fastRetryConfig(), func() error {
		attempts++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt after cancel, got %d", attempts)
	}
}

func TestRetryWithResultReturnsValue(t *testing.T) {
	attempts := 0
	got, err := RetryWithResult(context.Background(), fastRetryConfig(), func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("RetryWithResult returned error: %v", err)
	}
	if got != "ok" {
		t.Errorf("expected %q, got %q", "ok", got)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetryWithResultZeroValueOnFailure(t *testing.T) {
	got, err := RetryWithResult(context.Background(), fastRetryConfig(), func() (int, error) {
		return 42, errors.New("persistent")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got != 0 {
		t.Errorf("expected zero value on failure, got %d", got)
	}
}
