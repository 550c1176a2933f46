package utils

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

var errFlaky = errors.New("flaky")

func fastRetry() *RetryConfig {
	return &RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, BackoffMultiplier: 2}
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastRetry(), discard(), "op", func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errFlaky
		}
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("expected 42, got %d err=%v", got, err)
	}
}

func TestRetryExhaustedWrapsLastError(t *testing.T) {
	_, err := Retry(context.Background(), fastRetry(), discard(), "op", func(context.Context) (int, error) {
		return 0, errFlaky
	})
	if !errors.Is(err, errFlaky) {
		t.Fatalf("expected wrapped errFlaky, got %v", err)
	}
}

func TestRetryStopsOnPermanent(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(), discard(), "op", func(context.Context) (int, error) {
		calls++
		return 0, Permanent(errFlaky)
	})
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
	if err != errFlaky {
		t.Fatalf("expected unwrapped errFlaky, got %v", err)
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"a.b@x.com":       true,
		"player@arena.gg": true,
		"":                false,
		"no-at-sign":      false,
		"Name <a@b.com>":  false,
		"trailing@":       false,
	}
	for in, want := range cases {
		if got := IsValidEmail(in); got != want {
			t.Fatalf("IsValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
}
