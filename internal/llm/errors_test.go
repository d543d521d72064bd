package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestPermanent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline wrapped", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"truncated", &TruncatedError{}, true},
		{"invalid response", &InvalidResponseError{Err: errors.New("bad json")}, false},
		{"rate limit", &RateLimitError{RetryAfter: time.Second}, false},
		{"unavailable", &UnavailableError{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Permanent(tt.err); got != tt.want {
				t.Errorf("Permanent(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != UnlabeledPurpose {
		t.Errorf("PurposeFrom(empty) = %q", got)
	}
	ctx := WithPurpose(context.Background(), "world-gen")
	if got := PurposeFrom(ctx); got != "world-gen" {
		t.Errorf("PurposeFrom = %q, want world-gen", got)
	}
}

func TestRateLimitErrorMessage(t *testing.T) {
	err := &RateLimitError{Err: errors.New("429")}
	if got := err.Error(); got != "rate limited: 429" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, err.Err) {
		t.Error("expected Unwrap to expose the cause")
	}
}
