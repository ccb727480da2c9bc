package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNewRateSelection(t *testing.T) {
	withoutKey := New("")
	if withoutKey.tb.Limit() != UnauthenticatedRate {
		t.Errorf("rate without key = %v, want %v", withoutKey.tb.Limit(), UnauthenticatedRate)
	}
	withKey := New("some-key")
	if withKey.tb.Limit() != AuthenticatedRate {
		t.Errorf("rate with key = %v, want %v", withKey.tb.Limit(), AuthenticatedRate)
	}
}

func TestLimiterRollingWindow(t *testing.T) {
	l := NewWithRate(5)
	ctx := context.Background()

	start := time.Now()
	const n = 15
	for i := 0; i < n; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	elapsed := time.Since(start)

	// 15 requests at 5/s (after the initial burst of 5) must take at
	// least ~2 seconds; this asserts the "no more than rate per rolling
	// second" property from spec.md §8 without needing a full minute.
	if elapsed < 1800*time.Millisecond {
		t.Errorf("15 requests at 5/s completed in %v, expected >= ~2s", elapsed)
	}
}

func TestLimiterCancellation(t *testing.T) {
	l := NewWithRate(1)
	ctx, cancel := context.WithCancel(context.Background())

	// Drain the initial burst.
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("Wait with cancelled context should return an error")
	}
}

func TestCredentialPoolRoundRobin(t *testing.T) {
	p := NewCredentialPool("a@x.com,b@x.com,c@x.com", "")
	got := []string{p.NextEmail(), p.NextEmail(), p.NextEmail(), p.NextEmail()}
	want := []string{"a@x.com", "b@x.com", "c@x.com", "a@x.com"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NextEmail()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCredentialPoolDefaults(t *testing.T) {
	p := NewCredentialPool("", "")
	if p.Size() != len(DefaultEmails) {
		t.Errorf("Size() = %d, want %d", p.Size(), len(DefaultEmails))
	}
}

func TestCredentialPoolAPIKey(t *testing.T) {
	p := NewCredentialPool("", "secret")
	if !p.HasAPIKey() || p.APIKey() != "secret" {
		t.Errorf("APIKey() = %q, HasAPIKey() = %v", p.APIKey(), p.HasAPIKey())
	}
}
