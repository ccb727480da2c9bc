package retry

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

type fakeLimiter struct{ waits int }

func (f *fakeLimiter) Wait(ctx context.Context) error {
	f.waits++
	return ctx.Err()
}

func TestRunSucceedsFirstTry(t *testing.T) {
	lim := &fakeLimiter{}
	calls := 0
	res := run(context.Background(), DefaultPolicy(), lim, func(ctx context.Context, attempt int) error {
		calls++
		return nil
	}, rand.New(rand.NewSource(1)))

	if res.State != StateSucceeded || res.Attempts != 1 {
		t.Fatalf("got %+v, want Succeeded/1", res)
	}
	if calls != 1 || lim.waits != 1 {
		t.Errorf("calls=%d waits=%d, want 1/1", calls, lim.waits)
	}
}

func TestRunRetriesRetriableThenSucceeds(t *testing.T) {
	lim := &fakeLimiter{}
	attempts := 0
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	res := run(context.Background(), policy, lim, func(ctx context.Context, attempt int) error {
		attempts++
		if attempt < 3 {
			return New(KindNetworkError, errors.New("timeout"))
		}
		return nil
	}, rand.New(rand.NewSource(1)))

	if res.State != StateSucceeded {
		t.Fatalf("state = %v, want Succeeded", res.State)
	}
	if res.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", res.Attempts)
	}
}

func TestRunStopsOnFatalForItem(t *testing.T) {
	lim := &fakeLimiter{}
	attempts := 0
	policy := DefaultPolicy()
	res := run(context.Background(), policy, lim, func(ctx context.Context, attempt int) error {
		attempts++
		return New(KindNotFound, errors.New("no record"))
	}, rand.New(rand.NewSource(1)))

	if res.State != StateFailed {
		t.Fatalf("state = %v, want Failed", res.State)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (NotFound is not retriable)", attempts)
	}
	if KindOf(res.Err) != KindNotFound {
		t.Errorf("KindOf(err) = %v, want NotFound", KindOf(res.Err))
	}
}

func TestRunExhaustsRetriesOn429(t *testing.T) {
	lim := &fakeLimiter{}
	attempts := 0
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	res := run(context.Background(), policy, lim, func(ctx context.Context, attempt int) error {
		attempts++
		return New(KindRateLimited, errors.New("429"))
	}, rand.New(rand.NewSource(1)))

	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (RETRIES >= 2 => at least one retry)", attempts)
	}
	if res.State != StateFailed {
		t.Errorf("state = %v, want Failed", res.State)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	lim := &fakeLimiter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := run(ctx, DefaultPolicy(), lim, func(ctx context.Context, attempt int) error {
		t.Fatal("op should not be called once context is cancelled before the first Wait")
		return nil
	}, rand.New(rand.NewSource(1)))

	if KindOf(res.Err) != KindCancelled {
		t.Errorf("KindOf(err) = %v, want Cancelled", KindOf(res.Err))
	}
}

func TestDelayForAttemptCapsAndJitters(t *testing.T) {
	p := Policy{MaxAttempts: 10, BaseDelay: time.Second, MaxDelay: 4 * time.Second}
	rnd := rand.New(rand.NewSource(42))
	for k := 2; k <= 8; k++ {
		d := p.delayForAttempt(k, rnd)
		if d > p.MaxDelay {
			t.Errorf("delayForAttempt(%d) = %v, exceeds cap %v", k, d, p.MaxDelay)
		}
		if d < 0 {
			t.Errorf("delayForAttempt(%d) = %v, negative", k, d)
		}
	}
}

func TestIsRetriableClassification(t *testing.T) {
	retriable := []Kind{KindNetworkError, KindServerError, KindRateLimited}
	fatal := []Kind{KindNotFound, KindValidationError, KindUnsupportedInput, KindParseError, KindCancelled, KindConfigError}

	for _, k := range retriable {
		if !IsRetriable(k) {
			t.Errorf("IsRetriable(%v) = false, want true", k)
		}
	}
	for _, k := range fatal {
		if IsRetriable(k) {
			t.Errorf("IsRetriable(%v) = true, want false", k)
		}
	}
}
