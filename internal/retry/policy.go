package retry

import (
	"context"
	"math/rand"
	"time"
)

// State is a step in the per-item retry state machine described in
// spec.md §9: Idle → Scheduled → InFlight → (Succeeded | Failed |
// Retrying(k)). Modeling it explicitly lets tests inject fault sequences
// and assert attempt counts deterministically.
type State int

const (
	StateIdle State = iota
	StateScheduled
	StateInFlight
	StateSucceeded
	StateFailed
	StateRetrying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScheduled:
		return "Scheduled"
	case StateInFlight:
		return "InFlight"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	case StateRetrying:
		return "Retrying"
	default:
		return "Unknown"
	}
}

// Policy is the retry/backoff configuration from spec.md §4.3.
type Policy struct {
	MaxAttempts int           // default 3
	BaseDelay   time.Duration // default 1s
	MaxDelay    time.Duration // default 30s
}

// DefaultPolicy returns the spec's default retry configuration.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second}
}

// delayForAttempt computes the jittered exponential backoff before
// attempt k (k >= 2), per spec.md §4.3: base*2^(k-2), jittered by ±25%,
// capped at MaxDelay.
func (p Policy) delayForAttempt(k int, rnd *rand.Rand) time.Duration {
	if k < 2 {
		return 0
	}
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}
	d := base * time.Duration(1<<uint(k-2))
	if d > maxDelay {
		d = maxDelay
	}
	jitter := 0.75 + rnd.Float64()*0.5 // uniform in [0.75, 1.25]
	scaled := time.Duration(float64(d) * jitter)
	if scaled > maxDelay {
		scaled = maxDelay
	}
	return scaled
}

// Waiter is satisfied by ratelimit.Limiter; kept as an interface so retry
// does not import ratelimit, avoiding a dependency cycle and keeping the
// package independently testable.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Result carries the outcome of Run, including the final FSM state and
// attempt count the ledger needs to record.
type Result struct {
	State    State
	Attempts int
	Err      error
}

// Op is a unit of retriable work. It receives the 1-based attempt number
// and must return a *retry.Error (via New) so Run can classify the
// failure; a plain error is treated as non-retriable.
type Op func(ctx context.Context, attempt int) error

// Run drives the retry state machine for a single item: it acquires a
// rate-limiter token before every attempt (including retries, per spec.md
// §4.3 "between attempts, the token bucket is honored anew"), invokes op,
// and retries on a Kind for which IsRetriable is true until MaxAttempts is
// exhausted or a fatal/cancelled outcome occurs.
func Run(ctx context.Context, policy Policy, limiter Waiter, op Op) Result {
	return run(ctx, policy, limiter, op, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// run is the implementation behind Run, taking the jitter source as a
// parameter so tests in this package can supply a deterministic source
// instead of depending on wall-clock jitter.
func run(ctx context.Context, policy Policy, limiter Waiter, op Op, rnd *rand.Rand) Result {
	maxAttempts := policy.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt == 1 {
			// first attempt: StateScheduled
		} else {
			delay := policy.delayForAttempt(attempt, rnd)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return Result{State: StateFailed, Attempts: attempt - 1, Err: New(KindCancelled, ctx.Err())}
			case <-timer.C:
			}
		}

		if err := limiter.Wait(ctx); err != nil {
			return Result{State: StateFailed, Attempts: attempt, Err: New(KindCancelled, err)}
		}

		err := op(ctx, attempt)
		if err == nil {
			return Result{State: StateSucceeded, Attempts: attempt, Err: nil}
		}

		lastErr = err
		kind := KindOf(err)
		if kind == KindCancelled || !IsRetriable(kind) {
			return Result{State: StateFailed, Attempts: attempt, Err: err}
		}
		// retriable: loop around to Retrying state unless attempts exhausted
	}

	return Result{State: StateFailed, Attempts: maxAttempts, Err: lastErr}
}
