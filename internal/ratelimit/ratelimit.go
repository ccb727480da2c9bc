// Package ratelimit provides the process-wide token bucket and
// round-robin credential pool shared by every outbound NCBI call (spec.md
// §4.2). Modeled directly on the corpus's asta.Client, which wraps
// golang.org/x/time/rate the same way.
package ratelimit

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Unauthenticated and authenticated NCBI Entrez rates (spec.md §4.2).
const (
	UnauthenticatedRate = 3.0
	AuthenticatedRate   = 10.0
)

// DefaultEmails is the built-in credential pool used when no EMAILS
// override is configured.
var DefaultEmails = []string{
	"pmcgrab.worker1@example.com",
	"pmcgrab.worker2@example.com",
	"pmcgrab.worker3@example.com",
}

// Limiter is a process-wide token bucket. It is not a package-level
// singleton: callers construct one per orchestrator instance and pass it
// explicitly to workers (spec.md §9 design note on shared mutable state).
type Limiter struct {
	tb *rate.Limiter
}

// New constructs a Limiter. If apiKey is non-empty the rate is 10 req/s,
// otherwise 3 req/s, per spec.md §4.2. Burst capacity equals the rate so a
// full bucket can issue one second's worth of requests immediately.
func New(apiKey string) *Limiter {
	r := UnauthenticatedRate
	if apiKey != "" {
		r = AuthenticatedRate
	}
	return &Limiter{tb: rate.NewLimiter(rate.Limit(r), int(r))}
}

// NewWithRate constructs a Limiter at an explicit rate, for tests that need
// to assert the rolling-window property without waiting 20 seconds.
func NewWithRate(requestsPerSecond float64) *Limiter {
	return &Limiter{tb: rate.NewLimiter(rate.Limit(requestsPerSecond), int(requestsPerSecond))}
}

// Wait blocks until a token is available or ctx is cancelled. Every remote
// fetch, ID-conversion call, and auxiliary service call must call this
// before issuing its HTTP request.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.tb.Wait(ctx)
}

// CredentialPool is a thread-safe, round-robin rotation over a list of
// contact emails plus an optional shared API key (spec.md §4.2).
type CredentialPool struct {
	emails []string
	apiKey string
	next   atomic.Uint64
	mu     sync.Mutex
}

// NewCredentialPool builds a pool from a comma-separated EMAILS override
// (may be empty, in which case DefaultEmails is used) and an API key.
func NewCredentialPool(emailsCSV, apiKey string) *CredentialPool {
	var emails []string
	if strings.TrimSpace(emailsCSV) != "" {
		for _, e := range strings.Split(emailsCSV, ",") {
			e = strings.TrimSpace(e)
			if e != "" {
				emails = append(emails, e)
			}
		}
	}
	if len(emails) == 0 {
		emails = append([]string(nil), DefaultEmails...)
	}
	return &CredentialPool{emails: emails, apiKey: apiKey}
}

// NextEmail returns the next email in round-robin order, wrapping at the
// end of the list. Thread-safe; rotation order matches the order in which
// callers invoke NextEmail (spec.md §5: "strictly round-robin in the order
// tokens are acquired").
func (p *CredentialPool) NextEmail() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.next.Add(1) - 1
	return p.emails[int(i)%len(p.emails)]
}

// APIKey returns the configured NCBI API key, or "" if none was supplied.
func (p *CredentialPool) APIKey() string {
	return p.apiKey
}

// HasAPIKey reports whether an API key is configured, which governs the
// rate limit (spec.md §4.2).
func (p *CredentialPool) HasAPIKey() bool {
	return p.apiKey != ""
}

// Size returns the number of emails in the pool, mostly for tests.
func (p *CredentialPool) Size() int {
	return len(p.emails)
}
