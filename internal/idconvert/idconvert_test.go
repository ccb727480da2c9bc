package idconvert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/httpx"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ratelimit"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	limiter := ratelimit.NewWithRate(1000)
	creds := ratelimit.NewCredentialPool("", "")
	h := httpx.New(limiter, creds, retry.Policy{MaxAttempts: 1}, 5*time.Second, zerolog.Nop())
	c := NewClient(h)
	c.BaseURL = srv.URL
	return c, srv.Close
}

func TestResolve_AlreadyPMCID(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not call the network for an already-canonical PMCID")
	})
	defer closeFn()

	got, err := c.Resolve(context.Background(), "PMC7181753")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "7181753" {
		t.Errorf("got %q, want %q", got, "7181753")
	}
}

func TestResolve_PMIDViaConverter(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[{"pmcid":"PMC7181753","pmid":"32265220"}]}`))
	})
	defer closeFn()

	got, err := c.Resolve(context.Background(), "32265220")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "7181753" {
		t.Errorf("got %q, want %q", got, "7181753")
	}
}

func TestResolve_NoMapping(t *testing.T) {
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[{"pmid":"1","status":"error"}]}`))
	})
	defer closeFn()

	_, err := c.Resolve(context.Background(), "10.1000/doesnotexist")
	if retry.KindOf(err) != retry.KindNotFound {
		t.Fatalf("got kind %v, want NotFound", retry.KindOf(err))
	}
}

func TestResolveBatch_DedupesAndPreservesOrder(t *testing.T) {
	calls := 0
	c, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		ids := r.URL.Query().Get("ids")
		w.Write([]byte(`{"records":[{"pmcid":"PMC999","pmid":"` + ids + `"}]}`))
	})
	defer closeFn()

	got, err := c.ResolveBatch(context.Background(), []string{"111", "222", "111"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if got[0] != "999" || got[1] != "999" || got[2] != "999" {
		t.Errorf("got %v", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 network calls (deduped), got %d", calls)
	}
}
