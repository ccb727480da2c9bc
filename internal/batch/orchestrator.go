package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/document"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/entrez"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/extract"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/metrics"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ratelimit"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/serialize"
)

// Format selects the serializer's output mode (spec.md §4.8).
type Format int

const (
	FormatPerItem Format = iota
	FormatStream
)

// DefaultWorkers is the orchestrator's default worker count (spec.md §4.9).
const DefaultWorkers = 10

// Config configures one orchestrator run.
type Config struct {
	Workers     int // default DefaultWorkers
	Policy      retry.Policy
	OutputDir   string
	StreamPath  string // used when Format == FormatStream
	Format      Format
	ValidateDTD bool
	Log         zerolog.Logger
	Metrics     *metrics.Collector // optional; nil is a valid no-op
}

// Orchestrator is the Batch Orchestrator (C9): bounded-parallel workers
// each running the full per-item pipeline, sharing one rate limiter,
// credential pool, and HTTP client across the run (spec.md §4.9, §5,
// §9 "scope each to a single orchestrator instance; pass it explicitly
// into workers").
type Orchestrator struct {
	cfg     Config
	limiter *ratelimit.Limiter
	entrez  *entrez.Client
	sink    Sink
}

// New builds an Orchestrator. limiter and entrezClient are shared,
// thread-safe collaborators constructed once by the caller (spec.md §5
// "Shared resources") and passed in explicitly rather than held as
// package-level singletons.
func New(cfg Config, limiter *ratelimit.Limiter, entrezClient *entrez.Client, sink Sink) *Orchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if sink == nil {
		sink = DiscardSink{}
	}
	return &Orchestrator{cfg: cfg, limiter: limiter, entrez: entrezClient, sink: sink}
}

// Summary is the batch completion report (spec.md §4.9, §6).
type Summary struct {
	TotalRequested int
	Successful     int
	Failed         int
	ErrorCounts    map[string]int
	ElapsedSeconds float64
	FailedItems    []FailedItem
	Ledger         []LedgerEntry
}

// FailedItem is one row of Summary.FailedItems (spec.md §6).
type FailedItem struct {
	ID            string
	LastErrorKind string
	Attempts      int
}

// Run fans items out across the configured worker count, honoring
// bounded back-pressure and cooperative cancellation, and returns a
// summary plus the full, input-ordered ledger (spec.md §4.9, §8: "the
// orchestrator returns exactly M ledger entries, one per input, in input
// order").
func (o *Orchestrator) Run(ctx context.Context, items []Item) (*Summary, error) {
	started := time.Now()
	ledger := make([]LedgerEntry, len(items))
	for i, it := range items {
		ledger[i] = LedgerEntry{Input: it.Raw, Status: StatusPending}
	}

	var streamWriter *serialize.StreamWriter
	if o.cfg.Format == FormatStream {
		w, err := serialize.OpenStreamWriter(o.cfg.StreamPath)
		if err != nil {
			return nil, retry.New(retry.KindIOFailed, err)
		}
		streamWriter = w
		defer streamWriter.Close()
	}

	var mu sync.Mutex // guards ledger and streamWriter (spec.md §3 "mutated under a lock")
	var completed atomic.Int64

	jobs := make(chan int, o.cfg.Workers) // bounded queue: spec.md §4.9 back-pressure
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			item := items[idx]

			if ctx.Err() != nil {
				o.recordCancelled(&mu, ledger, idx, item, &completed, len(items))
				continue
			}

			start := time.Now()
			entry := o.processItem(ctx, item, streamWriter, &mu)

			mu.Lock()
			ledger[idx] = entry
			mu.Unlock()

			n := completed.Add(1)
			o.sink.Report(ProgressRecord{
				Input:     entry.Input,
				Status:    entry.Status,
				Attempts:  entry.Attempts,
				ErrorKind: string(entry.ErrorKind),
				Completed: int(n),
				Total:     len(items),
			})
			if o.cfg.Metrics != nil {
				o.cfg.Metrics.ObserveItem(string(entry.Status), string(entry.ErrorKind))
				o.cfg.Metrics.ObserveDuration(time.Since(start))
			}
		}
	}

	for w := 0; w < o.cfg.Workers; w++ {
		wg.Add(1)
		go worker()
	}

	go func() {
		defer close(jobs)
		for i := range items {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	// Anything left StatusPending was never dequeued before cancellation
	// closed the producer early (spec.md §5: "no new items begin").
	for i := range ledger {
		if ledger[i].Status == StatusPending {
			ledger[i] = LedgerEntry{Input: items[i].Raw, Status: StatusFailed, ErrorKind: retry.KindCancelled}
		}
	}

	return o.buildSummary(ledger, started), nil
}

func (o *Orchestrator) recordCancelled(mu *sync.Mutex, ledger []LedgerEntry, idx int, item Item, completed *atomic.Int64, total int) {
	entry := LedgerEntry{Input: item.Raw, Status: StatusFailed, ErrorKind: retry.KindCancelled}
	mu.Lock()
	ledger[idx] = entry
	mu.Unlock()
	n := completed.Add(1)
	o.sink.Report(ProgressRecord{Input: entry.Input, Status: entry.Status, ErrorKind: string(entry.ErrorKind), Completed: int(n), Total: total})
}

func (o *Orchestrator) buildSummary(ledger []LedgerEntry, started time.Time) *Summary {
	s := &Summary{
		TotalRequested: len(ledger),
		ErrorCounts:    map[string]int{},
		ElapsedSeconds: time.Since(started).Seconds(),
		Ledger:         ledger,
	}
	for _, e := range ledger {
		switch e.Status {
		case StatusSuccess:
			s.Successful++
		case StatusFailed:
			s.Failed++
			s.ErrorCounts[string(e.ErrorKind)]++
			s.FailedItems = append(s.FailedItems, FailedItem{ID: e.Input, LastErrorKind: string(e.ErrorKind), Attempts: e.Attempts})
		}
	}
	return s
}

// processItem runs the full per-item pipeline (spec.md §2 control flow):
// acquire bytes (C1), classify/retry failures (C3), parse and clean
// (C5), extract (C6), assemble (C7), and serialize (C8).
func (o *Orchestrator) processItem(ctx context.Context, item Item, streamWriter *serialize.StreamWriter, mu *sync.Mutex) LedgerEntry {
	var doc *document.Document

	result := retry.Run(ctx, o.cfg.Policy, o.limiter, func(ctx context.Context, attempt int) error {
		data, canonicalPMCID, err := o.acquire(ctx, item)
		if err != nil {
			return err
		}

		root, err := jats.Parse(data)
		if err != nil {
			return err
		}

		if o.cfg.ValidateDTD {
			jats.ValidateDTD(data, o.cfg.Log)
		}

		if canonicalPMCID == "" {
			canonicalPMCID = extract.RawPMCID(root)
		}
		doc = document.Assemble(canonicalPMCID, root)
		return nil
	})

	entry := LedgerEntry{Input: item.Raw, Attempts: result.Attempts}
	if result.Err != nil {
		entry.Status = StatusFailed
		entry.ErrorKind = retry.KindOf(result.Err)
		if entry.ErrorKind == "" {
			entry.ErrorKind = retry.KindNetworkError
		}
		return entry
	}

	entry.Status = StatusSuccess
	artifactPath, err := o.writeArtifact(doc, streamWriter, mu)
	if err != nil {
		entry.Status = StatusFailed
		entry.ErrorKind = retry.KindOf(err)
		if entry.ErrorKind == "" {
			entry.ErrorKind = retry.KindIOFailed
		}
		return entry
	}
	entry.ArtifactPath = artifactPath
	return entry
}

func (o *Orchestrator) acquire(ctx context.Context, item Item) ([]byte, string, error) {
	if item.LocalPath != "" {
		data, _, err := entrez.ReadLocal(item.LocalPath)
		return data, "", err
	}
	data, _, err := o.entrez.FetchRemote(ctx, item.CanonicalPMCID)
	return data, item.CanonicalPMCID, err
}

func (o *Orchestrator) writeArtifact(doc *document.Document, streamWriter *serialize.StreamWriter, mu *sync.Mutex) (string, error) {
	if streamWriter != nil {
		mu.Lock()
		defer mu.Unlock()
		if err := streamWriter.Write(doc); err != nil {
			return "", retry.New(retry.KindIOFailed, err)
		}
		return o.cfg.StreamPath, nil
	}
	path, err := serialize.WriteFile(o.cfg.OutputDir, doc)
	if err != nil {
		return "", retry.New(retry.KindIOFailed, err)
	}
	return path, nil
}
