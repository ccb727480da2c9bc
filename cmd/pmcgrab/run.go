package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/batch"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/config"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/entrez"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/httpx"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/idconvert"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/metrics"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/pmcid"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ratelimit"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

// runtime bundles the shared collaborators every input-mode subcommand
// needs to build its item list and invoke the orchestrator (spec.md §5
// "Shared resources... scope each to a single orchestrator instance").
type runtime struct {
	cfg       config.Config
	policy    retry.Policy
	limiter   *ratelimit.Limiter
	creds     *ratelimit.CredentialPool
	http      *httpx.Client
	entrez    *entrez.Client
	idconvert *idconvert.Client
	metrics   *metrics.Collector
}

func newRuntime() *runtime {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitInvalidArgs, "loading configuration: %v", err)
	}

	log := newLogger()
	creds := ratelimit.NewCredentialPool(cfg.EmailsCSV(), cfg.APIKey)
	limiter := ratelimit.New(cfg.APIKey)

	policy := retry.DefaultPolicy()
	if cfg.Retries > 0 {
		policy.MaxAttempts = cfg.Retries
	}

	h := httpx.New(limiter, creds, policy, cfg.Timeout, log)

	return &runtime{
		cfg:       cfg,
		policy:    policy,
		limiter:   limiter,
		creds:     creds,
		http:      h,
		entrez:    entrez.NewClient(h),
		idconvert: idconvert.NewClient(h),
		metrics:   metrics.New(),
	}
}

// runBatch resolves the output format flag, builds the orchestrator, and
// executes it over items, translating the result into the process exit
// code contract (spec.md §6).
func (rt *runtime) runBatch(items []batch.Item) {
	if len(items) == 0 {
		exitWithError(ExitInvalidArgs, "no input items given")
	}

	format := batch.FormatPerItem
	streamPath := ""
	switch strings.ToLower(flagFormat) {
	case "", "per-item":
		format = batch.FormatPerItem
	case "stream":
		format = batch.FormatStream
		streamPath = filepath.Join(flagOutputDir, "pmcgrab_stream.jsonl")
	default:
		exitWithError(ExitInvalidArgs, "invalid --format %q: must be per-item or stream", flagFormat)
	}

	if format == batch.FormatPerItem {
		if err := os.MkdirAll(flagOutputDir, 0o755); err != nil {
			exitWithError(ExitOutputUnwritable, "creating output directory: %v", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(streamPath), 0o755); err != nil {
		exitWithError(ExitOutputUnwritable, "creating output directory: %v", err)
	}

	var sink batch.Sink = batch.DiscardSink{}
	if !flagQuiet {
		sink = batch.ConsoleSink{Log: newLogger()}
	}

	orch := batch.New(batch.Config{
		Workers:    flagWorkers,
		Policy:     rt.policy,
		OutputDir:  flagOutputDir,
		StreamPath: streamPath,
		Format:     format,
		Log:        newLogger(),
		Metrics:    rt.metrics,
	}, rt.limiter, rt.entrez, sink)

	if flagMetricsAddr != "" {
		srv := &http.Server{Addr: flagMetricsAddr, Handler: rt.metrics.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				lg := newLogger()
				lg.Warn().Err(err).Msg("metrics server stopped")
			}
		}()
		defer srv.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	summary, err := orch.Run(ctx, items)
	if err != nil {
		if retry.IsFatalForBatch(retry.KindOf(err)) {
			exitWithError(ExitInvalidArgs, "batch aborted: %v", err)
		}
		exitWithError(ExitError, "batch run failed: %v", err)
	}

	failedItems := make([]FailedItemResponse, len(summary.FailedItems))
	for i, f := range summary.FailedItems {
		failedItems[i] = FailedItemResponse{ID: f.ID, LastErrorKind: f.LastErrorKind, Attempts: f.Attempts}
	}
	resp := SummaryResponse{
		TotalRequested: summary.TotalRequested,
		Successful:     summary.Successful,
		Failed:         summary.Failed,
		ErrorCounts:    summary.ErrorCounts,
		ElapsedSeconds: summary.ElapsedSeconds,
		FailedItems:    failedItems,
	}
	if !flagQuiet {
		_ = outputJSON(resp)
	}

	switch {
	case summary.TotalRequested > 0 && summary.Successful == 0:
		os.Exit(ExitAllFetchesFailed)
	case summary.Failed > 0:
		os.Exit(ExitError)
	default:
		os.Exit(ExitSuccess)
	}
}

// itemsFromTokens normalizes each raw token (a PMCID, PMID, or DOI,
// depending on mode) into a batch.Item, converting PMIDs/DOIs to
// PMCIDs via C4 first (spec.md §6 "converted").
func (rt *runtime) itemsFromTokens(ctx context.Context, tokens []string, mode batch.InputMode) []batch.Item {
	items := make([]batch.Item, 0, len(tokens))
	seen := map[string]bool{}
	for _, tok := range tokens {
		var canonical string
		var err error
		switch mode {
		case batch.ModePMCIDs:
			canonical, err = pmcid.Normalize(tok)
		default:
			canonical, err = rt.idconvert.Resolve(ctx, tok)
		}
		if err != nil {
			items = append(items, batch.Item{Raw: tok})
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		items = append(items, batch.Item{Raw: tok, CanonicalPMCID: canonical})
	}
	return items
}

func readIDFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, retry.New(retry.KindIOFailed, err)
	}
	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}

func (rt *runtime) itemsFromIDFile(ctx context.Context, path string) []batch.Item {
	tokens, err := readIDFile(path)
	if err != nil {
		exitWithError(ExitInvalidArgs, "reading id file: %v", err)
	}
	items := make([]batch.Item, 0, len(tokens))
	for _, tok := range tokens {
		canonical, err := rt.idconvert.Resolve(ctx, tok)
		if err != nil {
			items = append(items, batch.Item{Raw: tok})
			continue
		}
		items = append(items, batch.Item{Raw: tok, CanonicalPMCID: canonical})
	}
	return items
}

func itemsFromFiles(paths []string) []batch.Item {
	items := make([]batch.Item, len(paths))
	for i, p := range paths {
		items[i] = batch.Item{Raw: p, LocalPath: p}
	}
	return items
}

func itemsFromDirectory(dir string) []batch.Item {
	var items []batch.Item
	for path, err := range entrez.WalkDirectory(dir) {
		if err != nil {
			exitWithError(ExitInvalidArgs, "walking directory: %v", err)
		}
		items = append(items, batch.Item{Raw: path, LocalPath: path})
	}
	return items
}
