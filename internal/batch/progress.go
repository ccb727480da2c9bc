package batch

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ProgressRecord is the opaque record pushed to a Sink after each item
// completes (spec.md §4.9 "Progress reporting").
type ProgressRecord struct {
	Input     string
	Status    Status
	Attempts  int
	ErrorKind string
	Completed int // count of items completed so far, including this one
	Total     int
}

// Sink receives progress records as the orchestrator completes items.
// Implementations must be safe for concurrent use: Report is called from
// whichever worker goroutine finished the item.
type Sink interface {
	Report(ProgressRecord)
}

// DiscardSink drops every progress record, for callers that only care
// about the final Summary.
type DiscardSink struct{}

func (DiscardSink) Report(ProgressRecord) {}

// ConsoleSink writes one structured log line per completion via zerolog,
// the same console-progress idiom the teacher's cmd/bip commands use for
// long-running scans.
type ConsoleSink struct {
	Log zerolog.Logger
}

func (s ConsoleSink) Report(p ProgressRecord) {
	ev := s.Log.Info()
	if p.Status == StatusFailed {
		ev = s.Log.Warn()
	}
	ev.Str("input", p.Input).
		Str("status", string(p.Status)).
		Int("attempts", p.Attempts).
		Str("error_kind", p.ErrorKind).
		Str("progress", fmt.Sprintf("%d/%d", p.Completed, p.Total)).
		Msg("item completed")
}

// CallbackSink forwards every record to an arbitrary function, letting a
// library caller (not just the CLI) observe progress.
type CallbackSink struct {
	Func func(ProgressRecord)
}

func (s CallbackSink) Report(p ProgressRecord) {
	if s.Func != nil {
		s.Func(p)
	}
}
