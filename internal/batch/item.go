// Package batch is the Batch Orchestrator (spec.md §4.9, C9): it fans a
// set of identifiers or local file paths out across bounded workers, runs
// each through the full per-item pipeline (fetch/read → parse → clean →
// extract → assemble → serialize), and returns a deterministic,
// input-ordered summary, matching the teacher's indexed-results /
// bounded-semaphore worker-pool shape (scout.CheckAllServers).
package batch

import "github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"

// InputMode is one of the six mutually exclusive CLI input modes
// (spec.md §6).
type InputMode int

const (
	ModePMCIDs InputMode = iota
	ModePMIDs
	ModeDOIs
	ModeIDFile
	ModeDirectory
	ModeFiles
)

// Item is one unit of work submitted to the orchestrator. Raw is always
// set. A remote item also carries CanonicalPMCID (resolved by the caller
// via internal/pmcid and internal/idconvert before scheduling); a local
// item also carries LocalPath (a path to a JATS XML file).
type Item struct {
	// Raw is the original input token, used as the ledger key and
	// preserved verbatim for error reporting (spec.md §4.9 "preserve
	// input order in the ledger").
	Raw string
	// CanonicalPMCID is set when the item is a remote fetch; empty for
	// local-file items, whose PMCID (if any) is only known after parsing.
	CanonicalPMCID string
	// LocalPath is set when the item should be read from disk instead of
	// fetched (directory/files input modes).
	LocalPath string
}

// Status is a ledger entry's terminal (or in-flight) state.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// LedgerEntry is one row of the append-only result ledger (spec.md §3
// "Batch state"). Entries are mutated only under the orchestrator's lock
// and are never shared mutably across workers once returned.
type LedgerEntry struct {
	Input        string
	Status       Status
	ArtifactPath string
	ErrorKind    retry.Kind
	Attempts     int
}
