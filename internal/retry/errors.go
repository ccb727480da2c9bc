// Package retry classifies failures and schedules retries with bounded
// exponential backoff, per spec.md §4.3 and §7.
package retry

import "errors"

// Kind is one of the closed set of error kinds from spec.md §7.
type Kind string

const (
	KindUnsupportedInput Kind = "UnsupportedInput"
	KindNotFound         Kind = "NotFound"
	KindNetworkError     Kind = "NetworkError"
	KindValidationError  Kind = "ValidationError"
	KindParseError       Kind = "ParseError"
	KindIOFailed         Kind = "IOFailed"
	KindCancelled        Kind = "Cancelled"
	KindConfigError      Kind = "ConfigError"
	KindServerError      Kind = "ServerError" // HTTP 5xx, classified retriable like NetworkError
	KindRateLimited      Kind = "RateLimited" // HTTP 429, classified retriable
)

// Error wraps an underlying error with the kind the spec requires every
// ledger entry to carry.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified Error.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the Kind carried by err, or "" if err does not carry one.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsRetriable reports whether a failure of this kind should be retried by
// the same worker (spec.md §4.3): network errors (timeouts, connection
// resets), 429, and 5xx. A malformed response (KindParseError) is not
// retried; IsFatalForItem reports it as item-fatal.
func IsRetriable(kind Kind) bool {
	switch kind {
	case KindNetworkError, KindServerError, KindRateLimited:
		return true
	default:
		return false
	}
}

// IsFatalForItem reports whether a failure should be recorded in the
// ledger and the worker should move on to the next item, without
// retrying: 4xx other than 429, NotFound, ValidationError, UnsupportedInput.
func IsFatalForItem(kind Kind) bool {
	switch kind {
	case KindNotFound, KindValidationError, KindUnsupportedInput, KindParseError:
		return true
	default:
		return false
	}
}

// IsFatalForBatch reports whether a failure should propagate to the
// orchestrator and cancel remaining work: configuration errors, and
// (by convention, since Go's stdlib does not expose "out of file
// descriptors" as a distinguishable error kind) IOFailed is treated as
// item-fatal unless explicitly escalated by the caller.
func IsFatalForBatch(kind Kind) bool {
	return kind == KindConfigError
}
