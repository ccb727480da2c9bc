// Package pmcid normalizes and classifies PMC/PubMed/DOI identifiers.
//
// Normalization follows spec.md §3: a canonical PMCID matches /^[0-9]+$/,
// with any case-insensitive "PMC" prefix stripped.
package pmcid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnsupportedInput is returned when an identifier cannot be normalized.
var ErrUnsupportedInput = fmt.Errorf("unsupported identifier")

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// Normalize accepts a PMCID in any of the documented forms ("PMC7181753",
// "pmc7181753", "7181753", or an integer passed as a string) and returns the
// canonical numeric-string form.
func Normalize(input any) (string, error) {
	var s string
	switch v := input.(type) {
	case string:
		s = v
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrUnsupportedInput, input)
	}

	s = strings.TrimSpace(s)
	if len(s) >= 3 && strings.EqualFold(s[:3], "PMC") {
		s = s[3:]
	}
	if s == "" || !digitsOnly.MatchString(s) {
		return "", fmt.Errorf("%w: %q is not a valid PMCID", ErrUnsupportedInput, s)
	}
	return s, nil
}

// WithPrefix returns the canonical PMCID with its "PMC" prefix restored,
// the form used in article_id.pmcid and artifact filenames.
func WithPrefix(canonical string) string {
	return "PMC" + canonical
}

// IsCanonical reports whether s is already in canonical PMCID form.
func IsCanonical(s string) bool {
	return digitsOnly.MatchString(s)
}

// Kind identifies the family of an identifier supplied to the batch
// orchestrator before it has been resolved to a PMCID.
type Kind int

const (
	KindUnknown Kind = iota
	KindPMCID
	KindPMID
	KindDOI
)

func (k Kind) String() string {
	switch k {
	case KindPMCID:
		return "pmcid"
	case KindPMID:
		return "pmid"
	case KindDOI:
		return "doi"
	default:
		return "unknown"
	}
}

var doiPattern = regexp.MustCompile(`(?i)^10\.\d{4,9}/\S+$`)

// Detect guesses the Kind of a raw identifier token, used by the id-file
// input mode (spec.md §6) where the type is auto-detected per line.
func Detect(raw string) Kind {
	s := strings.TrimSpace(raw)
	if s == "" {
		return KindUnknown
	}
	if strings.HasPrefix(strings.ToUpper(s), "PMC") {
		return KindPMCID
	}
	if doiPattern.MatchString(s) || strings.Contains(s, "doi.org/") {
		return KindDOI
	}
	if digitsOnly.MatchString(s) {
		// Bare digits are ambiguous between PMCID and PMID; the original
		// NCBI convention is that PMIDs are typically shorter (<=8 digits)
		// while PMC identifiers issued so far exceed that, but this is a
		// heuristic, not a guarantee. Callers with better context (the
		// explicit pmids subcommand) should not rely on Detect.
		if len(s) <= 8 {
			return KindPMID
		}
		return KindPMCID
	}
	return KindUnknown
}

// NormalizeDOI lowercases a DOI and strips common URL prefixes, mirroring
// the corpus's s2.NormalizeDOI so cross-identifier comparisons are stable.
func NormalizeDOI(doi string) string {
	d := strings.TrimSpace(doi)
	d = strings.TrimPrefix(d, "https://doi.org/")
	d = strings.TrimPrefix(d, "http://doi.org/")
	d = strings.TrimPrefix(d, "doi.org/")
	d = strings.TrimPrefix(d, "DOI:")
	return strings.ToLower(d)
}
