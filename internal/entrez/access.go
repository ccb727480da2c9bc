// Package entrez is the XML Access Layer (spec.md §4.1, C1): it acquires
// raw JATS XML bytes from the NCBI Entrez Fetch endpoint, from a local
// file, or by walking a directory. It performs no parsing.
package entrez

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/httpx"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/pmcid"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

// EfetchBaseURL is the NCBI Entrez Fetch endpoint contract (spec.md §6).
const EfetchBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// Source describes where a document's bytes came from, used in error
// messages and artifact bookkeeping.
type Source struct {
	Kind string // "remote", "file"
	Ref  string // PMCID or file path
}

// Client acquires article XML bytes over HTTP.
type Client struct {
	HTTP    *httpx.Client
	BaseURL string
}

// NewClient builds an entrez Client over the shared rate-limited
// transport.
func NewClient(h *httpx.Client) *Client {
	return &Client{HTTP: h, BaseURL: EfetchBaseURL}
}

// FetchRemote retrieves the JATS XML for a canonical PMCID from the
// Entrez Fetch endpoint (spec.md §4.1, §6).
func (c *Client) FetchRemote(ctx context.Context, canonicalPMCID string) ([]byte, Source, error) {
	src := Source{Kind: "remote", Ref: canonicalPMCID}
	if !pmcid.IsCanonical(canonicalPMCID) {
		return nil, src, retry.New(retry.KindUnsupportedInput, fmt.Errorf("not a canonical PMCID: %q", canonicalPMCID))
	}

	q := url.Values{}
	q.Set("db", "pmc")
	q.Set("id", canonicalPMCID)
	q.Set("rettype", "full")
	q.Set("retmode", "xml")

	data, err := c.HTTP.Get(ctx, httpx.GetParams{
		BaseURL:    c.BaseURL,
		Query:      q,
		EmailParam: "email",
		APIKeyName: "api_key",
	})
	if err != nil {
		return nil, src, err
	}
	return data, src, nil
}

// ReadLocal reads JATS XML bytes from a file on disk (spec.md §4.1).
func ReadLocal(path string) ([]byte, Source, error) {
	src := Source{Kind: "file", Ref: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, src, retry.New(retry.KindNotFound, err)
		}
		return nil, src, retry.New(retry.KindIOFailed, err)
	}
	if len(data) == 0 {
		return nil, src, retry.New(retry.KindNotFound, fmt.Errorf("%s is empty", path))
	}
	return data, src, nil
}

// WalkDirectory returns a finite, lazily-produced, lexicographically
// sorted sequence of "*.xml" paths under dir (spec.md §4.1). The
// directory listing is read and sorted in full before the first path is
// yielded; paths are then yielded one at a time, and the caller may stop
// early.
func WalkDirectory(dir string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		matches, err := filepath.Glob(filepath.Join(dir, "*.xml"))
		if err != nil {
			yield("", retry.New(retry.KindIOFailed, err))
			return
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !yield(m, nil) {
				return
			}
		}
	}
}
