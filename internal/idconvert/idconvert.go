// Package idconvert is the cross-identifier half of the ID Normalizer
// (spec.md §4.4, C4): it calls the NCBI ID-Converter service to resolve a
// PMID or DOI to a canonical PMCID. Normalization of an already-PMCID-
// shaped token lives in internal/pmcid; this package only handles the
// network round trip for everything else.
package idconvert

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/httpx"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/pmcid"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

// ConverterBaseURL is the NCBI ID-Converter endpoint contract (spec.md §6).
const ConverterBaseURL = "https://www.ncbi.nlm.nih.gov/pmc/utils/idconv/v1.0/"

// Client resolves PMIDs/DOIs to PMCIDs via the NCBI ID-Converter service.
type Client struct {
	HTTP    *httpx.Client
	BaseURL string
}

// NewClient builds an idconvert Client over the shared rate-limited
// transport.
func NewClient(h *httpx.Client) *Client {
	return &Client{HTTP: h, BaseURL: ConverterBaseURL}
}

// record is one row of the converter's JSON response.
type record struct {
	PMCID  string `json:"pmcid"`
	PMID   string `json:"pmid"`
	DOI    string `json:"doi"`
	Status string `json:"status"`
}

type response struct {
	Records []record `json:"records"`
}

// Resolve converts any_id (already-PMCID, PMID, or DOI) to a canonical
// PMCID (spec.md §4.4 id_convert). An input that pmcid.Detect classifies
// as a PMCID (PMC-prefixed, or bare digits longer than a PMID) is
// normalized locally without a network call; everything else, including
// a bare PMID, is resolved against the converter and fails with
// retry.KindNotFound if no record carries a non-empty pmcid.
func (c *Client) Resolve(ctx context.Context, anyID string) (string, error) {
	if pmcid.Detect(anyID) == pmcid.KindPMCID {
		return pmcid.Normalize(anyID)
	}

	q := url.Values{}
	q.Set("ids", anyID)
	q.Set("format", "json")

	data, err := c.HTTP.Get(ctx, httpx.GetParams{
		BaseURL:    c.BaseURL,
		Query:      q,
		EmailParam: "email",
		APIKeyName: "api_key",
	})
	if err != nil {
		return "", err
	}

	var resp response
	if jsonErr := json.Unmarshal(data, &resp); jsonErr != nil {
		return "", retry.New(retry.KindValidationError, fmt.Errorf("parsing id-converter response: %w", jsonErr))
	}

	for _, rec := range resp.Records {
		if rec.PMCID != "" {
			return pmcid.Normalize(rec.PMCID)
		}
	}
	return "", retry.New(retry.KindNotFound, fmt.Errorf("id-converter has no pmcid mapping for %q", anyID))
}

// ResolveBatch converts a slice of mixed-kind identifiers to canonical
// PMCIDs, deduplicating inputs and preserving the input order of the
// result (spec.md §4.4: "Batch-mode conversion MUST deduplicate inputs,
// respect the rate limiter, and preserve input order in the output").
// Each rate-limited conversion call still goes through Resolve, one per
// distinct input.
func (c *Client) ResolveBatch(ctx context.Context, ids []string) ([]string, error) {
	seen := make(map[string]string, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if cached, ok := seen[id]; ok {
			out = append(out, cached)
			continue
		}
		resolved, err := c.Resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		seen[id] = resolved
		out = append(out, resolved)
	}
	return out, nil
}
