package aux

import (
	"context"
	"net/url"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/httpx"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/pmcid"
)

// CitationExportBaseURL is the NCBI Literature Citation Exporter
// endpoint, grounded on the original Python client's pmcgrab.litctxp.
const CitationExportBaseURL = "https://api.ncbi.nlm.nih.gov/lit/ctxp/v1/pmc/"

// Citation export formats supported by the NCBI Literature Citation
// Exporter (spec.md §4.10).
const (
	FormatMEDLINE = "medline"
	FormatBibTeX  = "bibtex"
	FormatRIS     = "ris"
	FormatNBIB    = "nbib"
	FormatPubMed  = "pubmed"
)

// ExportCitation fetches a formatted citation for a PMC article in the
// given format, returned as-is: the exporter's output is plain text (or
// a BibTeX/RIS record), not JATS XML, so no parsing happens here.
func (c *Client) ExportCitation(ctx context.Context, anyPMCID, format string) ([]byte, error) {
	canonical, err := pmcid.Normalize(anyPMCID)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatMEDLINE
	}
	q := url.Values{}
	q.Set("format", format)
	q.Set("id", pmcid.WithPrefix(canonical))
	return c.HTTP.Get(ctx, httpx.GetParams{BaseURL: c.CitationBaseURL, Query: q})
}
