// Package aux is the Auxiliary Service Clients layer (spec.md §4.10,
// C10): thin request-and-parse wrappers over BioC, the PMC Open Access
// service, OAI-PMH, and the NCBI Literature Citation Exporter. Every
// call shares the same rate limiter and retry policy as C1/C4 via
// internal/httpx, grounded on the original Python modules
// pmcgrab.bioc, pmcgrab.oa_service, pmcgrab.oai, and pmcgrab.litctxp.
package aux

import (
	"context"
	"net/url"
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/httpx"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/pmcid"
)

// BioCBaseURL is the BioC JSON endpoint for PMC Open Access articles.
const BioCBaseURL = "https://www.ncbi.nlm.nih.gov/research/bionlp/RESTful/pmcoa.cgi/BioC_json/"

// OABaseURL is the PMC Open Access Web Service endpoint.
const OABaseURL = "https://www.ncbi.nlm.nih.gov/pmc/utils/oa/oa.fcgi"

// Client groups every C10 auxiliary caller behind the shared rate-limited
// HTTP transport. Each base URL defaults to the real NCBI endpoint but is
// exported so tests can point it at an httptest.Server, matching the
// internal/entrez and internal/idconvert Client pattern.
type Client struct {
	HTTP            *httpx.Client
	BioCBaseURL     string
	OABaseURL       string
	OAIBaseURL      string
	CitationBaseURL string
}

// NewClient builds an aux Client over the shared transport, with every
// base URL defaulted to its real NCBI endpoint.
func NewClient(h *httpx.Client) *Client {
	return &Client{
		HTTP:            h,
		BioCBaseURL:     BioCBaseURL,
		OABaseURL:       OABaseURL,
		OAIBaseURL:      OAIBaseURL,
		CitationBaseURL: CitationExportBaseURL,
	}
}

// FetchBioC retrieves the raw BioC JSON document bytes for an Open
// Access PMC article (spec.md §4.10). It does not unmarshal the BioC
// structure: BioC's schema is a downstream concern, not part of the
// core transformation engine (spec.md §1).
func (c *Client) FetchBioC(ctx context.Context, anyPMCID string) ([]byte, error) {
	canonical, err := pmcid.Normalize(anyPMCID)
	if err != nil {
		return nil, err
	}
	return c.HTTP.Get(ctx, httpx.GetParams{BaseURL: c.BioCBaseURL + pmcid.WithPrefix(canonical)})
}

// OARecord is one parsed <record> from the OA service response: its
// attributes plus each link child's href, keyed by format (spec.md
// §4.10, grounded on oa_service._parse_oa_record).
type OARecord struct {
	Attrs map[string]string
	Links map[string]string // format -> href, e.g. "pdf" -> url, "tgz" -> url
}

// FetchOA looks up Open Access availability and download links for an
// article by pmcid, pmid, or doi.
func (c *Client) FetchOA(ctx context.Context, idType, id string) (*OARecord, error) {
	q := url.Values{}
	q.Set(idType, id)
	data, err := c.HTTP.Get(ctx, httpx.GetParams{BaseURL: c.OABaseURL, Query: q})
	if err != nil {
		return nil, err
	}
	return parseOARecord(data)
}

func parseOARecord(data []byte) (*OARecord, error) {
	doc, err := jats.ParseAny(data)
	if err != nil {
		return nil, err
	}
	rec := doc.Find("record")
	if rec == nil {
		return nil, nil
	}
	out := &OARecord{Attrs: map[string]string{}, Links: map[string]string{}}
	for k, v := range rec.Attrs {
		out.Attrs[k] = v
	}
	for _, link := range rec.Children() {
		if link.Name == "link" {
			format := link.Attr("format")
			if format == "" {
				format = "default"
			}
			out.Links[format] = link.Attr("href")
		} else {
			out.Attrs[link.Name] = strings.TrimSpace(link.InnerText())
		}
	}
	return out, nil
}
