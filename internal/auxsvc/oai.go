package aux

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/httpx"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

// OAIBaseURL is the PMC OAI-PMH endpoint, grounded on the original
// Python client's pmcgrab.oai._BASE_URL.
const OAIBaseURL = "https://www.ncbi.nlm.nih.gov/pmc/oai/oai.cgi"

// HarvestParams selects the OAI-PMH ListRecords/ListIdentifiers scope.
type HarvestParams struct {
	MetadataPrefix string // default "pmc"
	From           string // YYYY-MM-DD, optional
	Until          string // YYYY-MM-DD, optional
	Set            string // optional
}

func (p HarvestParams) query(verb string) url.Values {
	q := url.Values{}
	q.Set("verb", verb)
	prefix := p.MetadataPrefix
	if prefix == "" {
		prefix = "pmc"
	}
	q.Set("metadataPrefix", prefix)
	if p.From != "" {
		q.Set("from", p.From)
	}
	if p.Until != "" {
		q.Set("until", p.Until)
	}
	if p.Set != "" {
		q.Set("set", p.Set)
	}
	return q
}

func (c *Client) request(ctx context.Context, q url.Values) (*jats.Node, error) {
	data, err := c.HTTP.Get(ctx, httpx.GetParams{BaseURL: c.OAIBaseURL, Query: q})
	if err != nil {
		return nil, err
	}
	root, err := jats.ParseAny(data)
	if err != nil {
		return nil, err
	}
	if oaiErr := root.Find("error"); oaiErr != nil {
		msg := oaiErr.InnerText()
		if msg == "" {
			msg = oaiErr.Attr("code")
		}
		return nil, retry.New(retry.KindValidationError, fmt.Errorf("OAI-PMH error: %s", msg))
	}
	return root, nil
}

func resumptionToken(root *jats.Node) string {
	if tok := root.Find("resumptionToken"); tok != nil {
		return tok.InnerText()
	}
	return ""
}

// ListRecords harvests metadata records, following resumption tokens
// until exhausted (spec.md §4.10: "MUST follow resumption tokens until
// exhausted and surface an iterator of records; they MUST NOT buffer the
// whole response in memory"). It is a range-over-func iterator so a
// caller can `break` out of a large harvest without ever materializing
// the full result set.
func (c *Client) ListRecords(ctx context.Context, p HarvestParams) iter.Seq2[*jats.Node, error] {
	return func(yield func(*jats.Node, error) bool) {
		q := p.query("ListRecords")
		for {
			root, err := c.request(ctx, q)
			if err != nil {
				yield(nil, err)
				return
			}
			list := root.Find("ListRecords")
			if list == nil {
				return
			}
			for _, rec := range list.FindAll("record") {
				if !yield(rec, nil) {
					return
				}
			}
			token := resumptionToken(list)
			if token == "" {
				return
			}
			q = url.Values{"verb": {"ListRecords"}, "resumptionToken": {token}}
		}
	}
}

// ListIdentifiers harvests just the OAI identifiers, the lightweight
// ListIdentifiers verb, also following resumption tokens lazily.
func (c *Client) ListIdentifiers(ctx context.Context, p HarvestParams) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		q := p.query("ListIdentifiers")
		for {
			root, err := c.request(ctx, q)
			if err != nil {
				yield("", err)
				return
			}
			list := root.Find("ListIdentifiers")
			if list == nil {
				return
			}
			for _, hdr := range list.FindAll("header") {
				id := ""
				if idNode := hdr.Find("identifier"); idNode != nil {
					id = idNode.InnerText()
				}
				if !yield(id, nil) {
					return
				}
			}
			token := resumptionToken(list)
			if token == "" {
				return
			}
			q = url.Values{"verb": {"ListIdentifiers"}, "resumptionToken": {token}}
		}
	}
}

// GetRecord retrieves a single metadata record by its OAI identifier
// (e.g. "oai:pubmedcentral.nih.gov:PMC7181753").
func (c *Client) GetRecord(ctx context.Context, identifier, metadataPrefix string) (*jats.Node, error) {
	if metadataPrefix == "" {
		metadataPrefix = "pmc"
	}
	q := url.Values{}
	q.Set("verb", "GetRecord")
	q.Set("identifier", identifier)
	q.Set("metadataPrefix", metadataPrefix)
	root, err := c.request(ctx, q)
	if err != nil {
		return nil, err
	}
	rec := root.Find("record")
	if rec == nil {
		return nil, retry.New(retry.KindNotFound, fmt.Errorf("no record for %q", identifier))
	}
	return rec, nil
}

// OAISet is one entry of the ListSets response.
type OAISet struct {
	Spec string
	Name string
}

// ListSets discovers the collections/sets the repository exposes for
// set-based harvesting.
func (c *Client) ListSets(ctx context.Context) ([]OAISet, error) {
	q := url.Values{"verb": {"ListSets"}}
	root, err := c.request(ctx, q)
	if err != nil {
		return nil, err
	}
	var out []OAISet
	for _, s := range root.FindAll("set") {
		spec, name := "", ""
		if n := s.Find("setSpec"); n != nil {
			spec = n.InnerText()
		}
		if n := s.Find("setName"); n != nil {
			name = n.InnerText()
		}
		out = append(out, OAISet{Spec: spec, Name: name})
	}
	return out, nil
}
