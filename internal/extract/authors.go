// Package extract holds the per-entity extraction routines that turn a
// parsed jats.Node tree into the pieces document.Document is assembled
// from (spec.md §4.6, C6). None of these panic on malformed input; they
// return the empty value of their return type instead.
package extract

import (
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

// Contributor is one author or non-author contributor entry.
type Contributor struct {
	Type         string
	FirstName    string
	LastName     string
	Email        string
	Affiliations []string
	Orcid        string
	Isni         string
	EqualContrib bool
}

// Authors walks every contrib-group under the article and splits
// contributors into authors (contrib-type=="author", defaulting missing
// types to "Author") and everyone else.
func Authors(root *jats.Node) (authors, nonAuthors []Contributor) {
	for _, contrib := range root.FindAll("contrib") {
		c := extractContributor(root, contrib)
		if strings.EqualFold(contrib.Attr("contrib-type"), "author") || contrib.Attr("contrib-type") == "" {
			if c.Type == "" {
				c.Type = "Author"
			}
			authors = append(authors, c)
			continue
		}
		nonAuthors = append(nonAuthors, c)
	}
	return authors, nonAuthors
}

func extractContributor(root *jats.Node, contrib *jats.Node) Contributor {
	c := Contributor{
		Type:         titleCase(contrib.Attr("contrib-type")),
		EqualContrib: contrib.Attr("equal-contrib") == "yes",
	}
	if name := contrib.Find("name"); name != nil {
		if given := name.FindChild("given-names"); given != nil {
			c.FirstName = strings.TrimSpace(given.InnerText())
		}
		if sur := name.FindChild("surname"); sur != nil {
			c.LastName = strings.TrimSpace(sur.InnerText())
		}
	}
	if addr := contrib.Find("address"); addr != nil {
		if email := addr.FindChild("email"); email != nil {
			c.Email = strings.TrimSpace(email.InnerText())
		}
	}
	if c.Email == "" {
		if email := contrib.Find("email"); email != nil {
			c.Email = strings.TrimSpace(email.InnerText())
		}
	}
	for _, cid := range contrib.FindAll("contrib-id") {
		switch cid.Attr("contrib-id-type") {
		case "orcid":
			c.Orcid = strings.TrimSpace(cid.InnerText())
		case "isni":
			c.Isni = strings.TrimSpace(cid.InnerText())
		}
	}
	c.Affiliations = resolveAffiliations(root, contrib)
	return c
}

// resolveAffiliations resolves xref[ref-type=aff] rid attributes against
// sibling <aff> blocks anywhere in the document, formatting each as
// "<id>: <institution><text>" (institution and remaining text joined with
// no separator) the way the original implementation does.
func resolveAffiliations(root *jats.Node, contrib *jats.Node) []string {
	var out []string
	for _, xr := range contrib.FindAll("xref") {
		if xr.Attr("ref-type") != "aff" {
			continue
		}
		rid := xr.Attr("rid")
		if rid == "" {
			continue
		}
		aff := findByID(root, "aff", rid)
		if aff == nil {
			out = append(out, rid+": Affiliation data not found.")
			continue
		}
		var inst string
		if iw := aff.Find("institution-wrap"); iw != nil {
			var parts []string
			for _, i := range iw.FindAll("institution") {
				parts = append(parts, i.InnerText())
			}
			inst = strings.Join(parts, " ")
		}
		text := directNonLabelText(aff)
		if inst != "" {
			out = append(out, rid+": "+inst+text)
		} else {
			out = append(out, rid+": "+text)
		}
	}
	// A contrib nested inside its own <aff> (no xref) falls back to
	// its direct affiliation text, if any.
	if len(out) == 0 {
		if aff := contrib.FindChild("aff"); aff != nil {
			out = append(out, directNonLabelText(aff))
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// directNonLabelText returns n's direct character data, skipping any
// child <label> element's own text, mirroring the original's XPath
// "text()[not(parent::label)]".
func directNonLabelText(n *jats.Node) string {
	return strings.TrimSpace(n.DirectText())
}

func findByID(root *jats.Node, name, id string) *jats.Node {
	for _, n := range root.FindAll(name) {
		if n.Attr("id") == id {
			return n
		}
	}
	return nil
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
