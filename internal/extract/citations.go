package extract

import (
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

// Citation is one parsed reference-list entry (spec.md §4.6 "Citations").
type Citation struct {
	ID      string
	Raw     string
	Authors []string
	Title   string
	Source  string
	Year    string
	Volume  string
	Pages   string
	Doi     string
	Pmid    string
	Pmcid   string
}

// Citations parses every <ref> under <ref-list> into best-effort
// structured form, always keeping a verbatim Raw string even when no
// other field could be parsed (spec.md §4.6).
func Citations(root *jats.Node) []Citation {
	var out []Citation
	for _, ref := range root.FindAll("ref") {
		out = append(out, parseCitation(ref))
	}
	return out
}

func parseCitation(ref *jats.Node) Citation {
	c := Citation{ID: ref.Attr("id"), Raw: rawCitationText(ref)}

	var authors []string
	for _, pg := range ref.FindAll("person-group") {
		if pg.Attr("person-group-type") != "author" {
			continue
		}
		for _, name := range pg.FindAll("name") {
			given := childText(name, "given-names")
			surname := childText(name, "surname")
			full := strings.TrimSpace(given + " " + surname)
			if full != "" {
				authors = append(authors, full)
			}
		}
	}
	c.Authors = authors

	c.Title = findText(ref, "article-title")
	c.Source = findText(ref, "source")
	c.Year = findText(ref, "year")
	c.Volume = findText(ref, "volume")

	fpage := findText(ref, "fpage")
	lpage := findText(ref, "lpage")
	switch {
	case fpage != "" && lpage != "":
		c.Pages = fpage + "-" + lpage
	case fpage != "":
		c.Pages = fpage
	}

	for _, pid := range ref.FindAll("pub-id") {
		switch pid.Attr("pub-id-type") {
		case "doi":
			c.Doi = strings.TrimSpace(pid.InnerText())
		case "pmid":
			c.Pmid = strings.TrimSpace(pid.InnerText())
		case "pmcid", "pmc":
			c.Pmcid = strings.TrimSpace(pid.InnerText())
		}
	}
	return c
}

// rawCitationText prefers a <mixed-citation>'s full text (the format
// most PMC references arrive in) and falls back to the ref element's
// own inner text so Raw is never empty for a well-formed <ref>.
func rawCitationText(ref *jats.Node) string {
	if mixed := ref.Find("mixed-citation"); mixed != nil {
		if text := strings.TrimSpace(mixed.InnerText()); text != "" {
			return text
		}
	}
	return strings.TrimSpace(ref.InnerText())
}

func childText(n *jats.Node, name string) string {
	if c := n.FindChild(name); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}

func findText(n *jats.Node, name string) string {
	if c := n.Find(name); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}
