package extract

import (
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ordered"
)

// Abstract builds the label->text ordered mapping spec.md §4.6 describes:
// labeled sub-sections each become a key (label casing preserved);
// unlabeled leading prose accumulates under the single key "Abstract".
// Paragraphs within a (sub)section join with a single space.
func Abstract(root *jats.Node) *ordered.StringMap {
	out := ordered.NewStringMap()
	abs := root.Find("abstract")
	if abs == nil {
		return out
	}
	for _, child := range abs.Children() {
		switch child.Name {
		case "sec":
			label := sectionTitle(child)
			if label == "" {
				label = "Abstract"
			}
			text := joinParagraphs(child)
			appendOrSet(out, label, text)
		case "p":
			text := jats.CleanText(child)
			appendOrSet(out, "Abstract", text)
		case "title":
			// Abstract-level heading with no enclosing <sec>; ignored as
			// prose and not treated as a label per the normalized rule
			// (spec.md §9: "normalize to one rule").
		default:
			// Unknown content under <abstract> contributes nothing; the
			// cleaner deals with it if nested inside a <p> or <sec>.
		}
	}
	return out
}

func appendOrSet(m *ordered.StringMap, key, text string) {
	if text == "" {
		if _, ok := m.Get(key); !ok {
			m.Set(key, "")
		}
		return
	}
	if existing, ok := m.Get(key); ok && existing != "" {
		m.Set(key, existing+" "+text)
	} else {
		m.Set(key, text)
	}
}

func sectionTitle(sec *jats.Node) string {
	if t := sec.FindChild("title"); t != nil {
		return strings.TrimSpace(jats.CleanText(t))
	}
	return ""
}

// joinParagraphs concatenates every <p> descendant's cleaned text with a
// single space, the join rule spec.md §4.6 specifies for abstract
// subsections.
func joinParagraphs(sec *jats.Node) string {
	var parts []string
	for _, p := range sec.FindAll("p") {
		text := jats.CleanText(p)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
