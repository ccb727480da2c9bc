package extract

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

// Funding lists each award-group's institution names under //funding-group.
func Funding(root *jats.Node) []string {
	var out []string
	for _, group := range root.FindAll("funding-group") {
		for _, award := range group.FindAll("award-group") {
			for _, inst := range award.FindAll("institution") {
				text := strings.TrimSpace(inst.InnerText())
				if text != "" {
					out = append(out, text)
				}
			}
		}
	}
	return out
}

// VersionHistoryEntry is one article-version record.
type VersionHistoryEntry struct {
	Version string
	Date    string
}

// VersionHistory reads <article-version> entries from article-meta.
func VersionHistory(root *jats.Node) []VersionHistoryEntry {
	var out []VersionHistoryEntry
	for _, ver := range root.FindAll("article-version") {
		v := ver.Attr("version")
		if v == "" {
			v = findText(ver, "version")
		}
		var date string
		if d := ver.Find("date"); d != nil {
			date = isoDate(d)
		}
		out = append(out, VersionHistoryEntry{Version: v, Date: date})
	}
	return out
}

// SupplementaryMaterial is one supplementary-material or media entry.
type SupplementaryMaterial struct {
	Label   string
	Caption string
	Href    string
	Tag     string
}

// SupplementaryMaterials reads both <supplementary-material> and
// <media> elements, resolving href from the element itself or its
// first <ext-link> child.
func SupplementaryMaterials(root *jats.Node) []SupplementaryMaterial {
	var out []SupplementaryMaterial
	for _, name := range []string{"supplementary-material", "media"} {
		for _, supp := range root.FindAll(name) {
			label := findText(supp, "label")
			if label == "" {
				label = supp.Attr("id")
			}
			href := supp.Attr("href")
			if href == "" {
				if ext := supp.Find("ext-link"); ext != nil {
					href = ext.Attr("href")
				}
			}
			out = append(out, SupplementaryMaterial{
				Label:   label,
				Caption: findText(supp, "caption"),
				Href:    href,
				Tag:     supp.Name,
			})
		}
	}
	return out
}

// Ethics reads the conventional disclosure categories into a label->text
// mapping, falling back to fn[@fn-type='conflict'] for conflicts of
// interest when no dedicated element is present.
func Ethics(root *jats.Node) map[string]string {
	out := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("Conflicts of Interest", joinAll(root, "conflict-of-interest"))
	set("Ethics Statement", joinAll(root, "ethics-statement"))
	set("Data Availability", joinAll(root, "data-availability"))
	set("Author Contributions", joinAll(root, "author-notes"))
	set("Patient Consent", joinAll(root, "patient-consent"))

	if clinical := joinAll(root, "clinical-trial-number"); clinical != "" {
		set("Clinical Trial Registration", clinical)
	}
	if _, ok := out["Conflicts of Interest"]; !ok {
		var parts []string
		for _, fn := range root.FindAll("fn") {
			if fn.Attr("fn-type") == "conflict" {
				if text := strings.TrimSpace(fn.InnerText()); text != "" {
					parts = append(parts, text)
				}
			}
		}
		set("Conflicts of Interest", strings.Join(parts, "\n"))
	}
	return out
}

func joinAll(root *jats.Node, name string) string {
	var parts []string
	for _, n := range root.FindAll(name) {
		if text := strings.TrimSpace(n.InnerText()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// Footnotes concatenates every <back>/<fn-group>/<fn> paragraph with
// " - " between entries (spec.md §5 supplemented feature).
func Footnotes(root *jats.Node) string {
	back := root.Find("back")
	if back == nil {
		return ""
	}
	var notes []string
	for _, group := range back.FindAll("fn-group") {
		for _, fn := range group.FindAll("fn") {
			text := strings.TrimSpace(jats.CleanText(fn))
			if text != "" {
				notes = append(notes, text)
			}
		}
	}
	return strings.Join(notes, " - ")
}

// Acknowledgements returns the text of every <ack> element.
func Acknowledgements(root *jats.Node) []string {
	var out []string
	for _, ack := range root.FindAll("ack") {
		text := strings.TrimSpace(jats.CleanText(ack))
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// Notes formats every top-level <notes> element (one whose parent is
// not itself a <notes>) with "Title: " headers and four-space-indented
// nested notes, mirroring the original implementation's stringify_note.
func Notes(root *jats.Node) []string {
	var out []string
	for _, n := range root.FindAll("notes") {
		if isNestedNotes(root, n) {
			continue
		}
		if text := stringifyNote(n); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func isNestedNotes(root *jats.Node, target *jats.Node) bool {
	for _, parent := range root.FindAll("notes") {
		for _, child := range parent.Children() {
			if child == target {
				return true
			}
		}
	}
	return false
}

func stringifyNote(n *jats.Node) string {
	var b strings.Builder
	for _, child := range n.Children() {
		switch child.Name {
		case "title":
			b.WriteString("Title: ")
			b.WriteString(child.InnerText())
			b.WriteByte('\n')
		case "p":
			b.WriteString(jats.CleanText(child))
		case "notes":
			b.WriteByte('\n')
			for _, line := range strings.Split(stringifyNote(child), "\n") {
				b.WriteString("    ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CustomMeta builds the name->value mapping from <custom-meta>,
// synthesizing a UUID key for entries that carry no <meta-name>
// (spec.md §5 supplemented feature, grounded on the original's
// gather_custom_metadata UUID fallback). The key is a name-based SHA-1
// UUID of the entry's position and value, so the same input always
// yields the same keys.
func CustomMeta(root *jats.Node) map[string]string {
	out := map[string]string{}
	for i, cm := range root.FindAll("custom-meta") {
		name := findText(cm, "meta-name")
		value := findText(cm, "meta-value")
		if name == "" {
			name = uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(i)+"\x00"+value)).String()
		}
		out[name] = value
	}
	return out
}
