package extract

import (
	"fmt"
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ordered"
)

// BodyNode is one node of the recursive body_nested view (spec.md §4.6
// "Body (nested view)"): its own paragraph text lives under the
// reserved key _text; its subsections are Children, keyed by their
// display title.
type BodyNode struct {
	Text     string
	Children *ordered.Map[*BodyNode]
}

// ParagraphRecord is one leaf paragraph entry of the paragraphs view
// (spec.md §4.6 "Paragraphs view"). ParagraphIndex is zero-based and
// counts paragraphs within the enclosing top-level Section only, so
// Section always names a key present in the flat body mapping
// (spec.md §8 invariant).
type ParagraphRecord struct {
	Section        string
	Subsection     string
	ParagraphIndex int
	Text           string
}

// sectionNode is the internal, pre-display-title tree built directly
// from the XML before duplicate-title suffixing is applied.
type sectionNode struct {
	rawTitle      string
	ownParagraphs []string
	children      []*sectionNode
}

// Body parses the article's <body> element into the three derived
// views spec.md §4.6/§4.7 require: the flat section_title->text
// mapping, the recursive body_nested mapping, and the flat paragraphs
// list. All three come from one traversal so they stay consistent.
func Body(root *jats.Node) (flat *ordered.StringMap, nested *ordered.Map[*BodyNode], paragraphs []ParagraphRecord) {
	flat = ordered.NewStringMap()
	nested = ordered.NewMap[*BodyNode]()

	body := root.Find("body")
	if body == nil {
		return flat, nested, nil
	}

	var tops []*sectionNode
	for _, child := range body.Children() {
		switch child.Name {
		case "sec":
			tops = append(tops, buildSectionTree(child))
		case "p":
			text := jats.CleanText(child)
			if text != "" {
				tops = append(tops, &sectionNode{ownParagraphs: []string{text}})
			}
		}
	}

	titles := displayTitles(tops)
	for i, top := range tops {
		title := titles[i]
		flat.Set(title, flatSectionText(top))
		nested.Set(title, buildBodyNode(top))

		counter := 0
		collectParagraphs(top, title, "", &counter, &paragraphs)
	}
	return flat, nested, paragraphs
}

func buildSectionTree(sec *jats.Node) *sectionNode {
	node := &sectionNode{rawTitle: sectionTitle(sec)}
	for _, child := range sec.Children() {
		switch child.Name {
		case "p":
			text := jats.CleanText(child)
			if text != "" {
				node.ownParagraphs = append(node.ownParagraphs, text)
			}
		case "sec":
			node.children = append(node.children, buildSectionTree(child))
		}
	}
	return node
}

// displayTitles assigns the default-and-deduplicated title each sibling
// in nodes should be shown under: empty titles become "Untitled
// Section"; repeats at the same level get " (2)", " (3)", ... suffixes
// in encounter order (spec.md §4.6, §8).
func displayTitles(nodes []*sectionNode) []string {
	counts := map[string]int{}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		base := n.rawTitle
		if base == "" {
			base = "Untitled Section"
		}
		counts[base]++
		if counts[base] == 1 {
			out[i] = base
		} else {
			out[i] = fmt.Sprintf("%s (%d)", base, counts[base])
		}
	}
	return out
}

// flatSectionText implements the concatenation rule of spec.md §4.6:
// a section's own paragraphs, followed by each subsection recursively,
// prefixed with "SECTION: <title>:\n\n    " and its own text indented
// by four spaces per continuation line.
func flatSectionText(n *sectionNode) string {
	var parts []string
	if own := strings.Join(n.ownParagraphs, "\n\n"); own != "" {
		parts = append(parts, own)
	}
	titles := displayTitles(n.children)
	for i, child := range n.children {
		sub := flatSectionText(child)
		header := "SECTION: " + titles[i] + ":\n\n    "
		indented := strings.ReplaceAll(sub, "\n", "\n    ")
		parts = append(parts, header+indented)
	}
	return strings.Join(parts, "\n\n")
}

func buildBodyNode(n *sectionNode) *BodyNode {
	bn := &BodyNode{
		Text:     strings.Join(n.ownParagraphs, "\n\n"),
		Children: ordered.NewMap[*BodyNode](),
	}
	titles := displayTitles(n.children)
	for i, child := range n.children {
		bn.Children.Set(titles[i], buildBodyNode(child))
	}
	return bn
}

func collectParagraphs(n *sectionNode, section, subsection string, counter *int, out *[]ParagraphRecord) {
	for _, text := range n.ownParagraphs {
		*out = append(*out, ParagraphRecord{
			Section:        section,
			Subsection:     subsection,
			ParagraphIndex: *counter,
			Text:           text,
		})
		*counter++
	}
	titles := displayTitles(n.children)
	for i, child := range n.children {
		collectParagraphs(child, section, titles[i], counter, out)
	}
}

// TableOfContents returns the top-level section titles of flat, in
// order, matching spec.md §4.7's get_toc() contract.
func TableOfContents(flat *ordered.StringMap) []string {
	return append([]string(nil), flat.Keys()...)
}
