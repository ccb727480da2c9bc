package jats

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// inlineRemoveSet holds the element names the cleaner deletes before text
// extraction (spec.md §4.5): cross-references and their kin. The
// bibliography's own <ref> elements under <ref-list> are never walked
// through this function — citations are extracted structurally by
// internal/extract, not via inline text cleaning — so including "ref"
// here only affects stray inline citation markers some JATS producers
// emit outside of <xref>.
var inlineRemoveSet = map[string]bool{
	"xref":   true,
	"target": true,
	"ref":    true,
}

var (
	emptyBracketPattern  = regexp.MustCompile(`[\(\[\{]\s*[\)\]\}]`)
	repeatedPunctPattern = regexp.MustCompile(`([,;])\s*\1+`)
	spaceBeforePunct     = regexp.MustCompile(`\s+([,.;:!?])`)
	whitespaceRun        = regexp.MustCompile(`[ \t\r\f\v]+`)
)

// CleanText extracts the human-readable text of n, deleting inlineRemoveSet
// elements (preserving the whitespace around them so sentences stay
// grammatical), collapsing the citation-bracket debris that removal
// leaves behind, normalizing intra-element whitespace runs to a single
// space, and decoding any residual named entities via
// golang.org/x/net/html (spec.md §4.5).
func CleanText(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeCleanContent(n, &b)
	return normalizeWhitespace(b.String())
}

// writeCleanContent walks n's content, skipping whole subtrees named in
// inlineRemoveSet but keeping their surrounding text nodes untouched so
// whitespace handling stays uniform (spec.md §9 design note: "prefer
// tree-level deletion so surrounding whitespace handling is uniform").
func writeCleanContent(n *Node, b *strings.Builder) {
	for _, it := range n.Content {
		if it.Elem != nil {
			if inlineRemoveSet[it.Elem.Name] {
				continue
			}
			writeCleanContent(it.Elem, b)
			continue
		}
		b.WriteString(it.Text)
	}
}

// normalizeWhitespace collapses runs of intra-line whitespace to a single
// space, cleans up citation-bracket debris left behind by xref removal,
// decodes residual HTML/XML named entities, and trims the result. Newlines
// are folded into single spaces along with other whitespace (paragraph
// breaks are a caller-level concern - this operates within one
// paragraph's text).
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = whitespaceRun.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = emptyBracketPattern.ReplaceAllString(s, "")
	s = repeatedPunctPattern.ReplaceAllString(s, "$1")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
