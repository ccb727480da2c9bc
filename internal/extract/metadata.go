package extract

import (
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ordered"
)

// Title returns the article's title, or "" if absent.
func Title(root *jats.Node) string {
	if t := root.Find("article-title"); t != nil {
		return strings.TrimSpace(jats.CleanText(t))
	}
	return ""
}

// JournalID builds the id-type->value mapping from <journal-id>.
func JournalID(root *jats.Node) *ordered.StringMap {
	out := ordered.NewStringMap()
	for _, jid := range root.FindAll("journal-id") {
		idType := jid.Attr("journal-id-type")
		if idType == "" {
			idType = "default"
		}
		out.Set(idType, strings.TrimSpace(jid.InnerText()))
	}
	return out
}

// JournalTitle returns the first <journal-title>.
func JournalTitle(root *jats.Node) string {
	return findText(root, "journal-title")
}

// ISSN builds the pub-type->value mapping from <issn>.
func ISSN(root *jats.Node) *ordered.StringMap {
	out := ordered.NewStringMap()
	for _, issn := range root.FindAll("issn") {
		key := issn.Attr("pub-type")
		if key == "" {
			key = "default"
		}
		out.Set(key, strings.TrimSpace(issn.InnerText()))
	}
	return out
}

// PublisherName returns the publisher name.
func PublisherName(root *jats.Node) string {
	return findText(root, "publisher-name")
}

// PublisherLocation returns the publisher location.
func PublisherLocation(root *jats.Node) string {
	return findText(root, "publisher-loc")
}

// RawPMCID reads the <article-id pub-id-type="pmcid"> value directly
// from the tree with a leading upper-case "PMC" stripped (no other
// normalization or validation is applied), used by
// the batch orchestrator's local-file input mode where no PMCID is known
// ahead of parsing (spec.md §4.1 read_local).
func RawPMCID(root *jats.Node) string {
	for _, aid := range root.FindAll("article-id") {
		if aid.Attr("pub-id-type") == "pmcid" {
			return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(aid.InnerText()), "PMC"))
		}
	}
	return ""
}

// ArticleID builds the pub-id-type->value mapping from <article-id>,
// always including at least the "pmcid" key the caller supplies.
func ArticleID(root *jats.Node, canonicalPMCID string) *ordered.StringMap {
	out := ordered.NewStringMap()
	out.Set("pmcid", "PMC"+canonicalPMCID)
	for _, aid := range root.FindAll("article-id") {
		idType := aid.Attr("pub-id-type")
		if idType == "" {
			idType = "default"
		}
		value := strings.TrimSpace(aid.InnerText())
		if idType == "pmcid" {
			continue
		}
		out.Set(idType, value)
	}
	return out
}

// ArticleTypes reads the article's subj-group heading subjects.
func ArticleTypes(root *jats.Node) []string {
	cats := root.Find("article-categories")
	if cats == nil {
		return nil
	}
	var out []string
	for _, sg := range cats.Children() {
		if sg.Name != "subj-group" || sg.Attr("subj-group-type") != "heading" {
			continue
		}
		for _, subj := range sg.FindAll("subject") {
			out = append(out, strings.TrimSpace(subj.InnerText()))
		}
	}
	return out
}

// ArticleCategories reads the non-heading subj-group entries, each as
// "type: subject".
func ArticleCategories(root *jats.Node) []string {
	cats := root.Find("article-categories")
	if cats == nil {
		return nil
	}
	var out []string
	for _, sg := range cats.Children() {
		if sg.Name != "subj-group" || sg.Attr("subj-group-type") == "heading" {
			continue
		}
		kind := sg.Attr("subj-group-type")
		for _, subj := range sg.FindAll("subject") {
			text := strings.TrimSpace(subj.InnerText())
			if kind != "" {
				out = append(out, kind+": "+text)
			} else {
				out = append(out, text)
			}
		}
	}
	return out
}

// Keywords reads every <kwd> across all <kwd-group>s, deduplicating
// while preserving first-seen order (spec.md §4.6).
func Keywords(root *jats.Node) []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range root.FindAll("kwd-group") {
		for _, kwd := range group.FindAll("kwd") {
			text := strings.TrimSpace(kwd.InnerText())
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			out = append(out, text)
		}
	}
	return out
}

// Volume, Issue, FirstPage, LastPage, ElocationID are trivial
// article-meta text lookups.
func Volume(root *jats.Node) string      { return findText(root, "volume") }
func Issue(root *jats.Node) string       { return findText(root, "issue") }
func FirstPage(root *jats.Node) string   { return findText(root, "fpage") }
func LastPage(root *jats.Node) string    { return findText(root, "lpage") }
func ElocationID(root *jats.Node) string { return findText(root, "elocation-id") }
