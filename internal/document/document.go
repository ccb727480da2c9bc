// Package document defines the central Document entity (spec.md §3) and
// the assembler (C7) that builds one from a parsed JATS tree.
package document

import (
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/extract"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ordered"
)

// Document represents one parsed article. Field order matches the
// serializer's fixed key order (spec.md §6) exactly, since encoding/json
// emits struct fields in declaration order; constructing the artifact
// is then a straight marshal of this type.
type Document struct {
	PMCID                  string                          `json:"pmc_id"`
	Title                  string                          `json:"title"`
	AbstractText           string                          `json:"abstract_text"`
	Abstract               *ordered.StringMap              `json:"abstract"`
	Body                   *ordered.StringMap              `json:"body"`
	BodyNested             *ordered.Map[*extract.BodyNode] `json:"body_nested"`
	Paragraphs             []extract.ParagraphRecord       `json:"paragraphs"`
	Authors                []extract.Contributor           `json:"authors"`
	NonAuthorContributors  []extract.Contributor           `json:"non_author_contributors"`
	ArticleID              *ordered.StringMap              `json:"article_id"`
	JournalTitle           string                          `json:"journal_title"`
	JournalID              *ordered.StringMap              `json:"journal_id"`
	PublisherName          string                          `json:"publisher_name"`
	PublisherLocation      string                          `json:"publisher_location"`
	Volume                 string                          `json:"volume"`
	Issue                  string                          `json:"issue"`
	FirstPage              string                          `json:"first_page"`
	LastPage               string                          `json:"last_page"`
	ElocationID            string                          `json:"elocation_id"`
	PublishedDate          *ordered.StringMap              `json:"published_date"`
	HistoryDates           *ordered.StringMap              `json:"history_dates"`
	Keywords               []string                        `json:"keywords"`
	ArticleTypes           []string                        `json:"article_types"`
	ArticleCategories      []string                        `json:"article_categories"`
	Citations              []extract.Citation              `json:"citations"`
	Tables                 []extract.Table                 `json:"tables"`
	Figures                []extract.Figure                `json:"figures"`
	Equations              []extract.Equation              `json:"equations"`
	SupplementaryMaterials []extract.SupplementaryMaterial `json:"supplementary_materials"`
	Footnotes              string                          `json:"footnotes"`
	Acknowledgements       []string                        `json:"acknowledgements"`
	Notes                  []string                        `json:"notes"`
	Appendices             []string                        `json:"appendices"`
	Glossary               map[string]string               `json:"glossary"`
	Funding                []string                        `json:"funding"`
	Ethics                 map[string]string               `json:"ethics"`
	Permissions            extract.Permissions             `json:"permissions"`
	CopyrightStatement     string                          `json:"copyright_statement"`
	LicenseType            string                          `json:"license_type"`
	RelatedArticles        []string                        `json:"related_articles"`
	Conference             string                          `json:"conference"`
	TranslatedTitles       map[string]string               `json:"translated_titles"`
	TranslatedAbstracts    map[string]string               `json:"translated_abstracts"`
	VersionHistory         []extract.VersionHistoryEntry   `json:"version_history"`
	Counts                 map[string]string               `json:"counts"`
	SelfURIs               []string                        `json:"self_uris"`
	CustomMeta             map[string]string               `json:"custom_meta"`
	FullText               string                          `json:"full_text"`
}

// Assemble runs every extractor over root in a defined order (so
// identifiers are available before fields that reference them) and
// builds the immutable Document, including its derived views
// (spec.md §4.7). Assembly is deterministic: identical input bytes
// produce a byte-for-byte identical Document.
func Assemble(canonicalPMCID string, root *jats.Node) *Document {
	authors, nonAuthors := extract.Authors(root)
	abstract := extract.Abstract(root)
	body, bodyNested, paragraphs := extract.Body(root)
	perm := extract.ExtractPermissions(root)

	d := &Document{
		PMCID:                  canonicalPMCID,
		Title:                  extract.Title(root),
		Abstract:               abstract,
		Body:                   body,
		BodyNested:             bodyNested,
		Paragraphs:             paragraphs,
		Authors:                authors,
		NonAuthorContributors:  nonAuthors,
		ArticleID:              extract.ArticleID(root, canonicalPMCID),
		JournalTitle:           extract.JournalTitle(root),
		JournalID:              extract.JournalID(root),
		PublisherName:          extract.PublisherName(root),
		PublisherLocation:      extract.PublisherLocation(root),
		Volume:                 extract.Volume(root),
		Issue:                  extract.Issue(root),
		FirstPage:              extract.FirstPage(root),
		LastPage:               extract.LastPage(root),
		ElocationID:            extract.ElocationID(root),
		PublishedDate:          extract.PublishedDate(root),
		HistoryDates:           extract.HistoryDates(root),
		Keywords:               extract.Keywords(root),
		ArticleTypes:           extract.ArticleTypes(root),
		ArticleCategories:      extract.ArticleCategories(root),
		Citations:              extract.Citations(root),
		Tables:                 extract.Tables(root),
		Figures:                extract.Figures(root),
		Equations:              extract.Equations(root),
		SupplementaryMaterials: extract.SupplementaryMaterials(root),
		Footnotes:              extract.Footnotes(root),
		Acknowledgements:       extract.Acknowledgements(root),
		Notes:                  extract.Notes(root),
		Funding:                extract.Funding(root),
		Ethics:                 extract.Ethics(root),
		Permissions:            perm,
		CopyrightStatement:     perm.CopyrightStatement,
		LicenseType:            perm.LicenseType,
		VersionHistory:         extract.VersionHistory(root),
		CustomMeta:             extract.CustomMeta(root),
	}

	d.AbstractText = joinOrdered(d.Abstract, "\n\n")
	bodyText := joinOrdered(d.Body, "\n\n")
	switch {
	case d.AbstractText != "" && bodyText != "":
		d.FullText = d.AbstractText + "\n\n" + bodyText
	case d.AbstractText != "":
		d.FullText = d.AbstractText
	default:
		d.FullText = bodyText
	}
	fillEmptyDefaults(d)
	return d
}

// fillEmptyDefaults replaces nil slices/maps with their empty-of-type
// value so the serializer never emits JSON null for a missing field
// (spec.md §6: "Missing fields emit their empty-of-type value... rather
// than being omitted").
func fillEmptyDefaults(d *Document) {
	if d.Paragraphs == nil {
		d.Paragraphs = []extract.ParagraphRecord{}
	}
	if d.Authors == nil {
		d.Authors = []extract.Contributor{}
	}
	if d.NonAuthorContributors == nil {
		d.NonAuthorContributors = []extract.Contributor{}
	}
	if d.Keywords == nil {
		d.Keywords = []string{}
	}
	if d.ArticleTypes == nil {
		d.ArticleTypes = []string{}
	}
	if d.ArticleCategories == nil {
		d.ArticleCategories = []string{}
	}
	if d.Citations == nil {
		d.Citations = []extract.Citation{}
	}
	if d.Tables == nil {
		d.Tables = []extract.Table{}
	}
	if d.Figures == nil {
		d.Figures = []extract.Figure{}
	}
	if d.Equations == nil {
		d.Equations = []extract.Equation{}
	}
	if d.SupplementaryMaterials == nil {
		d.SupplementaryMaterials = []extract.SupplementaryMaterial{}
	}
	if d.Acknowledgements == nil {
		d.Acknowledgements = []string{}
	}
	if d.Notes == nil {
		d.Notes = []string{}
	}
	if d.Appendices == nil {
		d.Appendices = []string{}
	}
	if d.Funding == nil {
		d.Funding = []string{}
	}
	if d.RelatedArticles == nil {
		d.RelatedArticles = []string{}
	}
	if d.VersionHistory == nil {
		d.VersionHistory = []extract.VersionHistoryEntry{}
	}
	if d.SelfURIs == nil {
		d.SelfURIs = []string{}
	}
	if d.Glossary == nil {
		d.Glossary = map[string]string{}
	}
	if d.Ethics == nil {
		d.Ethics = map[string]string{}
	}
	if d.TranslatedTitles == nil {
		d.TranslatedTitles = map[string]string{}
	}
	if d.TranslatedAbstracts == nil {
		d.TranslatedAbstracts = map[string]string{}
	}
	if d.Counts == nil {
		d.Counts = map[string]string{}
	}
	if d.CustomMeta == nil {
		d.CustomMeta = map[string]string{}
	}
}

// GetTOC returns the ordered top-level section titles of d.Body
// (spec.md §4.7 get_toc(), §8 invariant d.get_toc() == list(d.body.keys())).
func (d *Document) GetTOC() []string {
	return extract.TableOfContents(d.Body)
}

func joinOrdered(m *ordered.StringMap, sep string) string {
	values := m.Values()
	nonEmpty := values[:0:0]
	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	return strings.Join(nonEmpty, sep)
}
