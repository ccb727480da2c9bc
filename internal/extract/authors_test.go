package extract

import "testing"

func TestAuthorsSplitsFromNonAuthorContributors(t *testing.T) {
	root := parseArticle(t, `<article><front><article-meta><contrib-group>
		<contrib contrib-type="author"><name><given-names>Jane</given-names><surname>Doe</surname></name>
			<xref ref-type="aff" rid="aff1"/>
		</contrib>
		<contrib contrib-type="editor"><name><given-names>John</given-names><surname>Smith</surname></name></contrib>
		<aff id="aff1"><institution-wrap><institution>Example University</institution></institution-wrap>, City, Country</aff>
	</contrib-group></article-meta></front></article>`)

	authors, nonAuthors := Authors(root)
	if len(authors) != 1 || authors[0].LastName != "Doe" {
		t.Fatalf("authors = %+v", authors)
	}
	if authors[0].Type != "Author" {
		t.Errorf("Type = %q, want Author", authors[0].Type)
	}
	if len(authors[0].Affiliations) != 1 {
		t.Fatalf("Affiliations = %v", authors[0].Affiliations)
	}

	if len(nonAuthors) != 1 || nonAuthors[0].LastName != "Smith" || nonAuthors[0].Type != "Editor" {
		t.Fatalf("nonAuthors = %+v", nonAuthors)
	}
}

func TestAuthorsDefaultTypeWhenMissing(t *testing.T) {
	root := parseArticle(t, `<article><front><article-meta><contrib-group>
		<contrib><name><given-names>A</given-names><surname>B</surname></name></contrib>
	</contrib-group></article-meta></front></article>`)
	authors, nonAuthors := Authors(root)
	if len(authors) != 1 || len(nonAuthors) != 0 {
		t.Fatalf("authors=%+v nonAuthors=%+v", authors, nonAuthors)
	}
	if authors[0].Type != "Author" {
		t.Errorf("Type = %q", authors[0].Type)
	}
}
