package document

import (
	"testing"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

func parse(t *testing.T, xml string) *jats.Node {
	t.Helper()
	root, err := jats.Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func TestAssembleFullTextCombinesAbstractAndBody(t *testing.T) {
	root := parse(t, `<article><front><article-meta>
		<abstract><p>An abstract.</p></abstract>
	</article-meta></front><body><sec><title>Intro</title><p>Body text.</p></sec></body></article>`)

	d := Assemble("7181753", root)
	want := "An abstract.\n\nBody text."
	if d.FullText[:len(want)] != want {
		t.Errorf("FullText = %q", d.FullText)
	}
	if d.AbstractText != "An abstract." {
		t.Errorf("AbstractText = %q", d.AbstractText)
	}
}

func TestAssembleEmptyBodyEqualsAbstractTextOnly(t *testing.T) {
	root := parse(t, `<article><front><article-meta>
		<abstract><p>Only abstract.</p></abstract>
	</article-meta></front></article>`)
	d := Assemble("1", root)
	if d.FullText != d.AbstractText {
		t.Errorf("FullText = %q, want %q", d.FullText, d.AbstractText)
	}
	if d.Body.Len() != 0 {
		t.Errorf("Body.Len() = %d, want 0", d.Body.Len())
	}
}

func TestAssembleSetsCanonicalArticleID(t *testing.T) {
	root := parse(t, `<article/>`)
	d := Assemble("42", root)
	pmcid, ok := d.ArticleID.Get("pmcid")
	if !ok || pmcid != "PMC42" {
		t.Errorf("article_id.pmcid = %q", pmcid)
	}
}

func TestGetTOCMatchesBodyKeys(t *testing.T) {
	root := parse(t, `<article><body>
		<sec><title>A</title><p>1</p></sec>
		<sec><title>B</title><p>2</p></sec>
	</body></article>`)
	d := Assemble("1", root)
	toc := d.GetTOC()
	bodyKeys := d.Body.Keys()
	if len(toc) != len(bodyKeys) {
		t.Fatalf("toc = %v, body keys = %v", toc, bodyKeys)
	}
	for i := range toc {
		if toc[i] != bodyKeys[i] {
			t.Errorf("toc[%d] = %q, want %q", i, toc[i], bodyKeys[i])
		}
	}
}
