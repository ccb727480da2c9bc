package extract

import "testing"

func TestAbstractUnlabeledProse(t *testing.T) {
	root := parseArticle(t, `<article><front><article-meta><abstract><p>Plain abstract text.</p></abstract></article-meta></front></article>`)
	abs := Abstract(root)
	text, ok := abs.Get("Abstract")
	if !ok || text != "Plain abstract text." {
		t.Errorf("Abstract() = %v", abs.Keys())
	}
}

func TestAbstractLabeledSections(t *testing.T) {
	root := parseArticle(t, `<article><front><article-meta><abstract>
		<sec><title>Background</title><p>Why it matters.</p></sec>
		<sec><title>Methods</title><p>How we did it.</p><p>More detail.</p></sec>
	</abstract></article-meta></front></article>`)
	abs := Abstract(root)
	bg, _ := abs.Get("Background")
	if bg != "Why it matters." {
		t.Errorf("Background = %q", bg)
	}
	methods, _ := abs.Get("Methods")
	if methods != "How we did it. More detail." {
		t.Errorf("Methods = %q", methods)
	}
}

func TestAbstractMissingIsEmpty(t *testing.T) {
	root := parseArticle(t, `<article><front/></article>`)
	abs := Abstract(root)
	if abs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", abs.Len())
	}
}
