package extract

import (
	"sort"
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

// Equation is one extracted <disp-formula>/<inline-formula> (spec.md
// §4.6 "Equations"): MathML is retained verbatim; the TeX annotation,
// if any, is extracted alongside it.
type Equation struct {
	ID     string
	MathML string
	Tex    string
}

// Equations extracts every disp-formula, in document order, followed by
// every inline-formula, in document order.
func Equations(root *jats.Node) []Equation {
	var out []Equation
	for _, name := range []string{"disp-formula", "inline-formula"} {
		for _, f := range root.FindAll(name) {
			out = append(out, parseEquation(f))
		}
	}
	return out
}

func parseEquation(f *jats.Node) Equation {
	eq := Equation{ID: f.Attr("id")}
	if math := f.Find("math"); math != nil {
		eq.MathML = strings.TrimSpace(renderMathML(math))
	}
	for _, ann := range f.FindAll("tex-math") {
		eq.Tex = strings.TrimSpace(ann.InnerText())
		break
	}
	return eq
}

// renderMathML reconstructs a verbatim-ish MathML snippet from the
// parsed tree since no raw byte range is retained per node; good
// enough for downstream consumers that want the markup, not a
// byte-exact echo of the source.
func renderMathML(n *jats.Node) string {
	var b strings.Builder
	writeMathML(n, &b)
	return b.String()
}

func writeMathML(n *jats.Node, b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Name)
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(n.Attrs[k])
		b.WriteByte('"')
	}
	b.WriteByte('>')
	for _, item := range n.Content {
		if item.Elem != nil {
			writeMathML(item.Elem, b)
		} else {
			b.WriteString(item.Text)
		}
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}
