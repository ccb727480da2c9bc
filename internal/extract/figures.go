package extract

import "github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"

// Figure is one extracted <fig> (spec.md §4.6 "Figures"). No image
// bytes are downloaded; GraphicHref is the href of the first graphic.
type Figure struct {
	ID          string
	Label       string
	Caption     string
	GraphicHref string
	AltText     string
}

// Figures extracts every <fig> element in document order.
func Figures(root *jats.Node) []Figure {
	var out []Figure
	for _, fig := range root.FindAll("fig") {
		f := Figure{
			ID:      fig.Attr("id"),
			Label:   findText(fig, "label"),
			Caption: findText(fig, "caption"),
			AltText: findText(fig, "alt-text"),
		}
		if g := fig.Find("graphic"); g != nil {
			f.GraphicHref = g.Attr("href")
		}
		out = append(out, f)
	}
	return out
}
