package extract

import (
	"fmt"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ordered"
)

// PublishedDate builds the pub-type->ISO-date mapping spec.md §4.6
// "Dates" describes: each <pub-date> is keyed by its pub-type (or
// date-type) attribute, missing month/day default to "01".
func PublishedDate(root *jats.Node) *ordered.StringMap {
	out := ordered.NewStringMap()
	for _, pd := range root.FindAll("pub-date") {
		key := pd.Attr("pub-type")
		if key == "" {
			key = pd.Attr("date-type")
		}
		if key == "" {
			key = "pub"
		}
		out.Set(key, isoDate(pd))
	}
	return out
}

// HistoryDates builds the received/accepted/revised->ISO-date mapping
// from <history>/<date> elements.
func HistoryDates(root *jats.Node) *ordered.StringMap {
	out := ordered.NewStringMap()
	history := root.Find("history")
	if history == nil {
		return out
	}
	for _, d := range history.FindAll("date") {
		key := d.Attr("date-type")
		if key == "" {
			continue
		}
		out.Set(key, isoDate(d))
	}
	return out
}

// isoDate assembles YYYY-MM-DD from a date-ish node's year/month/day
// children, defaulting absent month/day to "01" (spec.md §4.6, §8).
func isoDate(n *jats.Node) string {
	year := findText(n, "year")
	if year == "" {
		return ""
	}
	month := findText(n, "month")
	if month == "" {
		month = "01"
	}
	day := findText(n, "day")
	if day == "" {
		day = "01"
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
