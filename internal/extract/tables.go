package extract

import (
	"strconv"
	"strings"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/jats"
)

// Table is one extracted table-wrap (spec.md §4.6 "Tables"): Rows is a
// dense rectangular matrix, colspan/rowspan expanded, short rows
// right-padded with empty cells.
type Table struct {
	Label   string
	Caption string
	Rows    [][]string
}

// Tables extracts every table-wrap element in document order.
func Tables(root *jats.Node) []Table {
	var out []Table
	for _, wrap := range root.FindAll("table-wrap") {
		out = append(out, parseTable(wrap))
	}
	return out
}

func parseTable(wrap *jats.Node) Table {
	t := Table{
		Label:   findText(wrap, "label"),
		Caption: findText(wrap, "caption"),
	}
	table := wrap.Find("table")
	if table == nil {
		return t
	}

	spans := map[int]*spanCarry{}
	var rows [][]string
	for _, thead := range table.FindAll("thead") {
		for _, tr := range thead.FindAll("tr") {
			rows = append(rows, expandRow(tr, spans))
		}
	}
	for _, tbody := range table.FindAll("tbody") {
		for _, tr := range tbody.FindAll("tr") {
			rows = append(rows, expandRow(tr, spans))
		}
	}
	// Tables without thead/tbody wrappers (bare <tr> under <table>).
	if len(rows) == 0 {
		for _, tr := range table.FindAll("tr") {
			rows = append(rows, expandRow(tr, spans))
		}
	}

	t.Rows = padRectangular(rows)
	return t
}

type spanCarry struct {
	text      string
	remaining int
}

// expandRow lays out one <tr>'s cells against column positions still
// occupied by a previous row's rowspan, then records any new rowspans
// this row introduces so later rows can pick them up (spec.md §4.6,
// §9 "Table colspan/rowspan").
func expandRow(tr *jats.Node, spans map[int]*spanCarry) []string {
	var result []string
	col := 0
	cells := tr.Children()
	ci := 0

	extend := func(upto int) {
		for len(result) <= upto {
			result = append(result, "")
		}
	}

	for ci < len(cells) || hasPendingSpan(spans, col) {
		if carry, ok := spans[col]; ok && carry.remaining > 0 {
			extend(col)
			result[col] = carry.text
			carry.remaining--
			if carry.remaining == 0 {
				delete(spans, col)
			}
			col++
			continue
		}
		if ci >= len(cells) {
			break
		}
		cell := cells[ci]
		ci++
		if cell.Name != "td" && cell.Name != "th" {
			continue
		}
		text := strings.TrimSpace(cell.InnerText())
		colspan := attrInt(cell, "colspan", 1)
		rowspan := attrInt(cell, "rowspan", 1)
		for k := 0; k < colspan; k++ {
			extend(col + k)
			result[col+k] = text
			if rowspan > 1 {
				spans[col+k] = &spanCarry{text: text, remaining: rowspan - 1}
			}
		}
		col += colspan
	}
	return result
}

func hasPendingSpan(spans map[int]*spanCarry, col int) bool {
	c, ok := spans[col]
	return ok && c.remaining > 0
}

func attrInt(n *jats.Node, name string, def int) int {
	v := n.Attr(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 1 {
		return def
	}
	return i
}

// padRectangular right-pads every row with empty strings so the matrix
// is rectangular (spec.md §8 invariant).
func padRectangular(rows [][]string) [][]string {
	maxLen := 0
	for _, r := range rows {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		padded := make([]string, maxLen)
		copy(padded, r)
		out[i] = padded
	}
	return out
}
