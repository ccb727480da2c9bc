package extract

import "testing"

func TestTablesColspanRowspanExpansion(t *testing.T) {
	root := parseArticle(t, `<article><body><table-wrap id="t1">
		<label>Table 1</label>
		<caption><p>A caption.</p></caption>
		<table>
			<thead><tr><th colspan="2">Group</th><th>C</th></tr></thead>
			<tbody>
				<tr><td rowspan="2">R1C1</td><td>R1C2</td><td>R1C3</td></tr>
				<tr><td>R2C2</td><td>R2C3</td></tr>
			</tbody>
		</table>
	</table-wrap></body></article>`)

	tables := Tables(root)
	if len(tables) != 1 {
		t.Fatalf("len(tables) = %d, want 1", len(tables))
	}
	tbl := tables[0]
	if tbl.Label != "Table 1" {
		t.Errorf("Label = %q", tbl.Label)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(tbl.Rows))
	}
	width := len(tbl.Rows[0])
	for i, row := range tbl.Rows {
		if len(row) != width {
			t.Errorf("Rows[%d] has width %d, want %d (rectangular invariant)", i, len(row), width)
		}
	}
	if tbl.Rows[0][0] != "Group" || tbl.Rows[0][1] != "Group" {
		t.Errorf("colspan not expanded: %v", tbl.Rows[0])
	}
	if tbl.Rows[1][0] != "R1C1" || tbl.Rows[2][0] != "R1C1" {
		t.Errorf("rowspan not expanded: row1=%v row2=%v", tbl.Rows[1], tbl.Rows[2])
	}
}

func TestTablesEmptyWhenNoTableElement(t *testing.T) {
	root := parseArticle(t, `<article><body><table-wrap id="t1"><label>T</label></table-wrap></body></article>`)
	tables := Tables(root)
	if len(tables) != 1 || tables[0].Rows != nil {
		t.Errorf("tables = %+v", tables)
	}
}
