// Package report renders a markdown summary of a cleaned dataset.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"sharkclean/internal/table"
)

// Summary captures what a cleaning run did, for the report header.
type Summary struct {
	Source      string
	RawRows     int
	CleanRows   int
	Columns     []string
	Violations  int
	SampleLimit int
}

// Render produces the full markdown report: run summary, value
// distributions for the fatal and species columns, and a sample of rows.
func Render(tbl *table.Table, summary Summary) string {
	var b strings.Builder

	b.WriteString("# Shark Attack Dataset — Cleaning Report\n\n")

	b.WriteString("## Run Summary\n\n")
	writeTable(&b, [][]string{
		{"Metric", "Value"},
		{"Source", summary.Source},
		{"Rows in", fmt.Sprintf("%d", summary.RawRows)},
		{"Rows out", fmt.Sprintf("%d", summary.CleanRows)},
		{"Columns out", fmt.Sprintf("%d", len(summary.Columns))},
		{"Validation findings", fmt.Sprintf("%d", summary.Violations)},
	})

	for _, name := range []string{"fatal", "species"} {
		if col := tbl.Column(name); col != nil {
			b.WriteString(fmt.Sprintf("\n## Distribution: %s\n\n", name))
			writeTable(&b, distribution(col))
		}
	}

	limit := summary.SampleLimit
	if limit <= 0 {
		limit = 10
	}

	if tbl.NumRows() > 0 {
		b.WriteString("\n## Sample Rows\n\n")
		writeTable(&b, sampleRows(tbl, limit))
	}

	return b.String()
}

// distribution counts values in a column, most frequent first.
func distribution(col *table.Column) [][]string {
	counts := make(map[string]int)

	for _, cell := range col.Cells {
		if cell.Null {
			counts["(missing)"]++

			continue
		}

		counts[cell.Value]++
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}

	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}

		return values[i] < values[j]
	})

	rows := [][]string{{"Value", "Count"}}
	for _, v := range values {
		rows = append(rows, []string{v, fmt.Sprintf("%d", counts[v])})
	}

	return rows
}

func sampleRows(tbl *table.Table, limit int) [][]string {
	rows := [][]string{tbl.ColumnNames()}

	n := tbl.NumRows()
	if n > limit {
		n = limit
	}

	for i := 0; i < n; i++ {
		row := make([]string, tbl.NumCols())

		for j, col := range tbl.Columns() {
			if col.Cells[i].Null {
				row[j] = ""

				continue
			}

			row[j] = col.Cells[i].Value
		}

		rows = append(rows, row)
	}

	return rows
}

// writeTable renders rows as a markdown table with width-aware padding so
// columns line up even with non-ASCII content. The first row is the header.
func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(row []string) {
		b.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			padding := widths[i] - runewidth.StringWidth(cell)
			b.WriteString(" " + cell + strings.Repeat(" ", padding) + " |")
		}

		b.WriteString("\n")
	}

	writeRow(rows[0])

	b.WriteString("|")

	for i := 0; i < colCount; i++ {
		b.WriteString(strings.Repeat("-", widths[i]+2) + "|")
	}

	b.WriteString("\n")

	for _, row := range rows[1:] {
		writeRow(row)
	}
}
