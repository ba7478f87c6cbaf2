package report

import (
	"strings"
	"testing"

	"sharkclean/internal/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()

	tbl := table.New()

	fatal := &table.Column{Name: "fatal", Cells: []table.Cell{
		table.StringCell("Yes"),
		table.StringCell("No"),
		table.StringCell("No"),
	}}
	species := &table.Column{Name: "species", Cells: []table.Cell{
		table.StringCell("White Shark"),
		table.StringCell("Unknown"),
		table.NullCell(),
	}}

	for _, col := range []*table.Column{fatal, species} {
		if err := tbl.AddColumn(col); err != nil {
			t.Fatalf("AddColumn failed: %v", err)
		}
	}

	return tbl
}

func TestRender(t *testing.T) {
	got := Render(sampleTable(t), Summary{
		Source:    "attacks.csv",
		RawRows:   10,
		CleanRows: 3,
		Columns:   []string{"fatal", "species"},
	})

	for _, want := range []string{
		"# Shark Attack Dataset — Cleaning Report",
		"## Run Summary",
		"## Distribution: fatal",
		"## Distribution: species",
		"## Sample Rows",
		"attacks.csv",
		"(missing)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRender_DistributionOrder(t *testing.T) {
	got := Render(sampleTable(t), Summary{Source: "x"})

	// No comes twice, Yes once: the more frequent value is listed first.
	noIdx := strings.Index(got, "| No ")
	yesIdx := strings.Index(got, "| Yes ")

	if noIdx == -1 || yesIdx == -1 {
		t.Fatalf("distribution rows missing from report:\n%s", got)
	}

	if noIdx > yesIdx {
		t.Error("expected No (count 2) before Yes (count 1)")
	}
}

func TestWriteTable_Alignment(t *testing.T) {
	var b strings.Builder

	writeTable(&b, [][]string{
		{"Value", "Count"},
		{"White Shark", "1"},
	})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	// All rows render to the same width.
	if len(lines[0]) != len(lines[1]) || len(lines[1]) != len(lines[2]) {
		t.Errorf("rows not aligned:\n%s", b.String())
	}
}
