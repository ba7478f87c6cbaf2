package cleaning

import (
	"strings"
	"testing"

	"sharkclean/internal/config"
	"sharkclean/internal/table"
)

// rawIncidentTable mimics the source dataset: irregular headers, mixed
// encodings, a row with a missing required field, and junk columns.
func rawIncidentTable(t *testing.T) *table.Table {
	t.Helper()

	return newTable(t,
		col("Case Number", "1958.04.12", "1960.01.01", "1933.01.01"),
		col("Country", "usa", "australia", ""),
		col("Name", "john doe", "jane roe", "bob"),
		col("Sex", "M", "F", "M"),
		col("Age", "30", "25 Years", "40"),
		col("Unnamed: 11", "Y", "N", "N"),
		col("Time", "Dawn", "1830", ""),
		col("Species ", "great white shark", "tiger shark involved", ""),
		col("pdf", "12_3.Report!.pdf", "", ""),
		col("original order", "1", "2", "3"),
		col("Unnamed: 21", "", "", ""),
		col("Unnamed: 22", "", "", ""),
	)
}

func TestPipeline_StepOrder(t *testing.T) {
	cfg := config.DefaultCleaning(testSpecies)

	want := []string{
		"rename_columns",
		"drop_null_rows",
		"coerce_floats",
		"filter_rare_values",
		"normalize_text",
		"normalize_age",
		"normalize_fatal",
		"standardize_time",
		"normalize_species",
		"normalize_file_ref",
		"prune_columns",
	}

	steps := New(&cfg, nil).Steps()
	if len(steps) != len(want) {
		t.Fatalf("pipeline has %d steps, want %d", len(steps), len(want))
	}

	for i, step := range steps {
		if step.Name() != want[i] {
			t.Errorf("step[%d] = %s, want %s", i, step.Name(), want[i])
		}
	}
}

func TestPipeline_Run(t *testing.T) {
	cfg := config.DefaultCleaning(testSpecies)
	// A three-row fixture cannot meet the production frequency threshold.
	cfg.MinFrequency = 1

	tbl := rawIncidentTable(t)
	rawRows := tbl.NumRows()

	out, err := New(&cfg, nil).Run(tbl)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if out.NumRows() > rawRows {
		t.Errorf("row count grew from %d to %d", rawRows, out.NumRows())
	}

	// The row missing country is gone.
	if out.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", out.NumRows())
	}

	// Pruned columns are gone, canonical ones remain.
	for _, name := range []string{"original_order", "unnamed:_21", "unnamed:_22"} {
		if out.HasColumn(name) {
			t.Errorf("column %s should have been pruned", name)
		}
	}

	wantCols := []string{"case_number", "country", "name", "sex", "age", "fatal", "time", "species", "pdf"}

	got := out.ColumnNames()
	if strings.Join(got, ",") != strings.Join(wantCols, ",") {
		t.Errorf("columns = %v, want %v", got, wantCols)
	}

	assertValues(t, out.Column("country"), []string{"Usa", "Australia"})
	assertValues(t, out.Column("name"), []string{"John Doe", "Jane Roe"})
	assertValues(t, out.Column("age"), []string{"30", "25"})
	assertValues(t, out.Column("fatal"), []string{"Yes", "No"})
	assertValues(t, out.Column("time"), []string{"06:00", "18:30"})
	assertValues(t, out.Column("species"), []string{"White Shark", "Tiger Shark"})

	// The text normalizer strips punctuation before the file-reference step
	// sees the value, same as the original pipeline order implies.
	assertValues(t, out.Column("pdf"), []string{"12_3ReportPdf", "Unknown"})
}

func TestPipeline_PruneFailureAbortsRun(t *testing.T) {
	cfg := config.DefaultCleaning(testSpecies)
	cfg.MinFrequency = 1

	tbl := rawIncidentTable(t)
	if err := tbl.Drop("original order"); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}

	if _, err := New(&cfg, nil).Run(tbl); err == nil {
		t.Fatal("expected run to fail when a pruned column is absent")
	}
}

func TestClean_ProductionThreshold(t *testing.T) {
	// At the production threshold every value in a three-row table is rare:
	// cells null out, then the defaulting normalizers refill their columns.
	out, err := Clean(rawIncidentTable(t), testSpecies, nil)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	assertValues(t, out.Column("time"), []string{"12:00", "12:00"})
	assertValues(t, out.Column("fatal"), []string{"Unknown", "Unknown"})
	assertValues(t, out.Column("species"), []string{"Unknown", "Unknown"})

	// Age has no fallback: the nulled cells stay missing.
	for i, cell := range out.Column("age").Cells {
		if !cell.Null {
			t.Errorf("age[%d] = %q, want missing", i, cell.Value)
		}
	}
}
