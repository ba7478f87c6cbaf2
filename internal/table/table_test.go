package table

import (
	"errors"
	"testing"
)

func buildTable(t *testing.T, cols map[string][]string) *Table {
	t.Helper()

	tbl := New()

	// Deterministic order for tests that inspect column order.
	for _, name := range []string{"a", "b", "c"} {
		values, ok := cols[name]
		if !ok {
			continue
		}

		col := &Column{Name: name}

		for _, v := range values {
			if v == "" {
				col.Cells = append(col.Cells, NullCell())

				continue
			}

			col.Cells = append(col.Cells, StringCell(v))
		}

		col.Kind = InferKind(col)

		if err := tbl.AddColumn(col); err != nil {
			t.Fatalf("AddColumn(%s) failed: %v", name, err)
		}
	}

	return tbl
}

func TestTable_AddColumn_Ragged(t *testing.T) {
	tbl := buildTable(t, map[string][]string{"a": {"1", "2"}})

	err := tbl.AddColumn(&Column{Name: "b", Cells: []Cell{StringCell("x")}})
	if !errors.Is(err, ErrRaggedColumn) {
		t.Errorf("AddColumn error = %v, want ErrRaggedColumn", err)
	}
}

func TestTable_AddColumn_Duplicate(t *testing.T) {
	tbl := buildTable(t, map[string][]string{"a": {"1"}})

	err := tbl.AddColumn(&Column{Name: "a", Cells: []Cell{StringCell("x")}})
	if !errors.Is(err, ErrColumnExists) {
		t.Errorf("AddColumn error = %v, want ErrColumnExists", err)
	}
}

func TestTable_Rename(t *testing.T) {
	tbl := buildTable(t, map[string][]string{"a": {"1"}, "b": {"2"}})

	tbl.Rename("a", "x")

	if tbl.Column("x") == nil {
		t.Error("expected column x after rename")
	}

	if tbl.Column("a") != nil {
		t.Error("column a should be gone after rename")
	}

	// Renaming a missing column is a no-op.
	tbl.Rename("nope", "y")

	if tbl.Column("y") != nil {
		t.Error("renaming a missing column must not create one")
	}
}

func TestTable_Drop(t *testing.T) {
	tbl := buildTable(t, map[string][]string{"a": {"1"}, "b": {"2"}})

	if err := tbl.Drop("a"); err != nil {
		t.Fatalf("Drop(a) failed: %v", err)
	}

	if tbl.NumCols() != 1 {
		t.Errorf("NumCols = %d, want 1", tbl.NumCols())
	}

	err := tbl.Drop("a")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Drop(missing) error = %v, want ErrColumnNotFound", err)
	}
}

func TestTable_FilterRows(t *testing.T) {
	tbl := buildTable(t, map[string][]string{
		"a": {"1", "2", "3"},
		"b": {"x", "y", "z"},
	})

	tbl.FilterRows(func(row int) bool { return row != 1 })

	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", tbl.NumRows())
	}

	// Alignment preserved: row 1 is the old row 2 in every column.
	if got := tbl.Column("a").Cells[1].Value; got != "3" {
		t.Errorf("a[1] = %q, want 3", got)
	}

	if got := tbl.Column("b").Cells[1].Value; got != "z" {
		t.Errorf("b[1] = %q, want z", got)
	}
}

func TestTable_Validate_Ragged(t *testing.T) {
	tbl := buildTable(t, map[string][]string{"a": {"1", "2"}, "b": {"x", "y"}})

	tbl.Column("b").Cells = tbl.Column("b").Cells[:1]

	if err := tbl.Validate(); !errors.Is(err, ErrRaggedColumn) {
		t.Errorf("Validate error = %v, want ErrRaggedColumn", err)
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name   string
		values []Cell
		want   Kind
	}{
		{"integers", []Cell{StringCell("1"), StringCell("42")}, KindInt},
		{"floats", []Cell{StringCell("1.5"), StringCell("2")}, KindFloat},
		{"text", []Cell{StringCell("shark"), StringCell("2")}, KindText},
		{"all null", []Cell{NullCell(), NullCell()}, KindText},
		{"ints with nulls", []Cell{StringCell("7"), NullCell()}, KindInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferKind(&Column{Name: "x", Cells: tt.values})
			if got != tt.want {
				t.Errorf("InferKind = %v, want %v", got, tt.want)
			}
		})
	}
}
