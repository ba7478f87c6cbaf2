package cleaning

import (
	"testing"

	"sharkclean/internal/table"
)

// col builds a column from values, with "" meaning null, and infers its kind.
func col(name string, values ...string) *table.Column {
	c := &table.Column{Name: name}

	for _, v := range values {
		if v == "" {
			c.Cells = append(c.Cells, table.NullCell())

			continue
		}

		c.Cells = append(c.Cells, table.StringCell(v))
	}

	c.Kind = table.InferKind(c)

	return c
}

func newTable(t *testing.T, cols ...*table.Column) *table.Table {
	t.Helper()

	tbl := table.New()

	for _, c := range cols {
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn(%s) failed: %v", c.Name, err)
		}
	}

	return tbl
}

// values flattens a column back to strings, with "" for null.
func values(c *table.Column) []string {
	out := make([]string, len(c.Cells))

	for i, cell := range c.Cells {
		if cell.Null {
			continue
		}

		out[i] = cell.Value
	}

	return out
}

func assertValues(t *testing.T, c *table.Column, want []string) {
	t.Helper()

	got := values(c)
	if len(got) != len(want) {
		t.Fatalf("%s has %d cells, want %d", c.Name, len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %q, want %q", c.Name, i, got[i], want[i])
		}
	}
}
