// Package table provides the in-memory column-oriented table the cleaning
// pipeline operates on.
package table

import (
	"errors"
	"fmt"
	"strconv"
)

// Table manipulation errors.
var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrColumnExists    = errors.New("column already exists")
	ErrRaggedColumn    = errors.New("column length does not match table row count")
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Kind is the semantic type tag of a column, assigned once at load time.
// Steps dispatch on the tag instead of re-inspecting cell values.
type Kind int

// Column kinds.
const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindCategorical
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindCategorical:
		return "categorical"
	default:
		return "text"
	}
}

// Cell is a single nullable value. Values are stored in their string form;
// the owning column's Kind says how to interpret them.
type Cell struct {
	Value string
	Null  bool
}

// NullCell returns a missing cell.
func NullCell() Cell {
	return Cell{Null: true}
}

// StringCell returns a populated cell.
func StringCell(v string) Cell {
	return Cell{Value: v}
}

// Float returns the cell parsed as a float64.
func (c Cell) Float() (float64, error) {
	if c.Null {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseFloat(c.Value, 64)
}

// Column is an ordered sequence of cells under a name and kind.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	cols []*Column
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}

	return len(t.cols[0].Cells)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}

	return names
}

// Columns returns the columns in table order.
func (t *Table) Columns() []*Column {
	return t.cols
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for _, col := range t.cols {
		if col.Name == name {
			return col
		}
	}

	return nil
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) != nil
}

// AddColumn appends a column. The column must match the table's row count
// unless the table is empty.
func (t *Table) AddColumn(col *Column) error {
	if t.Column(col.Name) != nil {
		return fmt.Errorf("%w: %s", ErrColumnExists, col.Name)
	}

	if len(t.cols) > 0 && len(col.Cells) != t.NumRows() {
		return fmt.Errorf("%w: %s has %d cells, table has %d rows",
			ErrRaggedColumn, col.Name, len(col.Cells), t.NumRows())
	}

	t.cols = append(t.cols, col)

	return nil
}

// Rename changes a column's name in place. Renaming a missing column is a
// no-op so callers can apply a rename map without probing first.
func (t *Table) Rename(oldName, newName string) {
	col := t.Column(oldName)
	if col == nil || oldName == newName {
		return
	}

	col.Name = newName
}

// Drop removes the named column. Missing columns are an error; the pruning
// step depends on that to detect a broken upstream rename.
func (t *Table) Drop(name string) error {
	for i, col := range t.cols {
		if col.Name == name {
			t.cols = append(t.cols[:i], t.cols[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// FilterRows keeps only the rows for which keep returns true. Row alignment
// across columns is preserved.
func (t *Table) FilterRows(keep func(row int) bool) {
	rows := t.NumRows()

	kept := make([]int, 0, rows)

	for i := 0; i < rows; i++ {
		if keep(i) {
			kept = append(kept, i)
		}
	}

	if len(kept) == rows {
		return
	}

	for _, col := range t.cols {
		cells := make([]Cell, len(kept))
		for j, i := range kept {
			cells[j] = col.Cells[i]
		}

		col.Cells = cells
	}
}

// Validate checks the equal-length invariant across columns and rejects
// duplicate names. Called at pipeline stage boundaries.
func (t *Table) Validate() error {
	rows := t.NumRows()
	seen := make(map[string]bool, len(t.cols))

	for _, col := range t.cols {
		if seen[col.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name)
		}

		seen[col.Name] = true

		if len(col.Cells) != rows {
			return fmt.Errorf("%w: %s has %d cells, table has %d rows",
				ErrRaggedColumn, col.Name, len(col.Cells), rows)
		}
	}

	return nil
}

// InferKind classifies a column by its non-null cells: all parse as integers
// → int, all parse as floats → float, otherwise text. An all-null column is
// text.
func InferKind(col *Column) Kind {
	sawValue := false
	allInt := true
	allFloat := true

	for _, c := range col.Cells {
		if c.Null {
			continue
		}

		sawValue = true

		if _, err := strconv.ParseInt(c.Value, 10, 64); err != nil {
			allInt = false
		}

		if _, err := strconv.ParseFloat(c.Value, 64); err != nil {
			allFloat = false

			break
		}
	}

	switch {
	case !sawValue:
		return KindText
	case allInt:
		return KindInt
	case allFloat:
		return KindFloat
	default:
		return KindText
	}
}
