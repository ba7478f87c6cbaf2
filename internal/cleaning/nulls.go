package cleaning

import (
	"fmt"

	"sharkclean/internal/table"
)

// DropNullRowsStep drops every row that is missing a value in any of the
// required fields. After it runs, those fields have zero missing values;
// the row count never increases.
type DropNullRowsStep struct {
	required []string
}

// NewDropNullRowsStep creates the null-row filter.
func NewDropNullRowsStep(required []string) *DropNullRowsStep {
	return &DropNullRowsStep{required: required}
}

// Name returns the step name.
func (s *DropNullRowsStep) Name() string {
	return "drop_null_rows"
}

// Apply removes rows with missing required fields. All required columns must
// exist; a missing one means the rename step never produced it.
func (s *DropNullRowsStep) Apply(tbl *table.Table) (*table.Table, error) {
	cols := make([]*table.Column, 0, len(s.required))

	for _, name := range s.required {
		col := tbl.Column(name)
		if col == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}

		cols = append(cols, col)
	}

	tbl.FilterRows(func(row int) bool {
		for _, col := range cols {
			if col.Cells[row].Null {
				return false
			}
		}

		return true
	})

	return tbl, nil
}
