package cleaning

import (
	"strconv"

	"sharkclean/internal/table"
)

// CoerceFloatsStep turns every float column into an integer column:
// missing values are filled with the numeric fill value and the rest are
// truncated. The zero-fill is uniform across columns, which is lossy for
// any float column where 0 is a real value.
type CoerceFloatsStep struct {
	fill int
}

// NewCoerceFloatsStep creates the type coercion step.
func NewCoerceFloatsStep(fill int) *CoerceFloatsStep {
	return &CoerceFloatsStep{fill: fill}
}

// Name returns the step name.
func (s *CoerceFloatsStep) Name() string {
	return "coerce_floats"
}

// Apply converts float columns to int columns in place.
func (s *CoerceFloatsStep) Apply(tbl *table.Table) (*table.Table, error) {
	fill := strconv.Itoa(s.fill)

	for _, col := range tbl.Columns() {
		if col.Kind != table.KindFloat {
			continue
		}

		for i, cell := range col.Cells {
			if cell.Null {
				col.Cells[i] = table.StringCell(fill)

				continue
			}

			f, err := cell.Float()
			if err != nil {
				col.Cells[i] = table.StringCell(fill)

				continue
			}

			col.Cells[i] = table.StringCell(strconv.FormatInt(int64(f), 10))
		}

		col.Kind = table.KindInt
	}

	return tbl, nil
}
