package cleaning

import (
	"sharkclean/internal/table"
)

// FrequencyStep nulls out, per column, every cell whose value occurs fewer
// than minCount times in that column. Cells are nulled, not rows dropped,
// and each column is filtered independently. Running after the null-row
// filter, this can reintroduce missing values in required fields; the
// output validator reports those rather than this step repairing them.
type FrequencyStep struct {
	minCount int
}

// NewFrequencyStep creates the low-frequency filter.
func NewFrequencyStep(minCount int) *FrequencyStep {
	return &FrequencyStep{minCount: minCount}
}

// Name returns the step name.
func (s *FrequencyStep) Name() string {
	return "filter_rare_values"
}

// Apply nulls low-frequency cells in every column.
func (s *FrequencyStep) Apply(tbl *table.Table) (*table.Table, error) {
	for _, col := range tbl.Columns() {
		counts := make(map[string]int)

		for _, cell := range col.Cells {
			if cell.Null {
				continue
			}

			counts[cell.Value]++
		}

		for i, cell := range col.Cells {
			if cell.Null {
				continue
			}

			if counts[cell.Value] < s.minCount {
				col.Cells[i] = table.NullCell()
			}
		}
	}

	return tbl, nil
}
