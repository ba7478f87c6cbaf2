package cleaning

import (
	"fmt"
	"strings"

	"sharkclean/internal/table"
)

// fatalCodes maps the known raw fatality codes, after trimming and
// upper-casing, to the closed set {Yes, No, Unknown}. The map is deliberately
// partial: codes outside it pass through in their normalized form rather
// than being guessed at. YES and NO are included so that already-cleaned
// values are fixed points.
var fatalCodes = map[string]string{
	"Y":       "Yes",
	"F":       "Yes",
	"Y X 2":   "Yes",
	"YES":     "Yes",
	"N":       "No",
	"N N":     "No",
	"NO":      "No",
	"M":       "Unknown",
	"NQ":      "Unknown",
	"UNKNOWN": "Unknown",
}

// FatalStep normalizes the fatality column: known codes map to Yes/No/
// Unknown, missing values become the configured default, anything else
// passes through trimmed and upper-cased.
type FatalStep struct {
	missing string
}

// NewFatalStep creates the fatality normalizer. missing is the sentinel for
// absent values.
func NewFatalStep(missing string) *FatalStep {
	return &FatalStep{missing: missing}
}

// Name returns the step name.
func (s *FatalStep) Name() string {
	return "normalize_fatal"
}

// Apply rewrites the fatal column in place.
func (s *FatalStep) Apply(tbl *table.Table) (*table.Table, error) {
	col := tbl.Column("fatal")
	if col == nil {
		return nil, fmt.Errorf("%w: fatal", ErrMissingColumn)
	}

	for i, cell := range col.Cells {
		if cell.Null {
			col.Cells[i] = table.StringCell(s.missing)

			continue
		}

		col.Cells[i] = table.StringCell(s.normalize(cell.Value))
	}

	return tbl, nil
}

func (s *FatalStep) normalize(v string) string {
	code := strings.ToUpper(strings.TrimSpace(v))

	if mapped, ok := fatalCodes[code]; ok {
		return mapped
	}

	return code
}
