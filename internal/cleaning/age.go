package cleaning

import (
	"fmt"
	"strconv"
	"strings"

	"sharkclean/internal/table"
)

// AgeStep extracts a numeric age from free-text values such as "30s" or
// "about 25". The token before the first whitespace is parsed as a number
// and truncated; unparseable tokens become missing. Age has no default-value
// fallback, unlike fatal and time.
type AgeStep struct{}

// NewAgeStep creates the age normalizer.
func NewAgeStep() *AgeStep {
	return &AgeStep{}
}

// Name returns the step name.
func (s *AgeStep) Name() string {
	return "normalize_age"
}

// Apply rewrites the age column as integer-or-missing.
func (s *AgeStep) Apply(tbl *table.Table) (*table.Table, error) {
	col := tbl.Column("age")
	if col == nil {
		return nil, fmt.Errorf("%w: age", ErrMissingColumn)
	}

	for i, cell := range col.Cells {
		if cell.Null {
			continue
		}

		age, ok := ParseAge(cell.Value)
		if !ok {
			col.Cells[i] = table.NullCell()

			continue
		}

		col.Cells[i] = table.StringCell(strconv.FormatInt(age, 10))
	}

	col.Kind = table.KindInt

	return tbl, nil
}

// ParseAge extracts the leading numeric token of a raw age value.
func ParseAge(v string) (int64, bool) {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0, false
	}

	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}

	return int64(f), true
}
