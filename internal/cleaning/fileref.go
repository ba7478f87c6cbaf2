package cleaning

import (
	"fmt"
	"strings"
	"unicode"

	"sharkclean/internal/table"
)

// FileRefStep sanitizes the pdf column: only alphanumerics, periods,
// underscores, and dashes survive. Missing values, and values that are
// empty after sanitizing, become the configured default.
type FileRefStep struct {
	missing string
}

// NewFileRefStep creates the file-reference normalizer.
func NewFileRefStep(missing string) *FileRefStep {
	return &FileRefStep{missing: missing}
}

// Name returns the step name.
func (s *FileRefStep) Name() string {
	return "normalize_file_ref"
}

// Apply rewrites the pdf column in place.
func (s *FileRefStep) Apply(tbl *table.Table) (*table.Table, error) {
	col := tbl.Column("pdf")
	if col == nil {
		return nil, fmt.Errorf("%w: pdf", ErrMissingColumn)
	}

	for i, cell := range col.Cells {
		if cell.Null {
			col.Cells[i] = table.StringCell(s.missing)

			continue
		}

		col.Cells[i] = table.StringCell(s.sanitize(cell.Value))
	}

	return tbl, nil
}

func (s *FileRefStep) sanitize(raw string) string {
	v := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			return r
		}

		return -1
	}, strings.TrimSpace(raw))

	if v == "" {
		return s.missing
	}

	return v
}
