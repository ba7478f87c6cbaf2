package cleaning

import (
	"strings"

	"sharkclean/internal/table"
)

// RenameStep maps known irregular column headers to canonical names, then
// lower-cases and underscores every remaining header. It must run before any
// step that addresses columns by canonical name.
type RenameStep struct {
	renames map[string]string
}

// NewRenameStep creates the column normalizer.
func NewRenameStep(renames map[string]string) *RenameStep {
	return &RenameStep{renames: renames}
}

// Name returns the step name.
func (s *RenameStep) Name() string {
	return "rename_columns"
}

// Apply renames columns in place. Headers in the rename map that are absent
// from the table are skipped; unmatched headers pass through canonicalized.
func (s *RenameStep) Apply(tbl *table.Table) (*table.Table, error) {
	for oldName, newName := range s.renames {
		tbl.Rename(oldName, newName)
	}

	for _, col := range tbl.Columns() {
		col.Name = Canonicalize(col.Name)
	}

	return tbl, nil
}

// Canonicalize converts a raw header to its canonical form: lower-cased with
// spaces replaced by underscores.
func Canonicalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
