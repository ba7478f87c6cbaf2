package cleaning

import (
	"fmt"

	"sharkclean/internal/table"
)

// PruneStep drops the fixed list of known-irrelevant columns. It runs last
// and fails the whole run if any listed column is absent: a missing column
// means the upstream rename did not execute, and silently skipping would
// hide that.
type PruneStep struct {
	drop []string
}

// NewPruneStep creates the column pruner.
func NewPruneStep(drop []string) *PruneStep {
	return &PruneStep{drop: drop}
}

// Name returns the step name.
func (s *PruneStep) Name() string {
	return "prune_columns"
}

// Apply drops every listed column, erroring on the first absent one.
func (s *PruneStep) Apply(tbl *table.Table) (*table.Table, error) {
	for _, name := range s.drop {
		if err := tbl.Drop(name); err != nil {
			return nil, fmt.Errorf("failed to prune: %w", err)
		}
	}

	return tbl, nil
}
