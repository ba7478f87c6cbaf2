// Package cleaning implements the column-by-column normalization pipeline
// that turns the raw shark-attack incident table into an analysis-ready one.
package cleaning

import (
	"errors"
	"fmt"

	"sharkclean/internal/config"
	"sharkclean/internal/logger"
	"sharkclean/internal/table"
)

// ErrMissingColumn is returned by steps whose target column is absent,
// which means the upstream rename never ran or the source schema changed.
var ErrMissingColumn = errors.New("missing column")

// Step is one transformation in the pipeline. A step takes a table and
// returns the modified table; it may mutate its input. Steps never keep
// state between runs.
type Step interface {
	Name() string
	Apply(tbl *table.Table) (*table.Table, error)
}

// Pipeline runs the fixed sequence of cleaning steps strictly in order,
// threading the table through each.
type Pipeline struct {
	steps []Step
	log   *logger.Logger
}

// New builds the pipeline from the cleaning policy. The order is fixed:
// renaming first so later steps can address columns by canonical name,
// pruning last so the drop list refers to canonical names.
func New(cfg *config.CleaningConfig, log *logger.Logger) *Pipeline {
	return &Pipeline{
		steps: []Step{
			NewRenameStep(cfg.Rename),
			NewDropNullRowsStep(cfg.RequiredFields),
			NewCoerceFloatsStep(cfg.Defaults.NumericFill),
			NewFrequencyStep(cfg.MinFrequency),
			NewTextStep(cfg.Punctuation),
			NewAgeStep(),
			NewFatalStep(cfg.Defaults.Fatal),
			NewTimeStep(cfg.Defaults.Time),
			NewSpeciesStep(cfg.Species, cfg.Defaults.Species),
			NewFileRefStep(cfg.Defaults.FileRef),
			NewPruneStep(cfg.DropColumns),
		},
		log: log,
	}
}

// Steps returns the ordered steps.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Run executes every step in order. The first step error aborts the run;
// there is no partial-result emission. The column-alignment invariant is
// checked at every stage boundary.
func (p *Pipeline) Run(tbl *table.Table) (*table.Table, error) {
	for _, step := range p.steps {
		out, err := step.Apply(tbl)
		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		if err := out.Validate(); err != nil {
			return nil, fmt.Errorf("step %s broke table alignment: %w", step.Name(), err)
		}

		if p.log != nil {
			p.log.Debug("step complete",
				"step", step.Name(),
				"rows", out.NumRows(),
				"cols", out.NumCols(),
			)
		}

		tbl = out
	}

	return tbl, nil
}

// Clean runs the full pipeline with the default policy and the supplied
// species vocabulary.
func Clean(tbl *table.Table, species []string, log *logger.Logger) (*table.Table, error) {
	cfg := config.DefaultCleaning(species)

	return New(&cfg, log).Run(tbl)
}
