// Package validator checks the cleaned table against the guarantees the
// pipeline is supposed to deliver.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"sharkclean/internal/config"
	"sharkclean/internal/table"
)

// ErrValidationFailed is returned in strict mode when any check fails.
var ErrValidationFailed = errors.New("output validation failed")

// fatalValues is the closed set the fatality normalizer maps known codes to.
var fatalValues = map[string]bool{
	"Yes":     true,
	"No":      true,
	"Unknown": true,
}

// Violation describes one failed check.
type Violation struct {
	Column string
	Row    int
	Reason string
}

// String renders the violation for logs.
func (v Violation) String() string {
	return fmt.Sprintf("%s[%d]: %s", v.Column, v.Row, v.Reason)
}

// Validator runs config-driven checks on a cleaned table.
type Validator struct {
	required       []string
	species        map[string]bool
	speciesMissing string
	timePattern    *regexp.Regexp
	fileRefPattern *regexp.Regexp
	strict         bool
}

// New creates a validator from the cleaning policy and validation rules.
func New(cleaning *config.CleaningConfig, rules *config.ValidationConfig) (*Validator, error) {
	timePattern, err := regexp.Compile(rules.TimePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid time pattern: %w", err)
	}

	fileRefPattern, err := regexp.Compile(rules.FileRefPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file_ref pattern: %w", err)
	}

	species := make(map[string]bool, len(cleaning.Species)+1)
	for _, name := range cleaning.Species {
		species[name] = true
	}

	species[cleaning.Defaults.Species] = true

	return &Validator{
		required:       cleaning.RequiredFields,
		species:        species,
		speciesMissing: cleaning.Defaults.Species,
		timePattern:    timePattern,
		fileRefPattern: fileRefPattern,
		strict:         rules.Strict,
	}, nil
}

// Validate checks the table and returns all violations found. In strict
// mode a non-empty violation list is also an error.
func (v *Validator) Validate(tbl *table.Table) ([]Violation, error) {
	var violations []Violation

	// The low-frequency filter runs after the null-row filter, so required
	// fields can legitimately hold reintroduced nulls. They are reported
	// here, not repaired.
	for _, name := range v.required {
		col := tbl.Column(name)
		if col == nil {
			violations = append(violations, Violation{Column: name, Row: -1, Reason: "required column missing"})

			continue
		}

		for i, cell := range col.Cells {
			if cell.Null {
				violations = append(violations, Violation{Column: name, Row: i, Reason: "missing value in required field"})
			}
		}
	}

	violations = append(violations, v.checkFatal(tbl)...)
	violations = append(violations, v.checkTime(tbl)...)
	violations = append(violations, v.checkSpecies(tbl)...)
	violations = append(violations, v.checkFileRef(tbl)...)

	if v.strict && len(violations) > 0 {
		return violations, fmt.Errorf("%w: %d violations", ErrValidationFailed, len(violations))
	}

	return violations, nil
}

// checkFatal accepts the closed enum plus passthrough codes, which the
// normalizer leaves trimmed and upper-cased.
func (v *Validator) checkFatal(tbl *table.Table) []Violation {
	col := tbl.Column("fatal")
	if col == nil {
		return []Violation{{Column: "fatal", Row: -1, Reason: "column missing"}}
	}

	var violations []Violation

	for i, cell := range col.Cells {
		if cell.Null {
			continue
		}

		if fatalValues[cell.Value] {
			continue
		}

		if cell.Value != strings.ToUpper(strings.TrimSpace(cell.Value)) {
			violations = append(violations, Violation{
				Column: "fatal",
				Row:    i,
				Reason: fmt.Sprintf("unnormalized fatality code %q", cell.Value),
			})
		}
	}

	return violations
}

func (v *Validator) checkTime(tbl *table.Table) []Violation {
	col := tbl.Column("time")
	if col == nil {
		return []Violation{{Column: "time", Row: -1, Reason: "column missing"}}
	}

	var violations []Violation

	for i, cell := range col.Cells {
		if cell.Null {
			violations = append(violations, Violation{Column: "time", Row: i, Reason: "time must never be missing"})

			continue
		}

		if !v.timePattern.MatchString(cell.Value) {
			violations = append(violations, Violation{
				Column: "time",
				Row:    i,
				Reason: fmt.Sprintf("%q is not a valid HH:MM", cell.Value),
			})
		}
	}

	return violations
}

func (v *Validator) checkSpecies(tbl *table.Table) []Violation {
	col := tbl.Column("species")
	if col == nil {
		return []Violation{{Column: "species", Row: -1, Reason: "column missing"}}
	}

	var violations []Violation

	for i, cell := range col.Cells {
		if cell.Null {
			violations = append(violations, Violation{Column: "species", Row: i, Reason: "species must never be missing"})

			continue
		}

		if !v.species[cell.Value] {
			violations = append(violations, Violation{
				Column: "species",
				Row:    i,
				Reason: fmt.Sprintf("%q is not in the vocabulary", cell.Value),
			})
		}
	}

	return violations
}

func (v *Validator) checkFileRef(tbl *table.Table) []Violation {
	col := tbl.Column("pdf")
	if col == nil {
		return []Violation{{Column: "pdf", Row: -1, Reason: "column missing"}}
	}

	var violations []Violation

	for i, cell := range col.Cells {
		if cell.Null {
			violations = append(violations, Violation{Column: "pdf", Row: i, Reason: "file reference must never be missing"})

			continue
		}

		if !v.fileRefPattern.MatchString(cell.Value) {
			violations = append(violations, Violation{
				Column: "pdf",
				Row:    i,
				Reason: fmt.Sprintf("%q contains disallowed characters", cell.Value),
			})
		}
	}

	return violations
}
