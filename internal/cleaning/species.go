package cleaning

import (
	"fmt"
	"sort"
	"strings"

	"sharkclean/internal/table"
)

// SpeciesStep replaces raw species descriptions with canonical names from
// the supplied vocabulary. Matching is case-insensitive substring
// containment; the vocabulary is ordered longest name first (ties broken
// alphabetically) so the most specific species wins deterministically.
// Missing values and non-matches become the configured default.
type SpeciesStep struct {
	vocabulary []speciesEntry
	missing    string
}

type speciesEntry struct {
	canonical string
	lowered   string
}

// NewSpeciesStep creates the species normalizer from the caller-supplied
// vocabulary.
func NewSpeciesStep(species []string, missing string) *SpeciesStep {
	vocab := make([]speciesEntry, len(species))
	for i, name := range species {
		vocab[i] = speciesEntry{canonical: name, lowered: strings.ToLower(name)}
	}

	sort.Slice(vocab, func(i, j int) bool {
		if len(vocab[i].lowered) != len(vocab[j].lowered) {
			return len(vocab[i].lowered) > len(vocab[j].lowered)
		}

		return vocab[i].lowered < vocab[j].lowered
	})

	return &SpeciesStep{vocabulary: vocab, missing: missing}
}

// Name returns the step name.
func (s *SpeciesStep) Name() string {
	return "normalize_species"
}

// Apply rewrites the species column in place.
func (s *SpeciesStep) Apply(tbl *table.Table) (*table.Table, error) {
	col := tbl.Column("species")
	if col == nil {
		return nil, fmt.Errorf("%w: species", ErrMissingColumn)
	}

	for i, cell := range col.Cells {
		if cell.Null {
			col.Cells[i] = table.StringCell(s.missing)

			continue
		}

		col.Cells[i] = table.StringCell(s.match(cell.Value))
	}

	col.Kind = table.KindCategorical

	return tbl, nil
}

func (s *SpeciesStep) match(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))

	for _, entry := range s.vocabulary {
		if strings.Contains(v, entry.lowered) {
			return entry.canonical
		}
	}

	return s.missing
}
