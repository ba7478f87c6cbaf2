package cleaning

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"sharkclean/internal/table"
)

// TextStep normalizes every text and categorical column: trims surrounding
// whitespace, title-cases words, and strips the configured punctuation
// characters. It applies uniformly; there is no per-column exception list.
type TextStep struct {
	punctuation map[rune]bool
}

// NewTextStep creates the text normalizer. punctuation is the fixed set of
// characters to remove.
func NewTextStep(punctuation string) *TextStep {
	set := make(map[rune]bool, len(punctuation))
	for _, r := range punctuation {
		set[r] = true
	}

	return &TextStep{punctuation: set}
}

// Name returns the step name.
func (s *TextStep) Name() string {
	return "normalize_text"
}

// Apply rewrites the cells of every text-kind column in place.
func (s *TextStep) Apply(tbl *table.Table) (*table.Table, error) {
	for _, col := range tbl.Columns() {
		if col.Kind != table.KindText && col.Kind != table.KindCategorical {
			continue
		}

		for i, cell := range col.Cells {
			if cell.Null {
				continue
			}

			col.Cells[i] = table.StringCell(s.normalize(cell.Value))
		}
	}

	return tbl, nil
}

func (s *TextStep) normalize(v string) string {
	v = TitleCase(strings.TrimSpace(v))

	return strings.Map(func(r rune) rune {
		if s.punctuation[r] {
			return -1
		}

		return r
	}, v)
}

// TitleCase upper-cases the first letter of each word and lower-cases the
// rest, using UAX#29 word segmentation so that whitespace and punctuation
// between words survive unchanged.
func TitleCase(v string) string {
	var b strings.Builder

	b.Grow(len(v))

	tokens := words.FromString(v)
	for tokens.Next() {
		first := true

		for _, r := range tokens.Value() {
			if first {
				b.WriteRune(unicode.ToUpper(r))

				first = false

				continue
			}

			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}
