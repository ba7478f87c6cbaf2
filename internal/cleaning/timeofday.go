package cleaning

import (
	"fmt"
	"strings"
	"time"

	"sharkclean/internal/table"
)

// timeKeywords maps descriptive time-of-day words to representative clock
// times, checked in this order before any structured parse is attempted.
// "afternoon" is checked before "noon": it contains "noon" as a substring,
// so the shorter keyword would otherwise shadow it.
var timeKeywords = []struct {
	words  []string
	result string
}{
	{[]string{"early", "dawn", "before"}, "06:00"},
	{[]string{"morning"}, "09:00"},
	{[]string{"afternoon"}, "15:00"},
	{[]string{"midday", "noon"}, "12:00"},
	{[]string{"evening", "dusk", "sunset"}, "18:00"},
	{[]string{"night", "midnight"}, "23:00"},
}

// TimeStep rewrites the time column to well-formed 24-hour HH:MM strings.
// Free-text descriptions map through keywords, everything else goes through
// the structured parse, and any failure degrades to the default value, so
// the column is never missing afterwards.
type TimeStep struct {
	fallback string
}

// NewTimeStep creates the time normalizer. fallback is the value used for
// missing or unparseable input.
func NewTimeStep(fallback string) *TimeStep {
	return &TimeStep{fallback: fallback}
}

// Name returns the step name.
func (s *TimeStep) Name() string {
	return "standardize_time"
}

// Apply rewrites every cell of the time column.
func (s *TimeStep) Apply(tbl *table.Table) (*table.Table, error) {
	col := tbl.Column("time")
	if col == nil {
		return nil, fmt.Errorf("%w: time", ErrMissingColumn)
	}

	for i, cell := range col.Cells {
		if cell.Null {
			col.Cells[i] = table.StringCell(s.fallback)

			continue
		}

		col.Cells[i] = table.StringCell(s.standardize(cell.Value))
	}

	col.Kind = table.KindText

	return tbl, nil
}

func (s *TimeStep) standardize(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))

	for _, kw := range timeKeywords {
		for _, w := range kw.words {
			if strings.Contains(v, w) {
				return kw.result
			}
		}
	}

	// Structured parse: "14h30" style becomes "14:30", spaces collapse, and
	// meridiem/stray characters are stripped before any numeric
	// interpretation, so "2:15 pm" reads as clock digits with the meridiem
	// discarded.
	v = strings.ReplaceAll(v, "h", ":")
	v = strings.ReplaceAll(v, " ", "")

	for _, junk := range []string{"j", `"`, "pm", "am"} {
		v = strings.ReplaceAll(v, junk, "")
	}

	// A range keeps its first segment.
	if before, _, found := strings.Cut(v, "-"); found {
		v = before
	}

	if strings.Contains(v, ":") {
		t, err := time.Parse("15:04", v)
		if err != nil {
			return s.fallback
		}

		return t.Format("15:04")
	}

	switch len(v) {
	case 4:
		return s.clock(v[:2], v[2:])
	case 3:
		return s.clock("0"+v[:1], v[1:])
	default:
		return s.fallback
	}
}

// clock validates an HHMM split and formats it, falling back on any
// non-digit or out-of-range component.
func (s *TimeStep) clock(hh, mm string) string {
	t, err := time.Parse("15:04", hh+":"+mm)
	if err != nil {
		return s.fallback
	}

	return t.Format("15:04")
}
