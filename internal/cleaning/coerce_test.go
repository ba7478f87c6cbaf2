package cleaning

import (
	"testing"

	"sharkclean/internal/table"
)

func TestCoerceFloatsStep(t *testing.T) {
	tbl := newTable(t,
		col("year", "1958.0", "", "2017.5"),
		col("name", "Alice", "Bob", "Carol"),
		col("age", "30", "41", "22"),
	)

	out, err := NewCoerceFloatsStep(0).Apply(tbl)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Floats truncate, nulls fill with zero.
	assertValues(t, out.Column("year"), []string{"1958", "0", "2017"})

	if got := out.Column("year").Kind; got != table.KindInt {
		t.Errorf("year kind = %v, want int", got)
	}

	// Non-float columns untouched.
	assertValues(t, out.Column("name"), []string{"Alice", "Bob", "Carol"})
	assertValues(t, out.Column("age"), []string{"30", "41", "22"})
}

func TestCoerceFloatsStep_CustomFill(t *testing.T) {
	tbl := newTable(t, col("weight", "70.5", ""))

	out, err := NewCoerceFloatsStep(-1).Apply(tbl)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	assertValues(t, out.Column("weight"), []string{"70", "-1"})
}
