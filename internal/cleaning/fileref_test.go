package cleaning

import (
	"testing"
)

func TestFileRefStep(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation stripped", "12_3.Report!.pdf", "12_3.Report.pdf"},
		{"kept characters", "GSAF-1958.04.12.pdf", "GSAF-1958.04.12.pdf"},
		{"spaces removed", " case 42.pdf ", "case42.pdf"},
		{"all junk becomes default", "???", "Unknown"},
	}

	step := NewFileRefStep("Unknown")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newTable(t, col("pdf", tt.in))

			out, err := step.Apply(tbl)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			if got := out.Column("pdf").Cells[0].Value; got != tt.want {
				t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileRefStep_MissingBecomesDefault(t *testing.T) {
	tbl := newTable(t, col("pdf", ""))

	out, err := NewFileRefStep("Unknown").Apply(tbl)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	assertValues(t, out.Column("pdf"), []string{"Unknown"})
}

func TestFileRefStep_Idempotent(t *testing.T) {
	tbl := newTable(t, col("pdf", "12_3.Report!.pdf", "", "Unknown"))

	step := NewFileRefStep("Unknown")

	out, err := step.Apply(tbl)
	if err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}

	first := values(out.Column("pdf"))

	out, err = step.Apply(out)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}

	assertValues(t, out.Column("pdf"), first)
}
