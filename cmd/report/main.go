// Package main provides the report command that renders and signs a
// markdown summary of a cleaned dataset, or verifies an existing report.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"sharkclean/internal/report"
	"sharkclean/internal/table"
	"sharkclean/pkg/metadata"
)

func main() {
	inputPath := flag.String("input", "", "Path to cleaned CSV file")
	outputPath := flag.String("output", "", "Path to markdown report")
	verifyPath := flag.String("verify", "", "Verify an existing report instead of generating one")
	sampleLimit := flag.Int("sample", 10, "Number of sample rows to include")
	flag.Parse()

	if *verifyPath != "" {
		verify(*verifyPath)

		return
	}

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Usage: report -input <cleaned.csv> -output <report.md>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(1)
	}

	tbl, err := table.ReadCSV(bytes.NewReader(raw), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse input: %v\n", err)
		os.Exit(1)
	}

	content := report.Render(tbl, report.Summary{
		Source:      *inputPath,
		RawRows:     tbl.NumRows(),
		CleanRows:   tbl.NumRows(),
		Columns:     tbl.ColumnNames(),
		SampleLimit: *sampleLimit,
	})

	signed := metadata.Sign(content, *inputPath, tbl.NumRows())

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, []byte(signed), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Report saved to: %s (%d rows)\n", *outputPath, tbl.NumRows())
}

func verify(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read report: %v\n", err)
		os.Exit(1)
	}

	ok, err := metadata.Verify(string(content))
	if err != nil || !ok {
		fmt.Fprintf(os.Stderr, "❌ Verification failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Report metadata verified")
}
