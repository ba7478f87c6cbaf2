// Package main provides the cleaner command that fetches, cleans, validates,
// and exports the shark-attack dataset.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sharkclean/internal/cleaning"
	"sharkclean/internal/config"
	"sharkclean/internal/logger"
	"sharkclean/internal/source"
	"sharkclean/internal/table"
	"sharkclean/internal/validator"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to cleaner configuration")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	log.Info("🦈 Starting dataset cleaning run")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Source.Location()))
	log.Info(fmt.Sprintf("🎯 Output: %s", cfg.Output.Path))

	startTime := time.Now()

	// Phase 1: Fetch & Load
	log.Info("Phase 1: Loading dataset...")

	fetcher := source.NewFetcher(&cfg.Source.Retry)

	raw, err := fetcher.Fetch(&cfg.Source)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Fetch failed: %v", err))
		os.Exit(1)
	}

	tbl, err := table.ReadCSV(bytes.NewReader(raw), cfg.Cleaning.Categorical)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Load failed: %v", err))
		os.Exit(1)
	}

	rawRows := tbl.NumRows()

	log.Info(fmt.Sprintf("✅ Loaded %d rows, %d columns (%d bytes)", rawRows, tbl.NumCols(), len(raw)))

	// Phase 2: Clean
	log.Info("Phase 2: Cleaning...")

	cleanStart := time.Now()

	pipeline := cleaning.New(&cfg.Cleaning, log)

	tbl, err = pipeline.Run(tbl)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Cleaning failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Cleaned to %d rows, %d columns in %v", tbl.NumRows(), tbl.NumCols(), time.Since(cleanStart)))

	// Phase 3: Validate
	log.Info("Phase 3: Validating output...")

	check, err := validator.New(&cfg.Cleaning, &cfg.Validation)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Validator setup failed: %v", err))
		os.Exit(1)
	}

	violations, err := check.Validate(tbl)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Validation failed: %v", err))

		for _, v := range violations {
			log.Error(fmt.Sprintf("  - %s", v))
		}

		os.Exit(1)
	}

	if len(violations) > 0 {
		log.Warn(fmt.Sprintf("⚠️  %d validation findings (non-strict mode, continuing)", len(violations)))
	}

	// Phase 4: Export
	log.Info("Phase 4: Exporting...")

	if err := export(tbl, cfg); err != nil {
		log.Error(fmt.Sprintf("❌ Export failed: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Cleaning run complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Rows In: %d\n", rawRows)
	fmt.Printf("Rows Out: %d\n", tbl.NumRows())
	fmt.Printf("Columns Out: %d\n", tbl.NumCols())
	fmt.Printf("Validation Findings: %d\n", len(violations))
	fmt.Printf("Total Duration: %v\n", time.Since(startTime))
	fmt.Println("------------------------------------------------")
}

func export(tbl *table.Table, cfg *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Output.Path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if cfg.Output.Format == "json" {
		data, err := json.Marshal(tbl)
		if err != nil {
			return fmt.Errorf("failed to marshal table: %w", err)
		}

		if cfg.Output.PrettyPrint {
			var buf bytes.Buffer
			if err := json.Indent(&buf, data, "", "  "); err != nil {
				return fmt.Errorf("failed to indent JSON: %w", err)
			}

			data = buf.Bytes()
		}

		return os.WriteFile(cfg.Output.Path, data, 0644)
	}

	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	return tbl.WriteCSV(f)
}
