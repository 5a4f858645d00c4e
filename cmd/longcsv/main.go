// Command longcsv converts one wide indicator table into long form and writes
// it as CSV, applying the same completeness filter and cell parsing the full
// pipeline uses. Append mode lets repeated invocations build one combined
// long table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sanistat/internal/config"
	"sanistat/internal/dataset"
	"sanistat/internal/exporter"
	"sanistat/internal/infrastructure"
	"sanistat/internal/validation"
	"sanistat/pkg/contracts/domain"
)

type options struct {
	inputPath  string
	sheet      string
	indicator  string
	outputPath string
	startYear  int
	endYear    int
	appendMode bool
}

func main() {
	var opts options
	flag.StringVar(&opts.inputPath, "in", "", "wide input table (.csv or .xlsx)")
	flag.StringVar(&opts.sheet, "sheet", "", "XLSX sheet name (defaults to the first sheet)")
	flag.StringVar(&opts.indicator, "indicator", "", "indicator of the input table: income | sanitation")
	flag.StringVar(&opts.outputPath, "out", "", "output CSV path (defaults to <indicator>_long.csv next to the input)")
	flag.IntVar(&opts.startYear, "start", dataset.DefaultStartYear, "first year of the window")
	flag.IntVar(&opts.endYear, "end", dataset.DefaultEndYear, "last year of the window")
	flag.BoolVar(&opts.appendMode, "append", false, "append records to an existing CSV instead of rewriting it")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		slog.Error("Conversion failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.inputPath == "" {
		return fmt.Errorf("-in is required")
	}

	indicator, err := domain.ParseIndicator(opts.indicator)
	if err != nil {
		return err
	}

	logger := infrastructure.MustInitializeLogger(config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "stdout",
	})

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputTable(opts.inputPath); err != nil {
		return err
	}

	wide, err := dataset.LoadWideTable(opts.inputPath, opts.sheet, indicator)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.inputPath, err)
	}

	yearRange := dataset.YearRange{Start: opts.startYear, End: opts.endYear}
	reshaper, err := dataset.NewReshaper(yearRange, indicator == domain.IndicatorIncome, logger)
	if err != nil {
		return err
	}

	long, stats, err := reshaper.Reshape(ctx, wide)
	if err != nil {
		return err
	}

	outputPath := opts.outputPath
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(opts.inputPath), fmt.Sprintf("%s_long.csv", indicator))
	}
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	paths := &config.Paths{
		BaseDir:    filepath.Dir(outputPath),
		ReportsDir: filepath.Dir(outputPath),
	}
	panelExporter := exporter.NewPanelExporter(paths)
	if err := panelExporter.ExportLongTable(long.Records, outputPath, opts.appendMode); err != nil {
		return err
	}

	logger.InfoContext(ctx, "long table written",
		"output", outputPath,
		"indicator", string(indicator),
		"records", stats.Records,
		"dropped_rows", stats.DroppedRows,
		"suspect_tokens", stats.SuspectTokens,
	)
	fmt.Printf("Wrote %d records (%d of %d rows complete) to %s\n",
		stats.Records, stats.CompleteRows, stats.SourceRows, outputPath)

	return nil
}
