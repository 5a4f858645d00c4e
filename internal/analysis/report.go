package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"sanistat/internal/config"
	"sanistat/internal/dataset"
	"sanistat/internal/errors"
	"sanistat/internal/exporter"
	"sanistat/internal/regress"
	"sanistat/pkg/contracts"
	"sanistat/pkg/contracts/domain"
)

// Reporter turns a pipeline Result into the run artifacts: the joined panel
// CSV, one simulated R-squared CSV per transform, summary.json, and the
// plain-text summary drivers print.
type Reporter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewReporter creates a reporter writing into the configured paths.
func NewReporter(paths *config.Paths, logger *slog.Logger) (*Reporter, error) {
	if paths == nil {
		return nil, fmt.Errorf("reporter requires resolved paths")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Reporter{
		paths:  paths,
		logger: logger,
	}, nil
}

// BuildReport projects a successful Result into the JSON report contract.
func BuildReport(result *Result, cfg *config.Config) *domain.AnalysisReport {
	return &domain.AnalysisReport{
		RunID:       result.RunID,
		Format:      contracts.ReportFormatVersion,
		GeneratedAt: result.GeneratedAt,

		StartYear: cfg.Analysis.StartYear,
		EndYear:   cfg.Analysis.EndYear,

		Income:     reshapeSummary(result.IncomeStats),
		Sanitation: reshapeSummary(result.SanitationStats),

		JoinedRecords: len(result.Joined),

		RawModel: modelSummary(result.RawModel),
		LogModel: modelSummary(result.LogModel),

		RawSimulation: simulationSummary(result.RawBatch),
		LogSimulation: simulationSummary(result.LogBatch),

		Stages: result.Stages,
	}
}

// Persist writes every run artifact. Storage failures wrap as storage errors
// so drivers can report the failing artifact.
func (r *Reporter) Persist(ctx context.Context, result *Result, cfg *config.Config) error {
	if err := r.paths.EnsureDirectories(); err != nil {
		return errors.NewStorageError("failed to prepare output directories", err)
	}

	panelExporter := exporter.NewPanelExporter(r.paths)
	if err := panelExporter.ExportJoinedPanel(result.Joined, r.paths.JoinedCSV); err != nil {
		return errors.NewStorageError("failed to write joined panel", err)
	}

	simExporter := exporter.NewSimulationExporter(r.paths)
	if err := simExporter.ExportBatch(result.RawBatch, r.paths.RawSimulationCSV); err != nil {
		return errors.NewStorageError("failed to write raw simulation batch", err)
	}
	if err := simExporter.ExportBatch(result.LogBatch, r.paths.LogSimulationCSV); err != nil {
		return errors.NewStorageError("failed to write log2 simulation batch", err)
	}

	report := BuildReport(result, cfg)
	if err := r.writeJSON(report, r.paths.SummaryJSON); err != nil {
		return errors.NewStorageError("failed to write summary.json", err)
	}

	r.logger.InfoContext(ctx, "run artifacts written",
		"joined_csv", r.paths.JoinedCSV,
		"raw_simulation_csv", r.paths.RawSimulationCSV,
		"log_simulation_csv", r.paths.LogSimulationCSV,
		"summary_json", r.paths.SummaryJSON,
	)

	return nil
}

// writeJSON writes the report contract with stable indentation.
func (r *Reporter) writeJSON(report *domain.AnalysisReport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// PrintSummary renders the aligned plain-text run summary.
func PrintSummary(w io.Writer, result *Result, cfg *config.Config) {
	fmt.Fprintf(w, "\n%s\n", contracts.GetVersionString())
	fmt.Fprintf(w, "Run %s\n\n", result.RunID)

	fmt.Fprintf(w, "Analysis window:    %d-%d\n", cfg.Analysis.StartYear, cfg.Analysis.EndYear)
	fmt.Fprintf(w, "Joined records:     %d\n\n", len(result.Joined))

	printReshape(w, "Income", result.IncomeStats)
	printReshape(w, "Sanitation", result.SanitationStats)

	printModel(w, "Raw income model", result.RawModel, result.RawBatch)
	printModel(w, "Log2 income model", result.LogModel, result.LogBatch)
}

func printReshape(w io.Writer, label string, stats *dataset.ReshapeStats) {
	if stats == nil {
		return
	}
	fmt.Fprintf(w, "%-12s rows: %d source, %d complete, %d dropped", label, stats.SourceRows, stats.CompleteRows, stats.DroppedRows)
	if stats.SuspectTokens > 0 {
		fmt.Fprintf(w, " (%d suspect k-tokens)", stats.SuspectTokens)
	}
	fmt.Fprintln(w)
}

func printModel(w io.Writer, label string, model *regress.FittedModel, batch *regress.SimulationBatch) {
	if model == nil {
		return
	}

	fmt.Fprintf(w, "\n%s\n", label)
	fmt.Fprintf(w, "  %s\n", model.Equation())
	fmt.Fprintf(w, "  R-squared:          %.4f\n", model.RSquared)
	fmt.Fprintf(w, "  Residual std error: %.4f\n", model.ResidualStdError)
	fmt.Fprintf(w, "  Observations:       %d\n", model.N)

	if batch != nil {
		summary := batch.Summary()
		fmt.Fprintf(w, "  Simulated R-squared (%d rounds, seed %d):\n", batch.Rounds, batch.Seed)
		fmt.Fprintf(w, "    mean %.4f  sd %.4f  min %.4f  max %.4f  p5 %.4f  p95 %.4f\n",
			summary.Mean, summary.StdDev, summary.Min, summary.Max,
			summary.Percentile5, summary.Percentile95)
	}
}

func reshapeSummary(stats *dataset.ReshapeStats) domain.ReshapeSummary {
	if stats == nil {
		return domain.ReshapeSummary{}
	}
	return domain.ReshapeSummary{
		SourceRows:    stats.SourceRows,
		CompleteRows:  stats.CompleteRows,
		DroppedRows:   stats.DroppedRows,
		Records:       stats.Records,
		SuspectTokens: stats.SuspectTokens,
	}
}

func modelSummary(model *regress.FittedModel) domain.ModelSummary {
	if model == nil {
		return domain.ModelSummary{}
	}
	return domain.ModelSummary{
		Transform:        model.Transform.String(),
		Intercept:        model.Intercept,
		Slope:            model.Slope,
		ResidualStdError: model.ResidualStdError,
		RSquared:         model.RSquared,
		Observations:     model.N,
		Equation:         model.Equation(),
	}
}

func simulationSummary(batch *regress.SimulationBatch) domain.SimulationSummary {
	if batch == nil {
		return domain.SimulationSummary{}
	}
	summary := batch.Summary()
	return domain.SimulationSummary{
		Rounds:       batch.Rounds,
		Seed:         batch.Seed,
		MeanRSquared: summary.Mean,
		StdDev:       summary.StdDev,
		Min:          summary.Min,
		Max:          summary.Max,
		Percentile5:  summary.Percentile5,
		Percentile95: summary.Percentile95,
	}
}
