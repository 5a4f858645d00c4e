package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanistat/internal/config"
	"sanistat/internal/dataset"
	"sanistat/internal/regress"
	"sanistat/pkg/contracts"
	"sanistat/pkg/contracts/domain"
)

func TestBuildReport(t *testing.T) {
	result := sampleResult(t)
	cfg := config.Default()

	report := BuildReport(result, cfg)

	assert.Equal(t, result.RunID, report.RunID)
	assert.Equal(t, contracts.ReportFormatVersion, report.Format)
	assert.Equal(t, 1999, report.StartYear)
	assert.Equal(t, 2019, report.EndYear)
	assert.Equal(t, len(result.Joined), report.JoinedRecords)

	assert.Equal(t, "identity", report.RawModel.Transform)
	assert.Equal(t, "log2", report.LogModel.Transform)
	assert.InDelta(t, result.RawModel.RSquared, report.RawModel.RSquared, 1e-12)
	assert.Contains(t, report.LogModel.Equation, "log2(income)")

	assert.Equal(t, result.RawBatch.Rounds, report.RawSimulation.Rounds)
	assert.Equal(t, result.RawBatch.Seed, report.RawSimulation.Seed)
	assert.Greater(t, report.RawSimulation.MeanRSquared, 0.0)

	assert.Equal(t, 3, report.Income.DroppedRows)
	assert.Equal(t, 1, report.Income.SuspectTokens)
	assert.Len(t, report.Stages, len(result.Stages))
}

func TestReporterPersistWritesAllArtifacts(t *testing.T) {
	result := sampleResult(t)
	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()

	paths, err := config.ResolvePaths(cfg.Paths)
	require.NoError(t, err)

	reporter, err := NewReporter(paths, nil)
	require.NoError(t, err)
	require.NoError(t, reporter.Persist(context.Background(), result, cfg))

	for _, artifact := range []string{
		paths.JoinedCSV,
		paths.RawSimulationCSV,
		paths.LogSimulationCSV,
		paths.SummaryJSON,
	} {
		_, err := os.Stat(artifact)
		assert.NoError(t, err, artifact)
	}

	// summary.json round-trips through the contract
	data, err := os.ReadFile(paths.SummaryJSON)
	require.NoError(t, err)

	var report domain.AnalysisReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, result.RunID, report.RunID)
	assert.Equal(t, len(result.Joined), report.JoinedRecords)
}

func TestReporterRequiresPaths(t *testing.T) {
	_, err := NewReporter(nil, nil)
	require.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	result := sampleResult(t)
	cfg := config.Default()

	var buf bytes.Buffer
	PrintSummary(&buf, result, cfg)

	out := buf.String()
	assert.Contains(t, out, result.RunID)
	assert.Contains(t, out, "1999-2019")
	assert.Contains(t, out, "Raw income model")
	assert.Contains(t, out, "Log2 income model")
	assert.Contains(t, out, "log2(income)")
	assert.Contains(t, out, "Simulated R-squared")
	assert.Contains(t, out, "suspect k-tokens")
}

// sampleResult builds a small but complete successful run result.
func sampleResult(t *testing.T) *Result {
	t.Helper()

	joined := []domain.JoinedRecord{
		{Country: "Albania", Year: 1999, Sanitation: 81, Income: 4000},
		{Country: "Albania", Year: 2000, Sanitation: 82, Income: 4100},
		{Country: "Benin", Year: 1999, Sanitation: 11, Income: 850},
		{Country: "Benin", Year: 2000, Sanitation: 12, Income: 900},
		{Country: "Chile", Year: 1999, Sanitation: 91, Income: 9000},
		{Country: "Chile", Year: 2000, Sanitation: 92, Income: 9300},
	}

	x := make([]float64, len(joined))
	y := make([]float64, len(joined))
	for i, rec := range joined {
		x[i] = rec.Income
		y[i] = rec.Sanitation
	}

	rawModel, err := regress.Fit(x, y, regress.TransformIdentity)
	require.NoError(t, err)
	logModel, err := regress.Fit(x, y, regress.TransformLog2)
	require.NoError(t, err)

	sim := regress.NewSimulator(20, 42, 2, nil)
	rawBatch, err := sim.Run(context.Background(), rawModel)
	require.NoError(t, err)
	logBatch, err := sim.Run(context.Background(), logModel)
	require.NoError(t, err)

	return &Result{
		RunID:       "8f2b7c9a-1f7d-4f2a-9a1e-2d3c4b5a6978",
		GeneratedAt: time.Now().UTC(),
		IncomeStats: &dataset.ReshapeStats{
			Indicator:     domain.IndicatorIncome,
			SourceRows:    9,
			CompleteRows:  6,
			DroppedRows:   3,
			Records:       6,
			SuspectTokens: 1,
		},
		SanitationStats: &dataset.ReshapeStats{
			Indicator:    domain.IndicatorSanitation,
			SourceRows:   6,
			CompleteRows: 6,
			Records:      6,
		},
		Joined:   joined,
		RawModel: rawModel,
		LogModel: logModel,
		RawBatch: rawBatch,
		LogBatch: logBatch,
		Stages: []domain.StageResult{
			{Name: StageLoadIncome, Status: domain.StageStatusCompleted},
			{Name: StageJoin, Status: domain.StageStatusCompleted},
		},
	}
}
