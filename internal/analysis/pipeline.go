package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"sanistat/internal/config"
	"sanistat/internal/dataset"
	"sanistat/internal/infrastructure"
	"sanistat/internal/regress"
	"sanistat/pkg/contracts/domain"
)

// Pipeline runs the full analysis: load both wide tables, reshape, join, fit
// the raw and log2 models, and validate each with posterior-predictive
// simulation. Stages run strictly in sequence; the first failure aborts the
// run and names the stage.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	tracer trace.Tracer
}

// Result carries everything one run produced. On failure it still holds the
// stage results collected so far, so reports can show where the run stopped.
type Result struct {
	RunID       string
	GeneratedAt time.Time

	IncomeStats     *dataset.ReshapeStats
	SanitationStats *dataset.ReshapeStats

	Joined []domain.JoinedRecord

	RawModel *regress.FittedModel
	LogModel *regress.FittedModel

	RawBatch *regress.SimulationBatch
	LogBatch *regress.SimulationBatch

	Stages []domain.StageResult
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline requires configuration")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		tracer: tracer,
	}, nil
}

// Run executes every stage in order. The returned error names the failing
// stage; the Result is always non-nil and lists completed, failed, and
// skipped stages.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	ctx, span := p.tracer.Start(ctx, "analysis_run")
	defer span.End()

	result := &Result{
		RunID:       infrastructure.GetRunID(ctx),
		GeneratedAt: time.Now().UTC(),
	}

	yearRange := dataset.YearRange{
		Start: p.cfg.Analysis.StartYear,
		End:   p.cfg.Analysis.EndYear,
	}

	p.logger.InfoContext(ctx, "starting analysis run",
		"run_id", result.RunID,
		"window", yearRange.String(),
		"rounds", p.cfg.Simulation.Rounds,
		"seed", p.cfg.Simulation.Seed,
	)

	var (
		incomeWide     *dataset.WideTable
		sanitationWide *dataset.WideTable
		incomeLong     *dataset.LongTable
		sanitationLong *dataset.LongTable
	)

	simulator := regress.NewSimulator(
		p.cfg.Simulation.Rounds,
		p.cfg.Simulation.Seed,
		p.cfg.Simulation.Workers,
		p.logger,
	)

	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{StageLoadIncome, func(ctx context.Context) error {
			var err error
			incomeWide, err = dataset.LoadWideTable(
				p.cfg.Data.IncomePath, p.cfg.Data.IncomeSheet, domain.IndicatorIncome)
			return err
		}},
		{StageLoadSanitation, func(ctx context.Context) error {
			var err error
			sanitationWide, err = dataset.LoadWideTable(
				p.cfg.Data.SanitationPath, p.cfg.Data.SanitationSheet, domain.IndicatorSanitation)
			return err
		}},
		{StageReshapeIncome, func(ctx context.Context) error {
			reshaper, err := dataset.NewReshaper(yearRange, true, p.logger)
			if err != nil {
				return err
			}
			incomeLong, result.IncomeStats, err = reshaper.Reshape(ctx, incomeWide)
			return err
		}},
		{StageReshapeSanitation, func(ctx context.Context) error {
			reshaper, err := dataset.NewReshaper(yearRange, false, p.logger)
			if err != nil {
				return err
			}
			sanitationLong, result.SanitationStats, err = reshaper.Reshape(ctx, sanitationWide)
			return err
		}},
		{StageJoin, func(ctx context.Context) error {
			var err error
			result.Joined, err = dataset.Join(ctx, sanitationLong, incomeLong, p.logger)
			return err
		}},
		{StageFitRaw, func(ctx context.Context) error {
			var err error
			result.RawModel, err = p.fit(ctx, result.Joined, regress.TransformIdentity)
			return err
		}},
		{StageSimulateRaw, func(ctx context.Context) error {
			var err error
			result.RawBatch, err = simulator.Run(ctx, result.RawModel)
			return err
		}},
		{StageFitLog, func(ctx context.Context) error {
			var err error
			result.LogModel, err = p.fit(ctx, result.Joined, regress.TransformLog2)
			return err
		}},
		{StageSimulateLog, func(ctx context.Context) error {
			var err error
			result.LogBatch, err = simulator.Run(ctx, result.LogModel)
			return err
		}},
	}

	tracker := newStageTracker(p.tracer)
	for i, stage := range stages {
		if err := tracker.run(ctx, stage.name, stage.fn); err != nil {
			for _, remaining := range stages[i+1:] {
				tracker.abort(remaining.name)
			}
			result.Stages = tracker.results
			p.logger.ErrorContext(ctx, "analysis run failed",
				"run_id", result.RunID,
				"stage", stage.name,
				"error", err,
			)
			return result, fmt.Errorf("stage %s: %w", stage.name, err)
		}
	}
	result.Stages = tracker.results

	p.logger.InfoContext(ctx, "analysis run complete",
		"run_id", result.RunID,
		"joined_records", len(result.Joined),
		"raw_r_squared", result.RawModel.RSquared,
		"log_r_squared", result.LogModel.RSquared,
	)

	return result, nil
}

// fit runs one OLS pass over the joined panel. Raw and log2 models are
// distinct values; neither pass overwrites the other.
func (p *Pipeline) fit(ctx context.Context, joined []domain.JoinedRecord, t regress.Transform) (*regress.FittedModel, error) {
	x := make([]float64, len(joined))
	y := make([]float64, len(joined))
	for i, rec := range joined {
		x[i] = rec.Income
		y[i] = rec.Sanitation
	}

	model, err := regress.Fit(x, y, t)
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "model fitted",
		"transform", t.String(),
		"intercept", model.Intercept,
		"slope", model.Slope,
		"r_squared", model.RSquared,
		"residual_std_error", model.ResidualStdError,
		"observations", model.N,
		"excluded", model.Excluded,
	)

	return model, nil
}
