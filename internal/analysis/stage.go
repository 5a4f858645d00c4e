package analysis

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"sanistat/internal/infrastructure"
	"sanistat/pkg/contracts/domain"
)

// Stage names, in execution order. The first failing stage is what the
// driver reports before halting.
const (
	StageLoadIncome        = "load_income"
	StageLoadSanitation    = "load_sanitation"
	StageReshapeIncome     = "reshape_income"
	StageReshapeSanitation = "reshape_sanitation"
	StageJoin              = "join"
	StageFitRaw            = "fit_raw"
	StageSimulateRaw       = "simulate_raw"
	StageFitLog            = "fit_log2"
	StageSimulateLog       = "simulate_log2"
)

// stageTracker collects per-stage outcomes across one pipeline run.
type stageTracker struct {
	tracer  trace.Tracer
	results []domain.StageResult
}

func newStageTracker(tracer trace.Tracer) *stageTracker {
	return &stageTracker{tracer: tracer}
}

// run executes one named stage inside its own span and records its outcome.
// A failing stage marks every stage after it as skipped via abort.
func (t *stageTracker) run(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := t.tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	result := domain.StageResult{
		Name:     name,
		Status:   domain.StageStatusCompleted,
		Duration: duration,
	}
	if err != nil {
		result.Status = domain.StageStatusFailed
		result.Error = err.Error()
		infrastructure.RecordError(ctx, err)
	}
	t.results = append(t.results, result)

	return err
}

// abort marks the given stages as skipped; called when an earlier stage fails
// so the report still lists the full run shape.
func (t *stageTracker) abort(names ...string) {
	for _, name := range names {
		t.results = append(t.results, domain.StageResult{
			Name:   name,
			Status: domain.StageStatusSkipped,
		})
	}
}
