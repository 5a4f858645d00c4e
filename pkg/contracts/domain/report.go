package domain

import (
	"time"
)

// AnalysisReport is the JSON contract for one pipeline run. It is what the
// summary.json artifact contains and what presentation collaborators consume;
// computational types stay internal and are projected into this shape.
type AnalysisReport struct {
	RunID       string    `json:"run_id" validate:"required,uuid"`
	Format      string    `json:"format" validate:"required"`
	GeneratedAt time.Time `json:"generated_at"`

	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	Income     ReshapeSummary `json:"income"`
	Sanitation ReshapeSummary `json:"sanitation"`

	JoinedRecords int `json:"joined_records"`

	RawModel ModelSummary `json:"raw_model"`
	LogModel ModelSummary `json:"log_model"`

	RawSimulation SimulationSummary `json:"raw_simulation"`
	LogSimulation SimulationSummary `json:"log_simulation"`

	Stages []StageResult `json:"stages"`
}

// ReshapeSummary reports how much of a wide input survived cleaning. Dropped
// rows are not errors, but they change the analysis sample size and must stay
// visible in every report.
type ReshapeSummary struct {
	SourceRows    int `json:"source_rows"`
	CompleteRows  int `json:"complete_rows"`
	DroppedRows   int `json:"dropped_rows"`
	Records       int `json:"records"`
	SuspectTokens int `json:"suspect_tokens,omitempty"`
}

// ModelSummary carries the reportable coefficients of one fitted regression.
type ModelSummary struct {
	Transform        string  `json:"transform" validate:"required,oneof=identity log2"`
	Intercept        float64 `json:"intercept"`
	Slope            float64 `json:"slope"`
	ResidualStdError float64 `json:"residual_std_error"`
	RSquared         float64 `json:"r_squared"`
	Observations     int     `json:"observations"`
	Equation         string  `json:"equation,omitempty"`
}

// SimulationSummary condenses a posterior-predictive batch into the
// statistics reports actually show.
type SimulationSummary struct {
	Rounds       int     `json:"rounds" validate:"gte=1"`
	Seed         uint64  `json:"seed"`
	MeanRSquared float64 `json:"mean_r_squared"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile5  float64 `json:"p5"`
	Percentile95 float64 `json:"p95"`
}

// StageStatus represents the outcome of a single pipeline stage.
type StageStatus string

const (
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageResult records what happened to one named pipeline stage.
type StageResult struct {
	Name     string        `json:"name"`
	Status   StageStatus   `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}
