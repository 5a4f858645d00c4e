package regress

import (
	"fmt"
	"math"
)

// Transform names the predictor transformation applied before fitting.
type Transform string

const (
	// TransformIdentity fits sanitation against raw income
	TransformIdentity Transform = "identity"
	// TransformLog2 fits sanitation against log2(income)
	TransformLog2 Transform = "log2"
)

// IsValid checks that the transform is one of the known values.
func (t Transform) IsValid() bool {
	return t == TransformIdentity || t == TransformLog2
}

// String returns the transform name.
func (t Transform) String() string {
	return string(t)
}

// Apply transforms a single predictor value. log2 of a non-positive value
// yields -Inf or NaN; the fitter excludes such pairs and counts them.
func (t Transform) Apply(x float64) float64 {
	if t == TransformLog2 {
		return math.Log2(x)
	}
	return x
}

// FittedModel is the result of one ordinary least squares fit. It is
// immutable once returned; the simulator reads X, Fitted, and
// ResidualStdError but never writes back.
type FittedModel struct {
	Transform        Transform `json:"transform"`
	Intercept        float64   `json:"intercept"`
	Slope            float64   `json:"slope"`
	ResidualStdError float64   `json:"residual_std_error"`
	RSquared         float64   `json:"r_squared"`
	N                int       `json:"n"`
	Excluded         int       `json:"excluded"`

	// X is the transformed predictor vector the model was fitted on; the
	// posterior-predictive simulator refits against this exact vector.
	X []float64 `json:"-"`
	// Fitted holds intercept + slope*X[i], aligned with X.
	Fitted []float64 `json:"-"`
}

// Equation renders the regression line the way reports print it.
func (m *FittedModel) Equation() string {
	predictor := "income"
	if m.Transform == TransformLog2 {
		predictor = "log2(income)"
	}
	return fmt.Sprintf("sanitation = %.4f + %.4f * %s", m.Intercept, m.Slope, predictor)
}

// SimulationBatch holds the per-round R-squared values of one
// posterior-predictive run. Round order follows round index, so a fixed seed
// reproduces the batch exactly regardless of worker count.
type SimulationBatch struct {
	Rounds   int       `json:"rounds"`
	Seed     uint64    `json:"seed"`
	RSquared []float64 `json:"r_squared"`
}

// BatchSummary condenses a simulation batch into reportable statistics.
type BatchSummary struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile5  float64 `json:"p5"`
	Percentile95 float64 `json:"p95"`
}
