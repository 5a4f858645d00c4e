package regress

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitPerfectLine(t *testing.T) {
	// y = 1 + 2x exactly
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}

	model, err := Fit(x, y, TransformIdentity)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, model.Intercept, 1e-10)
	assert.InDelta(t, 2.0, model.Slope, 1e-10)
	assert.InDelta(t, 1.0, model.RSquared, 1e-10)
	assert.InDelta(t, 0.0, model.ResidualStdError, 1e-10)
	assert.Equal(t, 5, model.N)
	assert.Equal(t, 0, model.Excluded)
	require.Len(t, model.Fitted, 5)
	for i := range x {
		assert.InDelta(t, y[i], model.Fitted[i], 1e-10)
	}
}

func TestFitNoisyLine(t *testing.T) {
	// Same line with alternating perturbations; R-squared drops below 1
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{3.5, 4.5, 7.5, 8.5, 11.5, 12.5}

	model, err := Fit(x, y, TransformIdentity)
	require.NoError(t, err)

	assert.Greater(t, model.Slope, 0.0)
	assert.Less(t, model.RSquared, 1.0)
	assert.Greater(t, model.RSquared, 0.9)
	assert.Greater(t, model.ResidualStdError, 0.0)
}

func TestFitLog2Transform(t *testing.T) {
	// y = 10 + 5*log2(x) exactly
	x := []float64{2, 4, 8, 16, 32}
	y := []float64{15, 20, 25, 30, 35}

	model, err := Fit(x, y, TransformLog2)
	require.NoError(t, err)

	assert.Equal(t, TransformLog2, model.Transform)
	assert.InDelta(t, 10.0, model.Intercept, 1e-10)
	assert.InDelta(t, 5.0, model.Slope, 1e-10)
	assert.InDelta(t, 1.0, model.RSquared, 1e-10)
	// X must hold the transformed predictor
	assert.InDelta(t, 1.0, model.X[0], 1e-10)
	assert.InDelta(t, 5.0, model.X[4], 1e-10)
}

func TestFitLog2ExcludesNonPositiveIncome(t *testing.T) {
	// log2(0) is -Inf; the pair is excluded, not propagated
	x := []float64{0, 2, 4, 8, 16}
	y := []float64{1, 15, 20, 25, 30}

	model, err := Fit(x, y, TransformLog2)
	require.NoError(t, err)

	assert.Equal(t, 4, model.N)
	assert.Equal(t, 1, model.Excluded)
	assert.InDelta(t, 10.0, model.Intercept, 1e-10)
	assert.InDelta(t, 5.0, model.Slope, 1e-10)
}

func TestFitExcludesNonFiniteResponse(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, math.NaN(), 7, 9, 11}

	model, err := Fit(x, y, TransformIdentity)
	require.NoError(t, err)

	assert.Equal(t, 4, model.N)
	assert.Equal(t, 1, model.Excluded)
	assert.InDelta(t, 1.0, model.Intercept, 1e-10)
	assert.InDelta(t, 2.0, model.Slope, 1e-10)
}

func TestFitDegenerateTooFewObservations(t *testing.T) {
	_, err := Fit([]float64{1, 2}, []float64{3, 5}, TransformIdentity)
	require.Error(t, err)

	var degenerate *DegenerateInputError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, 2, degenerate.N)
}

func TestFitDegenerateZeroVariance(t *testing.T) {
	_, err := Fit([]float64{5, 5}, []float64{1, 2}, TransformIdentity)
	require.Error(t, err)

	var degenerate *DegenerateInputError
	require.True(t, errors.As(err, &degenerate))

	// Same failure with enough observations
	_, err = Fit([]float64{7, 7, 7, 7}, []float64{1, 2, 3, 4}, TransformIdentity)
	require.Error(t, err)
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, 4, degenerate.N)
}

func TestFitExclusionCanDegenerateSample(t *testing.T) {
	// Three observations, one excluded by log2(0): n drops below the minimum
	_, err := Fit([]float64{0, 2, 4}, []float64{1, 2, 3}, TransformLog2)
	require.Error(t, err)

	var degenerate *DegenerateInputError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, 2, degenerate.N)
}

func TestFitMismatchedLengths(t *testing.T) {
	_, err := Fit([]float64{1, 2, 3}, []float64{1, 2}, TransformIdentity)
	require.Error(t, err)

	var degenerate *DegenerateInputError
	assert.False(t, errors.As(err, &degenerate))
}

func TestFitUnknownTransform(t *testing.T) {
	_, err := Fit([]float64{1, 2, 3}, []float64{1, 2, 3}, Transform("log10"))
	require.Error(t, err)
}

func TestFitDoesNotMutateInputs(t *testing.T) {
	x := []float64{2, 4, 8, 16}
	y := []float64{1, 2, 3, 4}
	xCopy := append([]float64(nil), x...)
	yCopy := append([]float64(nil), y...)

	_, err := Fit(x, y, TransformLog2)
	require.NoError(t, err)

	assert.Equal(t, xCopy, x)
	assert.Equal(t, yCopy, y)
}

func TestTransformApply(t *testing.T) {
	assert.Equal(t, 7.5, TransformIdentity.Apply(7.5))
	assert.InDelta(t, 3.0, TransformLog2.Apply(8), 1e-12)
	assert.True(t, math.IsInf(TransformLog2.Apply(0), -1))
}

func TestTransformIsValid(t *testing.T) {
	assert.True(t, TransformIdentity.IsValid())
	assert.True(t, TransformLog2.IsValid())
	assert.False(t, Transform("sqrt").IsValid())
}

func TestEquation(t *testing.T) {
	model := &FittedModel{Transform: TransformLog2, Intercept: 10, Slope: 5}
	assert.Equal(t, "sanitation = 10.0000 + 5.0000 * log2(income)", model.Equation())

	model.Transform = TransformIdentity
	assert.Contains(t, model.Equation(), "* income")
}

// TestGoldenFitKnownPanel pins the fit on a small fixed panel so coefficient
// regressions are caught immediately.
func TestGoldenFitKnownPanel(t *testing.T) {
	income := []float64{500, 1200, 3400, 8000, 15000, 32000}
	sanitation := []float64{22, 31, 48, 63, 78, 91}

	model, err := Fit(income, sanitation, TransformLog2)
	require.NoError(t, err)

	// Expected values computed from the closed-form OLS equations
	assert.InDelta(t, -87.5752, model.Intercept, 1e-3)
	assert.InDelta(t, 11.8032, model.Slope, 1e-3)
	assert.InDelta(t, 0.98883, model.RSquared, 1e-4)
	assert.InDelta(t, 3.17162, model.ResidualStdError, 1e-4)
}
