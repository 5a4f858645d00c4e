package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MinObservations is the smallest sample an OLS fit accepts. The residual
// standard error divides by n-2, so two points leave zero degrees of freedom.
const MinObservations = 3

// DegenerateInputError reports a sample the fitter cannot work with: too few
// observations or a predictor with no variance.
type DegenerateInputError struct {
	Reason string
	N      int
}

// Error implements the error interface
func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate regression input (n=%d): %s", e.N, e.Reason)
}

// Fit estimates sanitation = intercept + slope*t(income) by ordinary least
// squares.
//
// The transform is applied to a copy of x; the caller's slices are never
// modified. Pairs whose transformed predictor or response is not finite are
// excluded before fitting and counted in the result (log2 of a zero income is
// the realistic producer). The fit fails with *DegenerateInputError when
// fewer than MinObservations pairs remain or the retained predictor has zero
// variance.
func Fit(x, y []float64, t Transform) (*FittedModel, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("mismatched input lengths: %d predictors, %d responses", len(x), len(y))
	}
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown transform %q", t)
	}

	tx := make([]float64, 0, len(x))
	ty := make([]float64, 0, len(y))
	excluded := 0
	for i := range x {
		xv := t.Apply(x[i])
		if !isFinite(xv) || !isFinite(y[i]) {
			excluded++
			continue
		}
		tx = append(tx, xv)
		ty = append(ty, y[i])
	}

	n := len(tx)
	if n < MinObservations {
		return nil, &DegenerateInputError{
			Reason: fmt.Sprintf("need at least %d observations", MinObservations),
			N:      n,
		}
	}
	if !hasVariance(tx) {
		return nil, &DegenerateInputError{
			Reason: "predictor has zero variance, slope is undefined",
			N:      n,
		}
	}

	intercept, slope := stat.LinearRegression(tx, ty, nil, false)

	fitted := make([]float64, n)
	ssRes := 0.0
	for i, xv := range tx {
		fitted[i] = intercept + slope*xv
		r := ty[i] - fitted[i]
		ssRes += r * r
	}

	return &FittedModel{
		Transform:        t,
		Intercept:        intercept,
		Slope:            slope,
		ResidualStdError: math.Sqrt(ssRes / float64(n-2)),
		RSquared:         stat.RSquaredFrom(fitted, ty, nil),
		N:                n,
		Excluded:         excluded,
		X:                tx,
		Fitted:           fitted,
	}, nil
}

// refitRSquared regresses a simulated response against the model's predictor
// and returns the refit's R-squared. The predictor was variance-checked by
// the original fit, so no degeneracy handling is repeated per round.
func refitRSquared(x, y []float64) float64 {
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	estimates := make([]float64, len(x))
	for i, xv := range x {
		estimates[i] = intercept + slope*xv
	}
	return stat.RSquaredFrom(estimates, y, nil)
}

// isFinite rejects NaN and both infinities.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// hasVariance reports whether xs holds at least two distinct values.
func hasVariance(xs []float64) bool {
	for _, v := range xs[1:] {
		if v != xs[0] {
			return true
		}
	}
	return false
}
