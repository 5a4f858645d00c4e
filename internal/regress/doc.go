// Package regress implements the statistical core of the sanitation-income
// analysis: ordinary least squares estimation and simulation-based model
// validation.
//
// # Core Components
//
//  1. Model Fitter: OLS of sanitation on income, raw or log2-transformed,
//     exposing intercept, slope, residual standard error, and R-squared
//  2. Posterior-Predictive Simulator: repeated noisy replicates of the fitted
//     response, each refitted against the original predictor, producing the
//     distribution of R-squared attributable to the noise model alone
//
// # Architecture
//
//   - types.go: Transform enum, FittedModel, SimulationBatch, BatchSummary
//   - ols.go: Fit and the shared refit helper
//   - simulate.go: Simulator with deterministic per-round seeding
//
// # Mathematical Foundation
//
// The fit minimizes the sum of squared residuals:
//
//	slope     = Cov(x, y) / Var(x)
//	intercept = mean(y) - slope * mean(x)
//	RSE       = sqrt(sum((y_i - yhat_i)^2) / (n - 2))
//	R^2       = 1 - SS_res / SS_tot
//
// Each simulation round draws n independent N(0, RSE) deviates, adds them to
// the fitted values, and records the R-squared of the replicate's refit. Round
// seeds derive from a master seed before any round runs, so a fixed seed
// reproduces the batch exactly at any worker count.
//
// # Usage Example
//
//	model, err := regress.Fit(income, sanitation, regress.TransformLog2)
//	if err != nil {
//	    return err
//	}
//	sim := regress.NewSimulator(1000, 42, 0, logger)
//	batch, err := sim.Run(ctx, model)
//	if err != nil {
//	    return err
//	}
//	summary := batch.Summary()
//
// # References
//
// Gelman, A., et al. (2013). Bayesian Data Analysis, ch. 6 (posterior
// predictive checking).
package regress
