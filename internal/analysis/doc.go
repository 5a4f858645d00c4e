// Package analysis orchestrates the sanitation-income pipeline.
//
// A Pipeline runs the stages in order: load both wide tables, reshape each
// into long form, inner-join on (country, year), fit the raw-income OLS
// model, validate it by posterior-predictive simulation, then repeat the fit
// and validation with log2-transformed income. Each stage runs inside its own
// trace span with its status and duration recorded; the first failure aborts
// the run and the error names the stage.
//
// A Reporter persists the run artifacts (joined panel CSV, per-transform
// simulated R-squared CSVs, summary.json) and PrintSummary renders the
// plain-text report the CLI prints.
package analysis
