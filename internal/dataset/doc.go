// Package dataset implements the cleaning half of the pipeline: loading wide
// per-country-per-year tables from CSV or XLSX files, parsing mixed-format
// income cells, reshaping wide tables into long (country, year, value)
// records, and inner-joining the sanitation and income long tables on the
// (country, year) key.
//
// # Core Components
//
//   - types.go: WideTable/WideRow/LongTable containers and the analysis YearRange
//   - parse.go: income cell parsing, including the "k"-suffix fixed-point rule
//   - reshape.go: wide-to-long reshaping with the strict full-row completeness filter
//   - join.go: inner join with a duplicate-key guard
//   - load.go: CSV and XLSX wide-table loaders
//
// # Cleaning Policy
//
// A country row missing any cell across its full wide row is dropped entirely,
// even when the missing year lies outside the analysis window. Dropped rows
// are never errors; they are counted in ReshapeStats and logged, because they
// change the analysis sample size and must stay visible.
//
// Parse failures are errors: a malformed cell aborts the reshape and surfaces
// a *ParseError naming the offending country, year, and raw token.
package dataset
