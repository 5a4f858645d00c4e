package dataset

import (
	"fmt"

	"sanistat/pkg/contracts/domain"
)

const (
	// DefaultStartYear is the first year of the default analysis window
	DefaultStartYear = 1999
	// DefaultEndYear is the last year of the default analysis window
	DefaultEndYear = 2019
)

// YearRange is a closed [Start, End] interval of years.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DefaultYearRange returns the standard 1999-2019 analysis window.
func DefaultYearRange() YearRange {
	return YearRange{Start: DefaultStartYear, End: DefaultEndYear}
}

// IsValid checks that the range is non-empty.
func (r YearRange) IsValid() bool {
	return r.Start <= r.End
}

// Contains reports whether year falls inside the closed range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// String returns the range in "start-end" form.
func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// WideRow is one country's row of a wide table. Cells maps year to the raw
// cell string; a year absent from the map, or mapped to a blank string, is a
// missing observation.
type WideRow struct {
	Country string         `json:"country"`
	Cells   map[int]string `json:"cells"`
}

// Cell returns the raw cell for a year and whether it holds a value.
func (w WideRow) Cell(year int) (string, bool) {
	v, ok := w.Cells[year]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// WideTable is a loaded wide dataset: one row per country, one column per
// year. Years holds the column order from the source header.
type WideTable struct {
	Indicator domain.Indicator `json:"indicator"`
	Years     []int            `json:"years"`
	Rows      []WideRow        `json:"rows"`
}

// IsValid checks the table has a known indicator and at least one year column.
func (t *WideTable) IsValid() bool {
	return t.Indicator.IsValid() && len(t.Years) > 0
}

// LongTable is the normalized form of one indicator: one record per
// (country, year) observation, every value present.
type LongTable struct {
	Indicator domain.Indicator    `json:"indicator"`
	Records   []domain.LongRecord `json:"records"`
}

// Len returns the number of records in the table.
func (t *LongTable) Len() int {
	return len(t.Records)
}

// ReshapeStats reports how much of a wide input survived cleaning. Dropped
// rows are policy, not errors, but they change the analysis sample size and
// are always surfaced to logs and reports.
type ReshapeStats struct {
	Indicator        domain.Indicator `json:"indicator"`
	SourceRows       int              `json:"source_rows"`
	CompleteRows     int              `json:"complete_rows"`
	DroppedRows      int              `json:"dropped_rows"`
	DroppedCountries []string         `json:"dropped_countries,omitempty"`
	Records          int              `json:"records"`
	SuspectTokens    int              `json:"suspect_tokens"`
}
