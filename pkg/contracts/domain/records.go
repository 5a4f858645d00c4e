package domain

import (
	"fmt"
	"strings"
)

// LongRecord is one observation of a single indicator for one country in one
// year. Long tables are the normalized form every downstream consumer works
// with; a record never carries a missing value (incomplete rows are dropped
// during reshaping, before records exist).
type LongRecord struct {
	Country string  `json:"country" csv:"Country" validate:"required"`
	Year    int     `json:"year" csv:"Year" validate:"required,gte=1500,lte=2100"`
	Value   float64 `json:"value" csv:"Value"`
}

// JoinedRecord pairs the sanitation and income observations that exist for
// the same (country, year). It is produced by an inner join, so both values
// are always present. Sanitation is a percentage in [0,100] by convention and
// income is non-negative by convention; neither bound is enforced here.
type JoinedRecord struct {
	Country    string  `json:"country" csv:"Country" validate:"required"`
	Year       int     `json:"year" csv:"Year" validate:"required"`
	Sanitation float64 `json:"sanitation" csv:"Sanitation"`
	Income     float64 `json:"income" csv:"Income"`
}

// Indicator names the two panel datasets flowing through the pipeline.
type Indicator string

const (
	IndicatorIncome     Indicator = "income"
	IndicatorSanitation Indicator = "sanitation"
)

// IsValid reports whether the indicator is one of the known datasets.
func (i Indicator) IsValid() bool {
	return i == IndicatorIncome || i == IndicatorSanitation
}

// ParseIndicator converts a user-supplied string into an Indicator.
func ParseIndicator(s string) (Indicator, error) {
	switch Indicator(strings.ToLower(strings.TrimSpace(s))) {
	case IndicatorIncome:
		return IndicatorIncome, nil
	case IndicatorSanitation:
		return IndicatorSanitation, nil
	default:
		return "", fmt.Errorf("unknown indicator %q (want %q or %q)", s, IndicatorIncome, IndicatorSanitation)
	}
}
