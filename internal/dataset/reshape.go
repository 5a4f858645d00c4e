package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"sanistat/pkg/contracts/domain"
)

// Reshaper converts wide tables into long tables, applying the completeness
// filter and, on the income path, the k-suffix numeric parser.
type Reshaper struct {
	yearRange   YearRange
	parseIncome bool
	logger      *slog.Logger
}

// NewReshaper creates a reshaper for the given analysis window. parseIncome
// selects the income cell parser; sanitation tables use the plain one.
func NewReshaper(yearRange YearRange, parseIncome bool, logger *slog.Logger) (*Reshaper, error) {
	if !yearRange.IsValid() {
		return nil, fmt.Errorf("invalid year range %s", yearRange)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Reshaper{
		yearRange:   yearRange,
		parseIncome: parseIncome,
		logger:      logger,
	}, nil
}

// Reshape converts a wide table into a long table.
//
// Rows with any missing cell across the full wide row are dropped first,
// including cells for years outside the analysis window; this strict filter
// is deliberate and its effect is reported in ReshapeStats. Surviving rows
// emit one record per year inside the window, ordered by input row then
// ascending year. A cell that fails to parse aborts the reshape with a
// *ParseError identifying the country, year, and raw token.
func (r *Reshaper) Reshape(ctx context.Context, table *WideTable) (*LongTable, *ReshapeStats, error) {
	if table == nil || !table.IsValid() {
		return nil, nil, fmt.Errorf("invalid wide table")
	}

	stats := &ReshapeStats{
		Indicator:  table.Indicator,
		SourceRows: len(table.Rows),
	}

	r.logger.InfoContext(ctx, "reshaping wide table",
		"indicator", string(table.Indicator),
		"rows", len(table.Rows),
		"year_columns", len(table.Years),
		"window", r.yearRange.String(),
	)

	long := &LongTable{Indicator: table.Indicator}

	for _, row := range table.Rows {
		if !r.rowComplete(row, table.Years) {
			stats.DroppedRows++
			stats.DroppedCountries = append(stats.DroppedCountries, row.Country)
			r.logger.DebugContext(ctx, "dropping incomplete row",
				"indicator", string(table.Indicator),
				"country", row.Country,
			)
			continue
		}
		stats.CompleteRows++

		for _, year := range table.Years {
			if !r.yearRange.Contains(year) {
				continue
			}

			token, _ := row.Cell(year)
			value, err := r.parseCell(token)
			if err != nil {
				if perr, ok := err.(*ParseError); ok {
					perr.Country = row.Country
					perr.Year = year
				}
				return nil, nil, fmt.Errorf("reshape %s: %w", table.Indicator, err)
			}

			if r.parseIncome && IsSuspectKToken(token) {
				stats.SuspectTokens++
				r.logger.WarnContext(ctx, "k-suffixed token with unexpected shape",
					"indicator", string(table.Indicator),
					"country", row.Country,
					"year", year,
					"token", token,
				)
			}

			long.Records = append(long.Records, domain.LongRecord{
				Country: row.Country,
				Year:    year,
				Value:   value,
			})
		}
	}

	stats.Records = len(long.Records)

	if stats.DroppedRows > 0 {
		r.logger.WarnContext(ctx, "dropped incomplete rows",
			"indicator", string(table.Indicator),
			"dropped", stats.DroppedRows,
			"kept", stats.CompleteRows,
		)
	}

	r.logger.InfoContext(ctx, "reshape complete",
		"indicator", string(table.Indicator),
		"records", stats.Records,
		"suspect_tokens", stats.SuspectTokens,
	)

	return long, stats, nil
}

// rowComplete checks every year column of the table, not just the analysis
// window. A single missing cell anywhere excludes the country entirely.
func (r *Reshaper) rowComplete(row WideRow, years []int) bool {
	for _, year := range years {
		if _, ok := row.Cell(year); !ok {
			return false
		}
	}
	return true
}

// parseCell applies the indicator-appropriate parser to one cell.
func (r *Reshaper) parseCell(token string) (float64, error) {
	if r.parseIncome {
		return ParseIncomeValue(token)
	}
	return ParsePlainValue(token)
}
