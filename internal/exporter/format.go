package exporter

import (
	"fmt"
	"strconv"
)

// formatValue formats an observation value for CSV output with exactly 2
// decimal places, so 13.4 appears as 13.40 in every row.
func formatValue(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatRSquared formats an R-squared value with 6 decimal places. Simulated
// batches cluster tightly, so 2 decimals would collapse the distribution.
func formatRSquared(f float64) string {
	return fmt.Sprintf("%.6f", f)
}

// formatYear formats a year column value.
func formatYear(year int) string {
	return strconv.Itoa(year)
}
