package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"sanistat/pkg/contracts/domain"
)

// DuplicateKeyError reports a (country, year) key that appears more than once
// within one side of the join. Join cardinality is undefined under duplicate
// keys, so they are rejected outright rather than emitted as a cross product.
type DuplicateKeyError struct {
	Indicator domain.Indicator
	Country   string
	Year      int
}

// Error implements the error interface
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate (%s, %d) key in %s table", e.Country, e.Year, e.Indicator)
}

// panelKey identifies one observation in a long table.
type panelKey struct {
	country string
	year    int
}

// Join inner-joins the sanitation and income long tables on (country, year).
//
// Every emitted record carries both values; keys present in only one table
// are excluded silently, with left-only/right-only counts logged. Output is
// sorted by country then year. Duplicate keys within either table fail with
// a *DuplicateKeyError.
func Join(ctx context.Context, sanitation, income *LongTable, logger *slog.Logger) ([]domain.JoinedRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sanitationByKey, err := indexByKey(sanitation)
	if err != nil {
		return nil, err
	}
	incomeByKey, err := indexByKey(income)
	if err != nil {
		return nil, err
	}

	joined := make([]domain.JoinedRecord, 0, len(sanitationByKey))
	for key, sanitationValue := range sanitationByKey {
		incomeValue, ok := incomeByKey[key]
		if !ok {
			continue
		}
		joined = append(joined, domain.JoinedRecord{
			Country:    key.country,
			Year:       key.year,
			Sanitation: sanitationValue,
			Income:     incomeValue,
		})
	}

	sort.Slice(joined, func(i, j int) bool {
		if joined[i].Country != joined[j].Country {
			return joined[i].Country < joined[j].Country
		}
		return joined[i].Year < joined[j].Year
	})

	logger.InfoContext(ctx, "joined long tables",
		"matched", len(joined),
		"sanitation_only", len(sanitationByKey)-len(joined),
		"income_only", len(incomeByKey)-len(joined),
	)

	return joined, nil
}

// indexByKey builds the key lookup for one side, rejecting duplicates.
func indexByKey(table *LongTable) (map[panelKey]float64, error) {
	if table == nil {
		return nil, fmt.Errorf("nil long table")
	}

	index := make(map[panelKey]float64, len(table.Records))
	for _, rec := range table.Records {
		key := panelKey{country: rec.Country, year: rec.Year}
		if _, exists := index[key]; exists {
			return nil, &DuplicateKeyError{
				Indicator: table.Indicator,
				Country:   rec.Country,
				Year:      rec.Year,
			}
		}
		index[key] = rec.Value
	}
	return index, nil
}
