package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"sanistat/pkg/contracts/domain"
)

// LoadWideTable loads a wide table from a flat file, choosing the loader by
// extension. CSV and XLSX are supported; sheet only applies to XLSX and may
// be empty to use the workbook's first sheet.
func LoadWideTable(path, sheet string, indicator domain.Indicator) (*WideTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadWideCSV(path, indicator)
	case ".xlsx":
		return LoadWideXLSX(path, sheet, indicator)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// LoadWideCSV reads a wide table from a CSV file. The first header cell
// names the country column (a leading UTF-8 BOM is tolerated); every
// remaining header must be an integer year. Cells are kept as raw strings;
// blank or absent cells are missing observations.
func LoadWideCSV(path string, indicator domain.Indicator) (*WideTable, error) {
	if !indicator.IsValid() {
		return nil, fmt.Errorf("invalid indicator %q", indicator)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // rows may be ragged; short rows mean missing trailing cells

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return buildWideTable(rows, indicator, path)
}

// LoadWideXLSX reads a wide table from an XLSX workbook. An empty sheet name
// selects the first sheet. Header and cell semantics match LoadWideCSV.
func LoadWideXLSX(path, sheet string, indicator domain.Indicator) (*WideTable, error) {
	if !indicator.IsValid() {
		return nil, fmt.Errorf("invalid indicator %q", indicator)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}

	return buildWideTable(rows, indicator, path)
}

// buildWideTable converts raw header+data rows into a WideTable.
func buildWideTable(rows [][]string, indicator domain.Indicator, path string) (*WideTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: need a header row and at least one data row, got %d rows", path, len(rows))
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: header needs a country column and at least one year column", path)
	}

	// Strip a UTF-8 BOM from the first header cell if present
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	years := make([]int, 0, len(header)-1)
	for i, cell := range header[1:] {
		year, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("%s: header column %d is not a year: %q", path, i+2, cell)
		}
		years = append(years, year)
	}

	table := &WideTable{
		Indicator: indicator,
		Years:     years,
		Rows:      make([]WideRow, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		country := strings.TrimSpace(row[0])
		if country == "" {
			continue
		}

		cells := make(map[int]string, len(years))
		for i, year := range years {
			col := i + 1
			if col >= len(row) {
				break
			}
			if value := strings.TrimSpace(row[col]); value != "" {
				cells[year] = value
			}
		}

		table.Rows = append(table.Rows, WideRow{Country: country, Cells: cells})
	}

	return table, nil
}
