package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sanistat/pkg/contracts/domain"
)

func TestLoadWideCSV(t *testing.T) {
	path := writeTempCSV(t, "country,1999,2000,2001\nAlbania,12.3k,12.5k,\nBenin,980,1000,1100\n")

	table, err := LoadWideCSV(path, domain.IndicatorIncome)
	require.NoError(t, err)

	assert.Equal(t, domain.IndicatorIncome, table.Indicator)
	assert.Equal(t, []int{1999, 2000, 2001}, table.Years)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Albania", table.Rows[0].Country)
	_, ok := table.Rows[0].Cell(2001)
	assert.False(t, ok, "blank cell must read as missing")

	cell, ok := table.Rows[1].Cell(2001)
	require.True(t, ok)
	assert.Equal(t, "1100", cell)
}

func TestLoadWideCSVWithBOM(t *testing.T) {
	path := writeTempCSV(t, "\ufeffcountry,1999\nAlbania,80\n")

	table, err := LoadWideCSV(path, domain.IndicatorSanitation)
	require.NoError(t, err)
	assert.Equal(t, []int{1999}, table.Years)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Albania", table.Rows[0].Country)
}

func TestLoadWideCSVRaggedRows(t *testing.T) {
	// A short row means missing trailing cells, not a load failure
	path := writeTempCSV(t, "country,1999,2000\nAlbania,80\n")

	table, err := LoadWideCSV(path, domain.IndicatorSanitation)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	_, ok := table.Rows[0].Cell(2000)
	assert.False(t, ok)
}

func TestLoadWideCSVErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWideCSV(filepath.Join(t.TempDir(), "absent.csv"), domain.IndicatorIncome)
		require.Error(t, err)
	})

	t.Run("non-year header", func(t *testing.T) {
		path := writeTempCSV(t, "country,not-a-year\nAlbania,80\n")
		_, err := LoadWideCSV(path, domain.IndicatorSanitation)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a year")
	})

	t.Run("header only", func(t *testing.T) {
		path := writeTempCSV(t, "country,1999\n")
		_, err := LoadWideCSV(path, domain.IndicatorSanitation)
		require.Error(t, err)
	})

	t.Run("invalid indicator", func(t *testing.T) {
		path := writeTempCSV(t, "country,1999\nAlbania,80\n")
		_, err := LoadWideCSV(path, "weather")
		require.Error(t, err)
	})
}

func TestLoadWideXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "income.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"country", 1999, 2000}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Albania", "12.3k", "12.5k"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Benin", "980", ""}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := LoadWideXLSX(path, "", domain.IndicatorIncome)
	require.NoError(t, err)

	assert.Equal(t, []int{1999, 2000}, table.Years)
	require.Len(t, table.Rows, 2)

	cell, ok := table.Rows[0].Cell(1999)
	require.True(t, ok)
	assert.Equal(t, "12.3k", cell)

	_, ok = table.Rows[1].Cell(2000)
	assert.False(t, ok)
}

func TestLoadWideXLSXUnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "income.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadWideXLSX(path, "NoSuchSheet", domain.IndicatorIncome)
	require.Error(t, err)
}

func TestLoadWideTableByExtension(t *testing.T) {
	csvPath := writeTempCSV(t, "country,1999\nAlbania,80\n")

	table, err := LoadWideTable(csvPath, "", domain.IndicatorSanitation)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)

	_, err = LoadWideTable("data.parquet", "", domain.IndicatorSanitation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
