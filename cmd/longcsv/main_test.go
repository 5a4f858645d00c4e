package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvertsIncomeTable(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "income.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(
		"country,1998,1999,2000\n"+
			"Albania,3.9k,4.0k,4.1k\n"+
			"Benin,800,850,900\n"+
			"Chad,,300,310\n"), 0644)) // incomplete row, dropped

	outputPath := filepath.Join(dir, "income_long.csv")
	err := run(context.Background(), options{
		inputPath:  inputPath,
		indicator:  "income",
		outputPath: outputPath,
		startYear:  1999,
		endYear:    2000,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	content := string(data)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	// header + 2 complete countries x 2 window years
	require.Len(t, lines, 5)
	assert.Contains(t, content, "Country,Year,Value")
	assert.Contains(t, content, "Albania,1999,4000.00")
	assert.NotContains(t, content, "Chad")
	assert.NotContains(t, content, "1998")
}

func TestRunDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "sanitation.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(
		"country,1999,2000\n"+
			"Albania,81,82\n"), 0644))

	err := run(context.Background(), options{
		inputPath: inputPath,
		indicator: "sanitation",
		startYear: 1999,
		endYear:   2000,
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "sanitation_long.csv"))
	assert.NoError(t, err)
}

func TestRunAppendMode(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "sanitation.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(
		"country,1999\n"+
			"Albania,81\n"), 0644))

	outputPath := filepath.Join(dir, "combined.csv")
	base := options{
		inputPath:  inputPath,
		indicator:  "sanitation",
		outputPath: outputPath,
		startYear:  1999,
		endYear:    1999,
	}

	require.NoError(t, run(context.Background(), base))

	appendOpts := base
	appendOpts.appendMode = true
	require.NoError(t, run(context.Background(), appendOpts))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 1, strings.Count(string(data), "Country,Year,Value"))
}

func TestRunRequiresInput(t *testing.T) {
	err := run(context.Background(), options{indicator: "income"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-in is required")
}

func TestRunRejectsUnknownIndicator(t *testing.T) {
	err := run(context.Background(), options{
		inputPath: "whatever.csv",
		indicator: "gdp",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown indicator")
}

func TestRunSurfacesParseError(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "income.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(
		"country,1999\n"+
			"Albania,not-a-number\n"), 0644))

	err := run(context.Background(), options{
		inputPath: inputPath,
		indicator: "income",
		startYear: 1999,
		endYear:   1999,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Albania")
}
