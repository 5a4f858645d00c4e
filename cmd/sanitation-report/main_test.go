package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanistat/internal/infrastructure"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sanistat.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"data:\n"+
			"  income_path: from-file-income.csv\n"+
			"  sanitation_path: from-file-sanitation.csv\n"+
			"simulation:\n"+
			"  rounds: 500\n"), 0644))

	cfg, err := loadConfig(options{
		configPath: configPath,
		incomePath: "override-income.csv",
		rounds:     50,
		seed:       7,
		workers:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, "override-income.csv", cfg.Data.IncomePath)
	assert.Equal(t, "from-file-sanitation.csv", cfg.Data.SanitationPath)
	assert.Equal(t, 50, cfg.Simulation.Rounds)
	assert.Equal(t, uint64(7), cfg.Simulation.Seed)
	assert.Equal(t, 3, cfg.Simulation.Workers)
}

func TestRunEndToEnd(t *testing.T) {
	infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	incomePath := filepath.Join(dir, "income.csv")
	require.NoError(t, os.WriteFile(incomePath, []byte(
		"country,1999,2000\n"+
			"Albania,4.0k,4.1k\n"+
			"Benin,850,900\n"+
			"Chile,9.0k,9.3k\n"), 0644))

	sanitationPath := filepath.Join(dir, "sanitation.csv")
	require.NoError(t, os.WriteFile(sanitationPath, []byte(
		"country,1999,2000\n"+
			"Albania,81,82\n"+
			"Benin,11,12\n"+
			"Chile,91,92\n"), 0644))

	configPath := filepath.Join(dir, "sanistat.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("simulation:\n  rounds: 20\n"), 0644))

	outDir := filepath.Join(dir, "run")
	err := run(context.Background(), options{
		configPath:     configPath,
		incomePath:     incomePath,
		sanitationPath: sanitationPath,
		outputDir:      outDir,
		workers:        2,
	})
	require.NoError(t, err)

	for _, artifact := range []string{
		"joined_panel.csv",
		"simulated_rsquared_raw.csv",
		"simulated_rsquared_log2.csv",
		"summary.json",
	} {
		_, err := os.Stat(filepath.Join(outDir, "reports", artifact))
		assert.NoError(t, err, artifact)
	}
}

func TestRunRequiresInputTables(t *testing.T) {
	infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "sanistat.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("simulation:\n  rounds: 10\n"), 0644))

	err := run(context.Background(), options{
		configPath: configPath,
		outputDir:  dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input tables are required")
}

func TestRunRejectsUnsupportedInput(t *testing.T) {
	infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	badInput := filepath.Join(dir, "income.json")
	require.NoError(t, os.WriteFile(badInput, []byte("{}"), 0644))
	sanitationPath := filepath.Join(dir, "sanitation.csv")
	require.NoError(t, os.WriteFile(sanitationPath, []byte("country,1999\nAlbania,81\n"), 0644))

	configPath := filepath.Join(dir, "sanistat.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("simulation:\n  rounds: 10\n"), 0644))

	err := run(context.Background(), options{
		configPath:     configPath,
		incomePath:     badInput,
		sanitationPath: sanitationPath,
		outputDir:      dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "income table")
}
