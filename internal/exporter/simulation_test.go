package exporter

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanistat/internal/regress"
)

func TestExportBatch(t *testing.T) {
	paths := testPaths(t)
	s := NewSimulationExporter(paths)

	batch := &regress.SimulationBatch{
		Rounds:   3,
		Seed:     42,
		RSquared: []float64{0.951234, 0.962345, 0.973456},
	}

	require.NoError(t, s.ExportBatch(batch, "sim.csv"))

	data, err := os.ReadFile(paths.ReportPath("sim.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Round,RSquared")
	assert.Contains(t, lines[1], "0,0.951234")
	assert.Contains(t, lines[3], "2,0.973456")
}

func TestExportBatchEmpty(t *testing.T) {
	paths := testPaths(t)
	s := NewSimulationExporter(paths)

	batch := &regress.SimulationBatch{Rounds: 0, RSquared: nil}
	require.NoError(t, s.ExportBatch(batch, "empty.csv"))

	data, err := os.ReadFile(paths.ReportPath("empty.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1)
}
