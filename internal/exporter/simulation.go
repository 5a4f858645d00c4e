package exporter

import (
	"fmt"
	"strconv"

	"sanistat/internal/config"
	"sanistat/internal/regress"
)

// SimulationExporter writes posterior-predictive simulation batches. Batches
// run to thousands of rounds, so rows go through the streaming writer instead
// of being buffered.
type SimulationExporter struct {
	csvWriter *CSVWriter
}

// NewSimulationExporter creates a new simulation exporter
func NewSimulationExporter(paths *config.Paths) *SimulationExporter {
	return &SimulationExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportBatch writes one batch's per-round R-squared values, one row per
// round in round order.
func (s *SimulationExporter) ExportBatch(batch *regress.SimulationBatch, outputPath string) error {
	stream, err := s.csvWriter.CreateStreamWriter(outputPath, []string{"Round", "RSquared"})
	if err != nil {
		return fmt.Errorf("failed to create simulation stream: %w", err)
	}

	for i, r2 := range batch.RSquared {
		row := []string{strconv.Itoa(i), formatRSquared(r2)}
		if err := stream.WriteRecord(row); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write simulation round %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close simulation stream: %w", err)
	}

	return nil
}
