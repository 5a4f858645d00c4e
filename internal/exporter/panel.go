package exporter

import (
	"fmt"
	"sort"

	"sanistat/internal/config"
	"sanistat/pkg/contracts/domain"
)

// PanelExporter writes the joined country-year panel for downstream
// presentation collaborators.
type PanelExporter struct {
	csvWriter *CSVWriter
}

// NewPanelExporter creates a new panel exporter
func NewPanelExporter(paths *config.Paths) *PanelExporter {
	return &PanelExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportJoinedPanel writes all joined records to a single CSV file, sorted by
// country then year for consistent output.
func (p *PanelExporter) ExportJoinedPanel(records []domain.JoinedRecord, outputPath string) error {
	sorted := make([]domain.JoinedRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Country == sorted[j].Country {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Country < sorted[j].Country
	})

	csvRecords := make([][]string, 0, len(sorted))
	for _, record := range sorted {
		csvRecords = append(csvRecords, []string{
			record.Country,
			formatYear(record.Year),
			formatValue(record.Sanitation),
			formatValue(record.Income),
		})
	}

	if err := p.csvWriter.WriteSimpleCSV(outputPath, p.getHeaders(), csvRecords); err != nil {
		return fmt.Errorf("failed to write joined panel: %w", err)
	}

	return nil
}

// ExportLongTable writes one indicator's long records, optionally appending
// to an existing file (the longcsv utility's append mode).
func (p *PanelExporter) ExportLongTable(records []domain.LongRecord, outputPath string, appendMode bool) error {
	csvRecords := make([][]string, 0, len(records))
	for _, record := range records {
		csvRecords = append(csvRecords, []string{
			record.Country,
			formatYear(record.Year),
			formatValue(record.Value),
		})
	}

	if appendMode {
		if err := p.csvWriter.AppendToCSV(outputPath, csvRecords); err != nil {
			return fmt.Errorf("failed to append long table: %w", err)
		}
		return nil
	}

	headers := []string{"Country", "Year", "Value"}
	if err := p.csvWriter.WriteSimpleCSV(outputPath, headers, csvRecords); err != nil {
		return fmt.Errorf("failed to write long table: %w", err)
	}

	return nil
}

// getHeaders returns the joined panel column headers
func (p *PanelExporter) getHeaders() []string {
	return []string{"Country", "Year", "Sanitation", "Income"}
}
