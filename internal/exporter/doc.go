// Package exporter provides CSV export functionality for the sanitation
// analysis pipeline.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, appending, and UTF-8 BOM for Excel compatibility.
//
// PanelExporter: Writes the joined country-year panel and single-indicator
// long tables.
//
// SimulationExporter: Streams posterior-predictive R-squared batches, one row
// per simulation round.
//
// Example usage:
//
//	panelExporter := exporter.NewPanelExporter(paths)
//	err := panelExporter.ExportJoinedPanel(records, paths.JoinedCSV)
//
//	simExporter := exporter.NewSimulationExporter(paths)
//	err = simExporter.ExportBatch(batch, paths.RawSimulationCSV)
package exporter
