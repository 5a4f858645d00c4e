package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the output paths used by the pipeline. This is the
// single source of truth for where run artifacts land; input tables are
// configured separately because they are externally managed.
type Paths struct {
	BaseDir    string
	ReportsDir string
	LogsDir    string

	// Well-known run artifacts inside ReportsDir
	JoinedCSV        string
	RawSimulationCSV string
	LogSimulationCSV string
	SummaryJSON      string
}

// ResolvePaths builds the output path set from the configuration. Relative
// directories are anchored at BaseDir, which defaults to the working
// directory.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		base = wd
	}

	reportsDir := cfg.ReportsDir
	if reportsDir == "" {
		reportsDir = "reports"
	}
	if !filepath.IsAbs(reportsDir) {
		reportsDir = filepath.Join(base, reportsDir)
	}

	logsDir := cfg.LogsDir
	if logsDir == "" {
		logsDir = "logs"
	}
	if !filepath.IsAbs(logsDir) {
		logsDir = filepath.Join(base, logsDir)
	}

	paths := &Paths{
		BaseDir:    base,
		ReportsDir: reportsDir,
		LogsDir:    logsDir,

		JoinedCSV:        filepath.Join(reportsDir, "joined_panel.csv"),
		RawSimulationCSV: filepath.Join(reportsDir, "simulated_rsquared_raw.csv"),
		LogSimulationCSV: filepath.Join(reportsDir, "simulated_rsquared_log2.csv"),
		SummaryJSON:      filepath.Join(reportsDir, "summary.json"),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// ReportPath returns a path inside the reports directory.
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath returns a path inside the logs directory.
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
