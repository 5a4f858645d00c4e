package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Data       DataConfig       `yaml:"data" envconfig:"DATA"`
	Analysis   AnalysisConfig   `yaml:"analysis" envconfig:"ANALYSIS"`
	Simulation SimulationConfig `yaml:"simulation" envconfig:"SIMULATION"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Tracing    TracingConfig    `yaml:"tracing" envconfig:"TRACING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
}

// DataConfig locates the two input tables. Inputs are read-only, externally
// managed files; the pipeline never writes to them.
type DataConfig struct {
	IncomePath      string `yaml:"income_path" envconfig:"INCOME_PATH"`
	SanitationPath  string `yaml:"sanitation_path" envconfig:"SANITATION_PATH"`
	IncomeSheet     string `yaml:"income_sheet" envconfig:"INCOME_SHEET"`
	SanitationSheet string `yaml:"sanitation_sheet" envconfig:"SANITATION_SHEET"`
}

// AnalysisConfig sets the year window the models are fitted over.
type AnalysisConfig struct {
	StartYear int `yaml:"start_year" envconfig:"START_YEAR" default:"1999" validate:"gte=1500,lte=2100"`
	EndYear   int `yaml:"end_year" envconfig:"END_YEAR" default:"2019" validate:"gte=1500,lte=2100"`
}

// SimulationConfig controls the posterior-predictive check.
type SimulationConfig struct {
	Rounds  int    `yaml:"rounds" envconfig:"ROUNDS" default:"1000" validate:"gte=1"`
	Seed    uint64 `yaml:"seed" envconfig:"SEED" default:"42"`
	Workers int    `yaml:"workers" envconfig:"WORKERS" default:"0" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/sanistat.log"`
}

// TracingConfig controls the OpenTelemetry stdout exporter.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0" validate:"gte=0,lte=1"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SANISTAT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from an explicit YAML file, layered over
// environment variables the same way Load is.
func LoadFromFile(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SANISTAT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	fileConfig, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from file: %w", err)
	}
	cfg = mergeConfigs(*fileConfig, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config over env config (file takes precedence
// where it sets a value; env and defaults fill the rest)
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	if fileConfig.Data.IncomePath != "" {
		merged.Data.IncomePath = fileConfig.Data.IncomePath
	}
	if fileConfig.Data.SanitationPath != "" {
		merged.Data.SanitationPath = fileConfig.Data.SanitationPath
	}
	if fileConfig.Data.IncomeSheet != "" {
		merged.Data.IncomeSheet = fileConfig.Data.IncomeSheet
	}
	if fileConfig.Data.SanitationSheet != "" {
		merged.Data.SanitationSheet = fileConfig.Data.SanitationSheet
	}
	if fileConfig.Analysis.StartYear != 0 {
		merged.Analysis.StartYear = fileConfig.Analysis.StartYear
	}
	if fileConfig.Analysis.EndYear != 0 {
		merged.Analysis.EndYear = fileConfig.Analysis.EndYear
	}
	if fileConfig.Simulation.Rounds != 0 {
		merged.Simulation.Rounds = fileConfig.Simulation.Rounds
	}
	if fileConfig.Simulation.Seed != 0 {
		merged.Simulation.Seed = fileConfig.Simulation.Seed
	}
	if fileConfig.Simulation.Workers != 0 {
		merged.Simulation.Workers = fileConfig.Simulation.Workers
	}
	if fileConfig.Logging.Level != "" {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" {
		merged.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Logging.Output != "" {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Tracing.Enabled {
		merged.Tracing.Enabled = true
	}
	if fileConfig.Tracing.SampleRatio != 0 {
		merged.Tracing.SampleRatio = fileConfig.Tracing.SampleRatio
	}
	if fileConfig.Paths.BaseDir != "" {
		merged.Paths.BaseDir = fileConfig.Paths.BaseDir
	}
	if fileConfig.Paths.ReportsDir != "" {
		merged.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if fileConfig.Paths.LogsDir != "" {
		merged.Paths.LogsDir = fileConfig.Paths.LogsDir
	}

	return merged
}

// Validate validates the configuration. Struct tags cover per-field rules;
// cross-field rules are checked by hand.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Analysis.EndYear < c.Analysis.StartYear {
		return fmt.Errorf("analysis end year %d precedes start year %d", c.Analysis.EndYear, c.Analysis.StartYear)
	}

	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging output %q requires a file path", c.Logging.Output)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv("SANISTAT_CONFIG"); path != "" {
		return path
	}

	// Check for config file in common locations
	locations := []string{
		"sanistat.yaml",
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration. Input paths stay empty; they have no
// sensible defaults and the drivers require them explicitly.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			StartYear: 1999,
			EndYear:   2019,
		},
		Simulation: SimulationConfig{
			Rounds: 1000,
			Seed:   42,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/sanistat.log",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			SampleRatio: 1.0,
		},
		Paths: PathsConfig{
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}
