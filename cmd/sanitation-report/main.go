// Command sanitation-report runs the full income-sanitation analysis:
// load both wide tables, reshape and join them, fit the raw and
// log2-transformed OLS models, validate each with posterior-predictive
// simulation, and write the run artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"sanistat/internal/analysis"
	"sanistat/internal/config"
	"sanistat/internal/infrastructure"
	"sanistat/internal/validation"
	"sanistat/pkg/contracts"
)

type options struct {
	configPath     string
	incomePath     string
	sanitationPath string
	outputDir      string
	rounds         int
	seed           uint64
	workers        int
	showVersion    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "explicit YAML config file (defaults to SANISTAT_CONFIG or well-known locations)")
	flag.StringVar(&opts.incomePath, "income", "", "income wide table (.csv or .xlsx); overrides config")
	flag.StringVar(&opts.sanitationPath, "sanitation", "", "sanitation wide table (.csv or .xlsx); overrides config")
	flag.StringVar(&opts.outputDir, "out", "", "base directory for run artifacts; overrides config")
	flag.IntVar(&opts.rounds, "rounds", 0, "posterior-predictive simulation rounds; overrides config")
	flag.Uint64Var(&opts.seed, "seed", 0, "master random seed; overrides config")
	flag.IntVar(&opts.workers, "workers", 0, "simulation worker count (0 = CPU count); overrides config")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.Parse()

	if opts.showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if err := run(context.Background(), opts); err != nil {
		slog.Error("Analysis run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer tracing.Shutdown(ctx)

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return fmt.Errorf("resolve output paths: %w", err)
	}

	validator := validation.NewFileValidator(logger)
	if cfg.Data.IncomePath == "" || cfg.Data.SanitationPath == "" {
		return fmt.Errorf("both input tables are required (set -income and -sanitation or configure data paths)")
	}
	if err := validator.ValidateInputTable(cfg.Data.IncomePath); err != nil {
		return fmt.Errorf("income table: %w", err)
	}
	if err := validator.ValidateInputTable(cfg.Data.SanitationPath); err != nil {
		return fmt.Errorf("sanitation table: %w", err)
	}
	if err := validator.ValidateOutputDirectory(paths.ReportsDir); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	pipeline, err := analysis.NewPipeline(cfg, logger, tracing.Tracer())
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	reporter, err := analysis.NewReporter(paths, logger)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := reporter.Persist(ctx, result, cfg); err != nil {
		return fmt.Errorf("persist run artifacts: %w", err)
	}

	analysis.PrintSummary(os.Stdout, result, cfg)
	fmt.Printf("\nArtifacts written to %s\n", paths.ReportsDir)

	return nil
}

// loadConfig layers flag overrides on top of the env/YAML configuration.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.incomePath != "" {
		cfg.Data.IncomePath = opts.incomePath
	}
	if opts.sanitationPath != "" {
		cfg.Data.SanitationPath = opts.sanitationPath
	}
	if opts.outputDir != "" {
		cfg.Paths.BaseDir = opts.outputDir
	}
	if opts.rounds > 0 {
		cfg.Simulation.Rounds = opts.rounds
	}
	if opts.seed != 0 {
		cfg.Simulation.Seed = opts.seed
	}
	if opts.workers > 0 {
		cfg.Simulation.Workers = opts.workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
