package main

import (
	"flag"
	"log/slog"
	"os"

	"reelmatch.org/internal/appconf"
	"reelmatch.org/internal/criteria"
)

func main() {
	var (
		configPath   string
		moviesPath   string
		creditsPath  string
		externalPath string
		sourceFlag   string
		outputPath   string
		dbPath       string
		workers      int
		metricsBind  string
		envFlag      string
		verbose      bool
	)

	flag.StringVar(&configPath, "config", "", "Optional JSON config file; explicit flags override file values")
	flag.StringVar(&moviesPath, "movies", "", "Path to the reference movies CSV (plain or .gz)")
	flag.StringVar(&creditsPath, "credits", "", "Path to the reference credits CSV (plain or .gz)")
	flag.StringVar(&externalPath, "external", "", "Path to the external catalog CSV (plain or .gz)")
	flag.StringVar(&sourceFlag, "source", "xbox", "External source type (xbox|google_play)")
	flag.StringVar(&outputPath, "out", "", "Path for the mapping CSV output (stdout when empty)")
	flag.StringVar(&dbPath, "db-path", "", "Optional SQLite database for persisting match runs")
	flag.IntVar(&workers, "workers", 0, "Match worker count (0 = one per CPU)")
	flag.StringVar(&metricsBind, "metrics-bind", "", "Optional listen address for Prometheus metrics (e.g. :9090)")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose logging")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if configPath != "" {
		fileConfig, err := appconf.LoadFromFile(configPath)
		if err != nil {
			logger.Error("failed to load config file", "error", err)
			os.Exit(1)
		}
		applyFileConfig(fileConfig, flagsExplicitlySet(), &moviesPath, &creditsPath, &externalPath,
			&sourceFlag, &outputPath, &dbPath, &workers, &metricsBind, &envFlag, &verbose)
	}

	cfg := appconf.Config{
		Workers:     workers,
		MetricsBind: metricsBind,
		Env:         appconf.EnvFlagToEnvironment(envFlag),
		Verbose:     verbose,
	}
	paths := RunPaths{
		Movies:   moviesPath,
		Credits:  creditsPath,
		External: externalPath,
		Output:   outputPath,
		DBPath:   dbPath,
		Source:   criteria.SourceTypeFromFlag(sourceFlag),
	}

	if err := validatePaths(paths); err != nil {
		logger.Error("invalid arguments", "error", err)
		flag.Usage()
		os.Exit(1)
	}

	coreApp, err := BuildApplication(cfg, paths, logger)
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	if err := Run(coreApp, paths); err != nil {
		coreApp.Logger.Error("match run failed", "error", err)
		os.Exit(1)
	}
}

// flagsExplicitlySet returns the set of flag names the user passed on the
// command line. Flags in this set win over config-file values.
func flagsExplicitlySet() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFileConfig copies config-file values into any flag variable the user
// did not set explicitly.
func applyFileConfig(fc *appconf.FileConfig, explicit map[string]bool,
	movies, credits, external, source, output, dbPath *string,
	workers *int, metricsBind, envFlag *string, verbose *bool) {

	if !explicit["movies"] {
		*movies = fc.MoviesPath
	}
	if !explicit["credits"] {
		*credits = fc.CreditsPath
	}
	if !explicit["external"] {
		*external = fc.ExternalPath
	}
	if !explicit["source"] {
		*source = fc.Source
	}
	if !explicit["out"] {
		*output = fc.OutputPath
	}
	if !explicit["db-path"] {
		*dbPath = fc.DBPath
	}
	if !explicit["workers"] {
		*workers = fc.Workers
	}
	if !explicit["metrics-bind"] {
		*metricsBind = fc.MetricsBind
	}
	if !explicit["env"] {
		*envFlag = fc.Env
	}
	if !explicit["verbose"] {
		*verbose = fc.Verbose
	}
}
