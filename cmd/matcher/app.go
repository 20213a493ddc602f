package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reelmatch.org/internal/app"
	"reelmatch.org/internal/appconf"
	"reelmatch.org/internal/catalog"
	"reelmatch.org/internal/criteria"
	"reelmatch.org/internal/csvdata"
	"reelmatch.org/internal/matcher"
	"reelmatch.org/internal/models"
	"reelmatch.org/matchdb"
)

// RunPaths names the datasets and outputs of one matcher invocation.
type RunPaths struct {
	Movies   string
	Credits  string
	External string
	Output   string
	DBPath   string
	Source   criteria.SourceType
}

func validatePaths(paths RunPaths) error {
	if paths.Movies == "" {
		return fmt.Errorf("a movies dataset is required (-movies)")
	}
	if paths.Credits == "" {
		return fmt.Errorf("a credits dataset is required (-credits)")
	}
	if paths.External == "" {
		return fmt.Errorf("an external dataset is required (-external)")
	}
	return nil
}

// BuildApplication loads the reference datasets, builds the catalog and the
// match engine, and opens the optional result database.
func BuildApplication(cfg appconf.Config, paths RunPaths, logger *slog.Logger) (*app.Application, error) {
	logger.Info("importing reference database",
		slog.String("movies", paths.Movies),
		slog.String("credits", paths.Credits))

	moviesTable, err := csvdata.Load(paths.Movies)
	if err != nil {
		return nil, fmt.Errorf("loading movies dataset: %w", err)
	}
	creditsTable, err := csvdata.Load(paths.Credits)
	if err != nil {
		return nil, fmt.Errorf("loading credits dataset: %w", err)
	}

	cat, err := catalog.Build(moviesTable, creditsTable)
	if err != nil {
		return nil, fmt.Errorf("building reference catalog: %w", err)
	}
	logger.Info("reference database imported", slog.Int("movies", cat.Len()))

	resolver := criteria.NewResolver()
	engine := matcher.New(cat, resolver, matcher.Options{Workers: cfg.Workers}, logger)

	coreApp := &app.Application{
		Config:   cfg,
		Logger:   logger,
		Catalog:  cat,
		Resolver: resolver,
		Engine:   engine,
	}

	if paths.DBPath != "" {
		client, err := matchdb.NewClient(matchdb.NewConfig(paths.DBPath, cfg.Env, cfg.Verbose))
		if err != nil {
			return nil, fmt.Errorf("opening match database: %w", err)
		}
		coreApp.MatchDB = client
	}

	return coreApp, nil
}

// Run executes one match run: load the external feed, resolve it against
// the catalog, write the mapping CSV, and persist the run when a database
// is configured.
func Run(coreApp *app.Application, paths RunPaths) error {
	ctx := context.Background()
	logger := coreApp.Logger

	if coreApp.Config.MetricsBind != "" {
		startMetricsServer(coreApp.Config.MetricsBind, logger)
	}

	externalTable, err := csvdata.Load(paths.External)
	if err != nil {
		return fmt.Errorf("loading external dataset: %w", err)
	}
	logger.Info("external dataset loaded",
		slog.String("source", paths.Source.String()),
		slog.Int("records", externalTable.Len()))

	var runID string
	if coreApp.MatchDB != nil {
		runID, err = coreApp.MatchDB.CreateRun(ctx, paths.Source.String())
		if err != nil {
			return err
		}
		logger.Info("match run created", slog.String("run_id", runID))
	}

	mappings, stats := coreApp.Engine.Match(paths.Source, externalTable.Records())

	if coreApp.MatchDB != nil {
		if err := coreApp.MatchDB.InsertMappings(ctx, runID, mappings); err != nil {
			return err
		}
		if err := coreApp.MatchDB.FinishRun(ctx, runID, stats.Processed, stats.Matched, stats.Skipped); err != nil {
			return err
		}
		defer coreApp.MatchDB.Close() //nolint:errcheck // process is exiting
	}

	out := os.Stdout
	if paths.Output != "" {
		file, err := os.Create(paths.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		out = file
	}
	if err := writeMappings(out, mappings); err != nil {
		return fmt.Errorf("writing mappings: %w", err)
	}
	return nil
}

// writeMappings renders the mapping set as CSV, sorted by external id for
// deterministic output.
func writeMappings(w io.Writer, mappings []models.IdMapping) error {
	sorted := make([]models.IdMapping, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ExternalID < sorted[j].ExternalID
	})

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"external_id", "movie_id"}); err != nil {
		return err
	}
	for _, m := range sorted {
		if err := writer.Write([]string{m.ExternalID, strconv.Itoa(m.MovieID)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// startMetricsServer exposes the Prometheus registry for the duration of
// the run. Useful when matching large feeds that take a while.
func startMetricsServer(bind string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("metrics server listening", slog.String("bind", bind))
		if err := http.ListenAndServe(bind, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
}
