// Package matcher resolves external catalog records against the reference
// catalog. Each record is handled independently: the engine derives a
// comparable title, year, and optional director, narrows the reference set
// by year and director, then confirms the first candidate whose title is a
// fuzzy match. Records fan out across a bounded worker pool; the only
// shared mutable state is the first-writer-wins mapping accumulator.
package matcher

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"reelmatch.org/internal/catalog"
	"reelmatch.org/internal/criteria"
	"reelmatch.org/internal/csvdata"
	"reelmatch.org/internal/models"
	"reelmatch.org/internal/normalize"
)

// progressLogInterval bounds how often a match run reports progress.
const progressLogInterval = 2 * time.Second

// Engine matches external records against an immutable reference catalog.
type Engine struct {
	catalog  *catalog.Catalog
	resolver *criteria.Resolver
	opts     Options
	logger   *slog.Logger
}

// New creates an Engine. The catalog must be fully built before the first
// Match call; it is queried lock-free afterwards.
func New(cat *catalog.Catalog, resolver *criteria.Resolver, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:  cat,
		resolver: resolver,
		opts:     opts,
		logger:   logger.With(slog.String("component", "match_engine")),
	}
}

// Match resolves every record of one external source and returns the
// accumulated id mappings, order not significant. Each external id appears
// at most once: when several records carry the same id, the first worker to
// claim it wins. Records that resolve to nothing are dropped silently.
func (e *Engine) Match(source criteria.SourceType, records []csvdata.Record) ([]models.IdMapping, RunStats) {
	start := time.Now()
	crit := e.resolver.Resolve(source)

	workers := e.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var mappings sync.Map
	var processed atomic.Int64
	progress := rate.NewLimiter(rate.Every(progressLogInterval), 1)

	var wg sync.WaitGroup
	chunkSize := (len(records) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		chunkStart := w * chunkSize
		if chunkStart >= len(records) {
			break
		}
		chunkEnd := min(chunkStart+chunkSize, len(records))

		wg.Add(1)
		go func(chunk []csvdata.Record) {
			defer wg.Done()
			for _, record := range chunk {
				recordsProcessed.Inc()
				n := processed.Add(1)

				e.resolveRecord(record, crit, &mappings)

				if progress.Allow() {
					e.logger.Info("match run in progress",
						slog.String("source", source.String()),
						slog.Int64("processed", n),
						slog.Int("total", len(records)))
				}
			}
		}(records[chunkStart:chunkEnd])
	}
	wg.Wait()

	result := make([]models.IdMapping, 0)
	mappings.Range(func(key, value any) bool {
		result = append(result, models.IdMapping{MovieID: value.(int), ExternalID: key.(string)})
		return true
	})

	stats := RunStats{
		Processed: processed.Load(),
		Matched:   int64(len(result)),
		Skipped:   processed.Load() - int64(len(result)),
	}
	runDuration.Observe(time.Since(start).Seconds())
	e.logger.Info("match run complete",
		slog.String("source", source.String()),
		slog.Int64("processed", stats.Processed),
		slog.Int64("matched", stats.Matched),
		slog.Int64("skipped", stats.Skipped),
		slog.Duration("elapsed", time.Since(start)))
	return result, stats
}

// resolveRecord matches one record and records its mapping if it is the
// first for that external id.
func (e *Engine) resolveRecord(record csvdata.Record, crit criteria.Criteria, mappings *sync.Map) {
	externalID := record[models.FieldMediaID]
	if externalID == "" {
		recordsSkipped.Inc()
		return
	}

	movie, ok := e.findMatch(record, crit)
	if !ok {
		recordsSkipped.Inc()
		return
	}

	if _, alreadyClaimed := mappings.LoadOrStore(externalID, movie.ID); alreadyClaimed {
		recordsSkipped.Inc()
		return
	}
	recordsMatched.Inc()
}

// findMatch returns the first reference movie the record resolves to.
//
// The year bucket is an exact-year lookup. The director signal is advisory:
// when the external director is unknown to the reference index (or the
// source has no director column), the full year bucket stands rather than
// excluding everything. The scan commits to the first candidate passing the
// title check, in reference-import order; it does not hunt for a globally
// best title score.
func (e *Engine) findMatch(record csvdata.Record, crit criteria.Criteria) (models.Movie, bool) {
	externalTitle := record[crit.TitleField]
	externalYear := normalize.ExtractYear(record[crit.DateField])

	candidates := e.catalog.MoviesInYear(externalYear)
	if len(candidates) == 0 {
		return models.Movie{}, false
	}

	var directorIDs map[int]struct{}
	if crit.HasDirector() {
		ids := e.catalog.MovieIDsForDirector(record[crit.DirectorField])
		if len(ids) > 0 {
			directorIDs = make(map[int]struct{}, len(ids))
			for _, id := range ids {
				directorIDs[id] = struct{}{}
			}
		}
	}

	for _, movie := range candidates {
		if directorIDs != nil {
			if _, ok := directorIDs[movie.ID]; !ok {
				continue
			}
		}
		if normalize.TitlesMatch(movie.Title, externalTitle) {
			return movie, true
		}
	}
	return models.Movie{}, false
}
