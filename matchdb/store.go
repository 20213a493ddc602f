package matchdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelmatch.org/internal/models"
	"reelmatch.org/internal/utils"
)

// Run is a persisted match run. FinishedAt is zero until the run completes.
type Run struct {
	ID         string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int64
	Matched    int64
	Skipped    int64
}

const createRun = `
INSERT INTO match_runs (id, source, started_at) VALUES (?, ?, ?)
`

// CreateRun records the start of a match run and returns its generated id.
func (c *Client) CreateRun(ctx context.Context, source string) (string, error) {
	runID := uuid.New().String()
	_, err := c.DB.ExecContext(ctx, createRun, runID, source, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("creating match run: %w", err)
	}
	return runID, nil
}

const finishRun = `
UPDATE match_runs
SET finished_at = ?, processed = ?, matched = ?, skipped = ?
WHERE id = ?
`

// FinishRun stamps a run complete with its final statistics.
func (c *Client) FinishRun(ctx context.Context, runID string, processed, matched, skipped int64) error {
	result, err := c.DB.ExecContext(ctx, finishRun, time.Now().Unix(), processed, matched, skipped, runID)
	if err != nil {
		return fmt.Errorf("finishing match run %s: %w", runID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing match run %s: %w", runID, err)
	}
	if affected == 0 {
		return fmt.Errorf("finishing match run %s: no such run", runID)
	}
	return nil
}

// InsertMappings bulk-inserts a run's id mappings using batched multi-row
// INSERTs inside one transaction.
func (c *Client) InsertMappings(ctx context.Context, runID string, mappings []models.IdMapping) error {
	if len(mappings) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning mapping insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	batchSize := c.config.GetBulkInsertBatchSize()
	for start := 0; start < len(mappings); start += batchSize {
		end := min(start+batchSize, len(mappings))
		batch := mappings[start:end]

		placeholders := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*3)
		for _, m := range batch {
			placeholders = append(placeholders, "(?, ?, ?)")
			args = append(args, runID, m.ExternalID, m.MovieID)
		}

		query := "INSERT INTO id_mappings (run_id, external_id, movie_id) VALUES " +
			strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting mapping batch at %d: %w", start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mapping insert: %w", err)
	}
	return nil
}

const getRun = `
SELECT id, source, started_at, finished_at, processed, matched, skipped
FROM match_runs WHERE id = ?
`

// GetRun returns one persisted run.
func (c *Client) GetRun(ctx context.Context, runID string) (Run, error) {
	row := c.DB.QueryRowContext(ctx, getRun, runID)

	var run Run
	var startedAt int64
	var finishedAt sql.NullInt64
	if err := row.Scan(&run.ID, &run.Source, &startedAt, &finishedAt, &run.Processed, &run.Matched, &run.Skipped); err != nil {
		return Run{}, fmt.Errorf("reading match run %s: %w", runID, err)
	}
	run.StartedAt = time.Unix(startedAt, 0)
	if ts := utils.NullInt64OrDefault(finishedAt, 0); ts != 0 {
		run.FinishedAt = time.Unix(ts, 0)
	}
	return run, nil
}

const getMappings = `
SELECT external_id, movie_id FROM id_mappings WHERE run_id = ? ORDER BY external_id
`

// MappingsForRun returns a run's persisted mappings ordered by external id.
func (c *Client) MappingsForRun(ctx context.Context, runID string) ([]models.IdMapping, error) {
	rows, err := c.DB.QueryContext(ctx, getMappings, runID)
	if err != nil {
		return nil, fmt.Errorf("reading mappings for run %s: %w", runID, err)
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below

	var mappings []models.IdMapping
	for rows.Next() {
		var m models.IdMapping
		if err := rows.Scan(&m.ExternalID, &m.MovieID); err != nil {
			return nil, fmt.Errorf("scanning mapping for run %s: %w", runID, err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading mappings for run %s: %w", runID, err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing mapping rows for run %s: %w", runID, err)
	}
	return mappings, nil
}
