// Package matchdb persists match runs and their id mappings to SQLite so
// results survive the process and later runs can be compared.
package matchdb

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_runs (
    id          TEXT PRIMARY KEY,
    source      TEXT NOT NULL,
    started_at  INTEGER NOT NULL,
    finished_at INTEGER,
    processed   INTEGER NOT NULL DEFAULT 0,
    matched     INTEGER NOT NULL DEFAULT 0,
    skipped     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS id_mappings (
    run_id      TEXT NOT NULL REFERENCES match_runs(id),
    external_id TEXT NOT NULL,
    movie_id    INTEGER NOT NULL,
    PRIMARY KEY (run_id, external_id)
);

CREATE INDEX IF NOT EXISTS idx_id_mappings_movie_id ON id_mappings(movie_id);
`

// Client wraps the SQLite database holding match results.
type Client struct {
	DB     *sql.DB
	config Config
}

// NewClient opens (creating if necessary) the match database and applies
// the schema.
func NewClient(config Config) (*Client, error) {
	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening match database %s: %w", config.DBPath, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Client{DB: db, config: config}, nil
}

// Close releases the underlying database handle.
func (c *Client) Close() error {
	return c.DB.Close()
}
