package matchdb

import "reelmatch.org/internal/appconf"

const (
	// DefaultBulkInsertBatchSize is the default batch size for multi-row
	// INSERTs. SQLite's default SQLITE_MAX_VARIABLE_NUMBER is 999; at 3
	// bound variables per mapping, 300 rows keeps a batch under the limit.
	DefaultBulkInsertBatchSize = 300
)

// Config holds configuration options for the Client
type Config struct {
	DBPath  string              // Path to SQLite database file
	Env     appconf.Environment // Environment name: development, test, production.
	verbose bool                // Enable verbose logging

	// BulkInsertBatchSize controls how many mappings are inserted per
	// multi-row INSERT statement. Set to 0 to use the default value.
	BulkInsertBatchSize int
}

func NewConfig(dbPath string, env appconf.Environment, verbose bool) Config {
	return Config{
		DBPath:              dbPath,
		Env:                 env,
		verbose:             verbose,
		BulkInsertBatchSize: DefaultBulkInsertBatchSize,
	}
}

// GetBulkInsertBatchSize returns the configured batch size, or the default if not set
func (c Config) GetBulkInsertBatchSize() int {
	if c.BulkInsertBatchSize <= 0 {
		return DefaultBulkInsertBatchSize
	}
	return c.BulkInsertBatchSize
}
