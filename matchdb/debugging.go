package matchdb

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// TableCounts returns row counts for the match tables. Debugging helper.
func (c *Client) TableCounts() (map[string]int, error) {
	counts := make(map[string]int)
	for _, table := range []string{"match_runs", "id_mappings"} {
		var query string

		// This prevents SQL injection by ensuring the query string is always a constant.
		switch table {
		case "match_runs":
			query = "SELECT COUNT(*) FROM match_runs"
		case "id_mappings":
			query = "SELECT COUNT(*) FROM id_mappings"
		}

		var count int
		if err := c.DB.QueryRow(query).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting rows in %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}

// DumpTableCounts renders the table counts for log output.
func (c *Client) DumpTableCounts() (string, error) {
	counts, err := c.TableCounts()
	if err != nil {
		return "", err
	}
	return spew.Sdump(counts), nil
}
