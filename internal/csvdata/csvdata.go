// Package csvdata turns already-separated CSV header and data rows into
// field-keyed records. Upstream collaborators hand the matcher a header row
// plus data rows; this package is the only place that understands CSV
// quoting and field alignment.
package csvdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Source is one tabular dataset before parsing: a single header row and the
// raw data rows beneath it.
type Source struct {
	Header string
	Rows   []string
}

// Record is a single parsed row, keyed by column header.
type Record map[string]string

// Table is a parsed dataset: an ordered collection of records sharing one
// header. Record order is the row order of the source.
type Table struct {
	fields  []string
	records []Record
}

// Parse reads a Source into a Table. The header and rows are re-joined and
// run through a CSV reader so quoting and embedded commas behave the same
// as in the upstream datasets. A structurally malformed row (wrong field
// count, broken quoting) fails the whole parse with the offending line in
// the error.
func Parse(src Source) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(src.Header + "\n" + strings.Join(src.Rows, "\n")))

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	table := &Table{fields: header}
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading data row %d: %w", len(table.records)+1, err)
		}
		record := make(Record, len(header))
		for i, field := range header {
			record[field] = row[i]
		}
		table.records = append(table.records, record)
	}
	return table, nil
}

// Fields returns the column headers in source order.
func (t *Table) Fields() []string {
	return t.fields
}

// Records returns the parsed rows in source order.
func (t *Table) Records() []Record {
	return t.records
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.records)
}
