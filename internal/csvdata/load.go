package csvdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Load reads a dataset from disk and parses it. Files ending in .gz are
// decompressed transparently; catalog dumps usually ship gzipped. The first
// line is the header, everything after it is data.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("decompressing dataset %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	src, err := ReadSource(reader)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return Parse(src)
}

// ReadSource splits a raw dataset stream into its header row and data rows.
// Trailing blank lines are dropped.
func ReadSource(r io.Reader) (Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Source{}, fmt.Errorf("reading header: %w", err)
		}
		return Source{}, fmt.Errorf("dataset is empty")
	}
	src := Source{Header: scanner.Text()}

	for scanner.Scan() {
		src.Rows = append(src.Rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Source{}, fmt.Errorf("reading rows: %w", err)
	}

	for len(src.Rows) > 0 && strings.TrimSpace(src.Rows[len(src.Rows)-1]) == "" {
		src.Rows = src.Rows[:len(src.Rows)-1]
	}
	return src, nil
}
