// Package catalog builds the searchable reference index the match engine
// queries: movies bucketed by release year and movie ids keyed by
// normalized director name. The index is built once, single-threaded, and
// is read-only for the lifetime of the engine, so workers query it without
// locks.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"reelmatch.org/internal/csvdata"
	"reelmatch.org/internal/models"
	"reelmatch.org/internal/normalize"
)

// Catalog is the immutable reference index.
type Catalog struct {
	moviesByYear       map[int][]models.Movie
	movieIDsByDirector map[string][]int
	movieCount         int
}

// Build constructs a Catalog from the reference movie and credits tables.
// Import is fail-fast per dataset: the first structurally bad row aborts
// that dataset's import with the row number in the error.
func Build(movies, credits *csvdata.Table) (*Catalog, error) {
	c := &Catalog{
		moviesByYear:       make(map[int][]models.Movie),
		movieIDsByDirector: make(map[string][]int),
	}
	if err := c.importMovies(movies); err != nil {
		return nil, fmt.Errorf("importing movie dataset: %w", err)
	}
	if err := c.importCredits(credits); err != nil {
		return nil, fmt.Errorf("importing credits dataset: %w", err)
	}
	return c, nil
}

func (c *Catalog) importMovies(movies *csvdata.Table) error {
	for i, record := range movies.Records() {
		id, err := strconv.Atoi(record[models.FieldMovieID])
		if err != nil {
			return fmt.Errorf("row %d: bad movie id %q: %w", i+1, record[models.FieldMovieID], err)
		}

		year, err := parseYear(record[models.FieldMovieYear])
		if err != nil {
			return fmt.Errorf("row %d: bad year %q for movie %d: %w", i+1, record[models.FieldMovieYear], id, err)
		}

		movie := models.Movie{ID: id, Title: record[models.FieldMovieTitle], Year: year}
		c.moviesByYear[year] = append(c.moviesByYear[year], movie)
		c.movieCount++
	}
	return nil
}

func (c *Catalog) importCredits(credits *csvdata.Table) error {
	for i, record := range credits.Records() {
		movieID, err := strconv.Atoi(record[models.FieldCreditMovie])
		if err != nil {
			return fmt.Errorf("row %d: bad movie id %q: %w", i+1, record[models.FieldCreditMovie], err)
		}

		// Only director credits feed the index; other roles are accepted
		// and ignored. The role comparison is case-sensitive by contract
		// with the reference dataset.
		if record[models.FieldCreditRole] == models.RoleDirector {
			name := normalize.Title(record[models.FieldCreditName])
			c.movieIDsByDirector[name] = append(c.movieIDsByDirector[name], movieID)
		}
	}
	return nil
}

// parseYear treats an empty value or the literal "NULL" as the unknown-year
// bucket (0).
func parseYear(raw string) (int, error) {
	if raw == "" || raw == models.YearUnknownMarker {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

// MoviesInYear returns the reference movies released in the given year, in
// import order. Year 0 is the unknown-year bucket. The returned slice is
// shared and must not be mutated.
func (c *Catalog) MoviesInYear(year int) []models.Movie {
	return c.moviesByYear[year]
}

// MovieIDsForDirector returns the ids of movies credited to the given
// director. The name is normalized with the same routine as titles before
// lookup.
func (c *Catalog) MovieIDsForDirector(name string) []int {
	return c.movieIDsByDirector[normalize.Title(name)]
}

// Len returns the total number of movies imported.
func (c *Catalog) Len() int {
	return c.movieCount
}
