package matcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelmatch.org/internal/catalog"
	"reelmatch.org/internal/criteria"
	"reelmatch.org/internal/csvdata"
	"reelmatch.org/internal/models"
)

func buildCatalog(t *testing.T, movieRows, creditRows []string) *catalog.Catalog {
	t.Helper()
	movies, err := csvdata.Parse(csvdata.Source{Header: "id,title,year", Rows: movieRows})
	require.NoError(t, err)
	credits, err := csvdata.Parse(csvdata.Source{Header: "movie_id,name,role", Rows: creditRows})
	require.NoError(t, err)
	cat, err := catalog.Build(movies, credits)
	require.NoError(t, err)
	return cat
}

func newTestEngine(t *testing.T, cat *catalog.Catalog) *Engine {
	t.Helper()
	return New(cat, criteria.NewResolver(), DefaultOptions(), nil)
}

func mappingSet(mappings []models.IdMapping) map[string]int {
	set := make(map[string]int, len(mappings))
	for _, m := range mappings {
		set[m.ExternalID] = m.MovieID
	}
	return set
}

func TestMatch_SingleRecordResolves(t *testing.T) {
	cat := buildCatalog(t,
		[]string{"1,Inception,2010"},
		[]string{"1,Christopher Nolan,director"},
	)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"MediaId":     "X1",
		"Title":       "Inception",
		"ReleaseDate": "2010-01-01",
		"Director":    "Christopher Nolan",
	}}

	mappings, stats := engine.Match(criteria.GooglePlay, records)

	assert.Equal(t, map[string]int{"X1": 1}, mappingSet(mappings))
	assert.Equal(t, RunStats{Processed: 1, Matched: 1, Skipped: 0}, stats)
}

func TestMatch_XboxCriteriaHaveNoDirector(t *testing.T) {
	cat := buildCatalog(t,
		[]string{"1,Inception,2010"},
		nil,
	)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"MediaId":             "AB12",
		"Title":               "Inception",
		"OriginalReleaseDate": "7/16/2010 12:00:00 AM",
	}}

	mappings, _ := engine.Match(criteria.Xbox, records)
	assert.Equal(t, map[string]int{"AB12": 1}, mappingSet(mappings))
}

func TestMatch_UnknownSourceUsesDefaultCriteria(t *testing.T) {
	cat := buildCatalog(t, []string{"1,Inception,2010"}, nil)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"MediaId":             "U1",
		"Title":               "Inception",
		"OriginalReleaseDate": "2010-07-16",
	}}

	mappings, _ := engine.Match(criteria.Unknown, records)
	assert.Equal(t, map[string]int{"U1": 1}, mappingSet(mappings))
}

func TestMatch_DirectorDisambiguatesWithinYear(t *testing.T) {
	// Two near-identical titles in the same year; only the director tells
	// them apart.
	cat := buildCatalog(t,
		[]string{
			"1,The Heist,2015",
			"2,The Heist!,2015",
		},
		[]string{
			"1,Alice Smith,director",
			"2,Bob Jones,director",
		},
	)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"MediaId":     "G1",
		"Title":       "The Heist",
		"ReleaseDate": "2015-06-01",
		"Director":    "Bob Jones",
	}}

	mappings, _ := engine.Match(criteria.GooglePlay, records)
	assert.Equal(t, map[string]int{"G1": 2}, mappingSet(mappings))
}

func TestMatch_MisspelledDirectorFallsBackToYearBucket(t *testing.T) {
	// The director filter is advisory: a director the reference index has
	// never heard of must not exclude an otherwise clean title/year match.
	// This trades precision for recall on feeds with dirty director data.
	cat := buildCatalog(t,
		[]string{"1,Inception,2010"},
		[]string{"1,Christopher Nolan,director"},
	)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"MediaId":     "G2",
		"Title":       "Inception",
		"ReleaseDate": "2010-07-16",
		"Director":    "Kristopher Nolen",
	}}

	mappings, _ := engine.Match(criteria.GooglePlay, records)
	assert.Equal(t, map[string]int{"G2": 1}, mappingSet(mappings))
}

func TestMatch_WrongYearProducesNoMapping(t *testing.T) {
	cat := buildCatalog(t, []string{"1,Inception,2010"}, nil)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"MediaId":             "X9",
		"Title":               "Inception",
		"OriginalReleaseDate": "1987-01-01",
	}}

	mappings, stats := engine.Match(criteria.Xbox, records)
	assert.Empty(t, mappings)
	assert.Equal(t, int64(1), stats.Skipped)
}

func TestMatch_UnmatchedTitleProducesNoMapping(t *testing.T) {
	cat := buildCatalog(t, []string{"1,The Matrix,1999"}, nil)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"MediaId":             "X10",
		"Title":               "The Notebook",
		"OriginalReleaseDate": "1999-03-31",
	}}

	mappings, _ := engine.Match(criteria.Xbox, records)
	assert.Empty(t, mappings)
}

func TestMatch_MissingMediaIdIsSkipped(t *testing.T) {
	cat := buildCatalog(t, []string{"1,Inception,2010"}, nil)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{{
		"Title":               "Inception",
		"OriginalReleaseDate": "2010-07-16",
	}}

	mappings, stats := engine.Match(criteria.Xbox, records)
	assert.Empty(t, mappings)
	assert.Equal(t, RunStats{Processed: 1, Matched: 0, Skipped: 1}, stats)
}

func TestMatch_FirstWriterWinsPerExternalID(t *testing.T) {
	cat := buildCatalog(t,
		[]string{
			"1,Inception,2010",
			"2,The Matrix,1999",
		},
		nil,
	)
	engine := newTestEngine(t, cat)

	// Both records carry the same external id but resolve to different
	// movies. Exactly one mapping may survive; which one depends on worker
	// scheduling, so assert on the set of valid outcomes.
	records := []csvdata.Record{
		{"MediaId": "DUP", "Title": "Inception", "OriginalReleaseDate": "2010-07-16"},
		{"MediaId": "DUP", "Title": "The Matrix", "OriginalReleaseDate": "1999-03-31"},
	}

	mappings, stats := engine.Match(criteria.Xbox, records)
	require.Len(t, mappings, 1)
	assert.Equal(t, "DUP", mappings[0].ExternalID)
	assert.Contains(t, []int{1, 2}, mappings[0].MovieID)
	assert.Equal(t, int64(1), stats.Matched)
	assert.Equal(t, int64(1), stats.Skipped)
}

func TestMatch_SeveralExternalIDsMayShareOneMovie(t *testing.T) {
	cat := buildCatalog(t, []string{"1,Inception,2010"}, nil)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{
		{"MediaId": "A", "Title": "Inception", "OriginalReleaseDate": "2010-07-16"},
		{"MediaId": "B", "Title": "Inception!", "OriginalReleaseDate": "2010-01-01"},
	}

	mappings, _ := engine.Match(criteria.Xbox, records)
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, mappingSet(mappings))
}

func TestMatch_AmbiguousCandidatesYieldOneValidWinner(t *testing.T) {
	// Two reference movies in the same year both pass the title threshold.
	// The engine may pick either but must pick exactly one.
	cat := buildCatalog(t,
		[]string{
			"1,Spider-Man,2002",
			"2,Spiderman,2002",
		},
		nil,
	)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{
		{"MediaId": "S1", "Title": "Spider Man", "OriginalReleaseDate": "2002-05-03"},
	}

	mappings, _ := engine.Match(criteria.Xbox, records)
	require.Len(t, mappings, 1)
	assert.Contains(t, []int{1, 2}, mappings[0].MovieID)
}

func TestMatch_ManyRecordsAcrossWorkers(t *testing.T) {
	movieRows := make([]string, 0, 200)
	records := make([]csvdata.Record, 0, 200)
	expected := make(map[string]int, 200)
	for i := 0; i < 200; i++ {
		id := i + 1
		year := 1800 + i
		title := fmt.Sprintf("Film Number %d", id)
		movieRows = append(movieRows, fmt.Sprintf("%d,%s,%d", id, title, year))

		externalID := fmt.Sprintf("EXT-%d", id)
		records = append(records, csvdata.Record{
			"MediaId":             externalID,
			"Title":               title,
			"OriginalReleaseDate": fmt.Sprintf("%d-01-01", year),
		})
		expected[externalID] = id
	}

	cat := buildCatalog(t, movieRows, nil)
	engine := New(cat, criteria.NewResolver(), Options{Workers: 8}, nil)

	mappings, stats := engine.Match(criteria.Xbox, records)
	assert.Equal(t, expected, mappingSet(mappings))
	assert.Equal(t, int64(200), stats.Processed)
	assert.Equal(t, int64(200), stats.Matched)
}

func TestMatch_RepeatedRunsYieldSameMappingSet(t *testing.T) {
	cat := buildCatalog(t,
		[]string{
			"1,Inception,2010",
			"2,Shutter Island,2010",
			"3,The Matrix,1999",
		},
		nil,
	)
	engine := newTestEngine(t, cat)

	records := []csvdata.Record{
		{"MediaId": "A", "Title": "Inception", "OriginalReleaseDate": "2010-07-16"},
		{"MediaId": "B", "Title": "Shutter Island", "OriginalReleaseDate": "2010-02-19"},
		{"MediaId": "C", "Title": "The Matrix", "OriginalReleaseDate": "1999-03-31"},
		{"MediaId": "D", "Title": "Unknown Film", "OriginalReleaseDate": "2010-01-01"},
	}

	first, _ := engine.Match(criteria.Xbox, records)
	second, _ := engine.Match(criteria.Xbox, records)
	assert.Equal(t, mappingSet(first), mappingSet(second))
}

func TestMatch_NoRecords(t *testing.T) {
	cat := buildCatalog(t, []string{"1,Inception,2010"}, nil)
	engine := newTestEngine(t, cat)

	mappings, stats := engine.Match(criteria.Xbox, nil)
	assert.Empty(t, mappings)
	assert.Equal(t, RunStats{}, stats)
}
