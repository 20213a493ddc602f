// Package normalize holds the pure string routines the matcher compares
// catalog data with: title normalization, fuzzy title comparison, and year
// extraction from heterogeneous date text. All functions are deterministic
// and never fail.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hbollon/go-edlib"
)

// TitleMatchThreshold is the Jaro-Winkler similarity two normalized titles
// must strictly exceed to be considered the same movie. Fixed policy
// constant; expected fixtures depend on this exact value.
const TitleMatchThreshold = 0.9

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonTitleRunes  = regexp.MustCompile(`[^a-z0-9 ]`)
	yearToken      = regexp.MustCompile(`\b\d{4}\b`)
)

// dateLayouts are tried in order against external date text. The list covers
// the datetime-with-AM/PM format used by console storefronts plus the common
// date-only variants.
var dateLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// Title lowercases s, collapses whitespace runs to single spaces, strips
// every rune that is not a lowercase ASCII letter, digit, or space, and
// trims the result. Idempotent. Director names are normalized with this
// same routine before indexing and lookup.
func Title(s string) string {
	s = strings.ToLower(s)
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = nonTitleRunes.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// TitlesMatch reports whether two raw titles normalize to forms whose
// Jaro-Winkler similarity exceeds TitleMatchThreshold. Jaro-Winkler rewards
// shared prefixes and tolerates the small transpositions common in
// crowd-sourced catalog titles.
func TitlesMatch(a, b string) bool {
	return float64(edlib.JaroWinklerSimilarity(Title(a), Title(b))) > TitleMatchThreshold
}

// ExtractYear derives a comparable release year from arbitrary date text.
// Each known layout is tried in order; on the first successful parse the
// parsed year is returned. When no layout matches, the first standalone
// 4-digit token in the text wins. Returns 0 when no year can be determined.
func ExtractYear(dateText string) int {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateText); err == nil {
			return t.Year()
		}
	}
	if token := yearToken.FindString(dateText); token != "" {
		year, err := strconv.Atoi(token)
		if err == nil {
			return year
		}
	}
	return 0
}

// YearsWithin reports whether two years differ by at most one. It is a
// reusable primitive; the engine's candidate filter uses exact year buckets
// and does not call it.
func YearsWithin(y1, y2 int) bool {
	diff := y1 - y2
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}
