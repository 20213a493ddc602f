package models

// Movie is a single title from the reference catalog. A Year of 0 means the
// release year is unknown.
type Movie struct {
	ID    int
	Title string
	Year  int
}

// CreditedPerson links a person to a movie in the reference credits dataset.
type CreditedPerson struct {
	MovieID int
	Name    string
	Role    string
}

// IdMapping resolves one external record to a reference movie. ExternalID is
// unique within a match run; MovieID is not (several external records may map
// to the same movie).
type IdMapping struct {
	MovieID    int    `json:"movieId"`
	ExternalID string `json:"externalId"`
}
