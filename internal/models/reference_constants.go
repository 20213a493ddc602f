package models

// Column names shared by every supported dataset
const (
	// FieldMediaID is the external identifier column present in every external feed
	FieldMediaID = "MediaId"
	// RoleDirector is the credits role that feeds the director index (case-sensitive)
	RoleDirector = "director"
)

// Reference dataset column names
const (
	FieldMovieID      = "id"
	FieldMovieTitle   = "title"
	FieldMovieYear    = "year"
	FieldCreditMovie  = "movie_id"
	FieldCreditName   = "name"
	FieldCreditRole   = "role"
	YearUnknownMarker = "NULL"
)
