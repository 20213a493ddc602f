// Package criteria maps external source types to the column names the
// matcher reads from that source's records. Each external catalog names its
// title, date, and director columns differently; the resolver is the single
// place that knows the per-source layout.
package criteria

// SourceType identifies a known external catalog.
type SourceType int

const (
	// Unknown is any source the resolver has no entry for; it resolves to
	// the default criteria rather than failing.
	Unknown SourceType = iota
	Xbox
	GooglePlay
)

func (s SourceType) String() string {
	switch s {
	case Xbox:
		return "xbox"
	case GooglePlay:
		return "google_play"
	default:
		return "unknown"
	}
}

// SourceTypeFromFlag converts a CLI flag value to a SourceType. Anything
// unrecognized maps to Unknown.
func SourceTypeFromFlag(flag string) SourceType {
	switch flag {
	case "xbox":
		return Xbox
	case "google_play":
		return GooglePlay
	default:
		return Unknown
	}
}

// Criteria names the columns to read from one source's records. An empty
// DirectorField means the source carries no director information.
type Criteria struct {
	TitleField    string
	DateField     string
	DirectorField string
}

// HasDirector reports whether this source exposes a director column.
func (c Criteria) HasDirector() bool {
	return c.DirectorField != ""
}

// defaultCriteria is used for sources the resolver does not recognize.
var defaultCriteria = Criteria{TitleField: "Title", DateField: "OriginalReleaseDate"}

// Resolver is an explicitly constructed lookup from source type to
// criteria. It is a plain value handed to the engine at construction time;
// new source types are added with Register, not by patching global state.
type Resolver struct {
	bySource map[SourceType]Criteria
}

// NewResolver returns a resolver pre-populated with the known external
// catalogs.
func NewResolver() *Resolver {
	r := &Resolver{bySource: make(map[SourceType]Criteria)}
	r.Register(Xbox, Criteria{TitleField: "Title", DateField: "OriginalReleaseDate"})
	r.Register(GooglePlay, Criteria{TitleField: "Title", DateField: "ReleaseDate", DirectorField: "Director"})
	return r
}

// Register adds or replaces the criteria for a source type.
func (r *Resolver) Register(source SourceType, c Criteria) {
	r.bySource[source] = c
}

// Resolve returns the criteria for a source, falling back to the default
// {Title, OriginalReleaseDate, no director} layout for unregistered sources.
func (r *Resolver) Resolve(source SourceType) Criteria {
	if c, ok := r.bySource[source]; ok {
		return c
	}
	return defaultCriteria
}
