package metadata

// Metadata is the enrichment attached to a catalog entry.
type Metadata struct {
	ProviderID  int64
	Title       string
	Year        *int
	Overview    *string
	Runtime     *int
	Genres      []string
	Rating      *float64
	PosterRef   *string
	BackdropRef *string
	TrailerRef  *string
}
