package catalog

import "time"

// Entry is one catalogued video file.
type Entry struct {
	ID        int64
	FilePath  string
	FileName  string
	FileSize  *int64
	Extension string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Title is the parsed title until the entry is enriched, then the
	// provider's title.
	Title string
	Year  *int

	ProviderID  *int64
	Overview    *string
	Runtime     *int
	Genres      []string
	Rating      *float64
	PosterRef   *string
	BackdropRef *string
	TrailerRef  *string
}

// Enriched reports whether provider metadata has been attached.
func (e *Entry) Enriched() bool {
	return e != nil && e.ProviderID != nil
}

// HasTrailer reports whether a trailer reference is stored.
func (e *Entry) HasTrailer() bool {
	return e != nil && e.TrailerRef != nil
}

// Stats summarises catalog coverage.
type Stats struct {
	Total       int
	Enriched    int
	WithTrailer int
}
