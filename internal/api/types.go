package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Movie describes a catalog entry in a transport-friendly format.
type Movie struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Year         *int     `json:"year"`
	FilePath     string   `json:"filePath"`
	FileName     string   `json:"fileName"`
	FileSize     *int64   `json:"fileSize"`
	Extension    string   `json:"extension"`
	TMDBID       *int64   `json:"tmdbId"`
	Overview     *string  `json:"overview"`
	Runtime      *int     `json:"runtime"`
	Genres       []string `json:"genres"`
	Rating       *float64 `json:"rating"`
	PosterPath   *string  `json:"posterPath"`
	BackdropPath *string  `json:"backdropPath"`
	TrailerKey   *string  `json:"trailerKey"`
	PosterURL    string   `json:"posterUrl,omitempty"`
	BackdropURL  string   `json:"backdropUrl,omitempty"`
	TrailerURL   string   `json:"trailerUrl,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IndexResponse is returned by GET /api.
type IndexResponse struct {
	Message string `json:"message"`
}
