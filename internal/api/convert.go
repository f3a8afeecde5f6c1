package api

import (
	"jukebox/internal/catalog"
	"jukebox/internal/metadata"
)

// FromEntry converts a catalog entry into its API representation.
func FromEntry(entry *catalog.Entry, images metadata.Images) Movie {
	if entry == nil {
		return Movie{}
	}
	movie := Movie{
		ID:           entry.ID,
		Title:        entry.Title,
		Year:         entry.Year,
		FilePath:     entry.FilePath,
		FileName:     entry.FileName,
		FileSize:     entry.FileSize,
		Extension:    entry.Extension,
		TMDBID:       entry.ProviderID,
		Overview:     entry.Overview,
		Runtime:      entry.Runtime,
		Genres:       entry.Genres,
		Rating:       entry.Rating,
		PosterPath:   entry.PosterRef,
		BackdropPath: entry.BackdropRef,
		TrailerKey:   entry.TrailerRef,
	}
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	if entry.PosterRef != nil {
		movie.PosterURL = images.PosterURL(*entry.PosterRef, "")
	}
	if entry.BackdropRef != nil {
		movie.BackdropURL = images.BackdropURL(*entry.BackdropRef, "")
	}
	if entry.TrailerRef != nil {
		movie.TrailerURL = metadata.TrailerURL(*entry.TrailerRef)
	}
	if !entry.CreatedAt.IsZero() {
		movie.CreatedAt = entry.CreatedAt.UTC().Format(dateTimeFormat)
	}
	if !entry.UpdatedAt.IsZero() {
		movie.UpdatedAt = entry.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return movie
}

// FromEntries converts a slice of entries, preserving order.
func FromEntries(entries []*catalog.Entry, images metadata.Images) []Movie {
	movies := make([]Movie, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		movies = append(movies, FromEntry(entry, images))
	}
	return movies
}
