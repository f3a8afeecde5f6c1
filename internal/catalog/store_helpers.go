package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const entryColumns = "id, title, file_path, file_name, file_size, extension, year, tmdb_id, overview, runtime, genres, rating, poster_path, backdrop_path, trailer_key, created_at, updated_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id           int64
		title        string
		filePath     string
		fileName     string
		fileSize     sql.NullInt64
		extension    sql.NullString
		year         sql.NullInt64
		tmdbID       sql.NullInt64
		overview     sql.NullString
		runtime      sql.NullInt64
		genres       sql.NullString
		rating       sql.NullFloat64
		posterPath   sql.NullString
		backdropPath sql.NullString
		trailerKey   sql.NullString
		createdAt    int64
		updatedAt    int64
	)

	if err := scanner.Scan(
		&id,
		&title,
		&filePath,
		&fileName,
		&fileSize,
		&extension,
		&year,
		&tmdbID,
		&overview,
		&runtime,
		&genres,
		&rating,
		&posterPath,
		&backdropPath,
		&trailerKey,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:          id,
		Title:       title,
		FilePath:    filePath,
		FileName:    fileName,
		FileSize:    int64Ptr(fileSize),
		Extension:   extension.String,
		Year:        intPtr(year),
		ProviderID:  int64Ptr(tmdbID),
		Overview:    stringPtr(overview),
		Runtime:     intPtr(runtime),
		Rating:      float64Ptr(rating),
		PosterRef:   stringPtr(posterPath),
		BackdropRef: stringPtr(backdropPath),
		TrailerRef:  stringPtr(trailerKey),
		CreatedAt:   time.Unix(createdAt, 0).UTC(),
		UpdatedAt:   time.Unix(updatedAt, 0).UTC(),
	}
	if genres.Valid && genres.String != "" {
		if err := json.Unmarshal([]byte(genres.String), &entry.Genres); err != nil {
			return nil, fmt.Errorf("decode genres for %s: %w", filePath, err)
		}
	}
	return entry, nil
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt64(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableGenres(genres []string) (any, error) {
	if genres == nil {
		return nil, nil
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return nil, fmt.Errorf("encode genres: %w", err)
	}
	return string(data), nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func float64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func epoch(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().Unix()
	}
	return t.Unix()
}
