package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by writes that target a missing row.
var ErrNotFound = errors.New("catalog entry not found")

// GetByPath fetches the entry for an absolute file path. It returns nil, nil
// when no row exists.
func (s *Store) GetByPath(ctx context.Context, path string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM movies WHERE file_path = ?`, path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry by path: %w", err)
	}
	return entry, nil
}

// GetByID fetches an entry by identifier. It returns nil, nil when no row exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM movies WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// List returns every entry ordered by title.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM movies ORDER BY title COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of catalogued files.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// Stats reports how many entries are enriched and how many carry a trailer.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COUNT(tmdb_id), COUNT(trailer_key) FROM movies`,
	).Scan(&stats.Total, &stats.Enriched, &stats.WithTrailer)
	if err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	return stats, nil
}

// Upsert inserts entry or updates the row sharing its file path. The
// original created_at is preserved, enrichment columns keep their stored
// value when entry leaves them nil, and entry.ID is set from the row.
func (s *Store) Upsert(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return errors.New("entry is nil")
	}
	if entry.FilePath == "" {
		return errors.New("entry file path is required")
	}
	ctx = ensureContext(ctx)
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = now
	}
	genres, err := nullableGenres(entry.Genres)
	if err != nil {
		return err
	}

	args := []any{
		entry.Title,
		entry.FilePath,
		entry.FileName,
		nullableInt64(entry.FileSize),
		entry.Extension,
		nullableInt(entry.Year),
		nullableInt64(entry.ProviderID),
		nullableString(entry.Overview),
		nullableInt(entry.Runtime),
		genres,
		nullableFloat(entry.Rating),
		nullableString(entry.PosterRef),
		nullableString(entry.BackdropRef),
		nullableString(entry.TrailerRef),
		epoch(entry.CreatedAt),
		epoch(entry.UpdatedAt),
	}

	var (
		id        int64
		createdAt int64
	)
	err = retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(
			ctx,
			`INSERT INTO movies (
                title, file_path, file_name, file_size, extension, year,
                tmdb_id, overview, runtime, genres, rating,
                poster_path, backdrop_path, trailer_key, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(file_path) DO UPDATE SET
                title = excluded.title,
                file_name = excluded.file_name,
                file_size = excluded.file_size,
                extension = excluded.extension,
                year = COALESCE(excluded.year, movies.year),
                tmdb_id = COALESCE(excluded.tmdb_id, movies.tmdb_id),
                overview = COALESCE(excluded.overview, movies.overview),
                runtime = COALESCE(excluded.runtime, movies.runtime),
                genres = COALESCE(excluded.genres, movies.genres),
                rating = COALESCE(excluded.rating, movies.rating),
                poster_path = COALESCE(excluded.poster_path, movies.poster_path),
                backdrop_path = COALESCE(excluded.backdrop_path, movies.backdrop_path),
                trailer_key = COALESCE(excluded.trailer_key, movies.trailer_key),
                updated_at = excluded.updated_at
            RETURNING id, created_at`,
			args...,
		).Scan(&id, &createdAt)
	})
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = time.Unix(createdAt, 0).UTC()
	return nil
}

// Save overwrites every column of an existing row identified by entry.ID.
func (s *Store) Save(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return errors.New("entry is nil")
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}
	genres, err := nullableGenres(entry.Genres)
	if err != nil {
		return err
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE movies
         SET title = ?, file_path = ?, file_name = ?, file_size = ?, extension = ?, year = ?,
             tmdb_id = ?, overview = ?, runtime = ?, genres = ?, rating = ?,
             poster_path = ?, backdrop_path = ?, trailer_key = ?, updated_at = ?
         WHERE id = ?`,
		entry.Title,
		entry.FilePath,
		entry.FileName,
		nullableInt64(entry.FileSize),
		entry.Extension,
		nullableInt(entry.Year),
		nullableInt64(entry.ProviderID),
		nullableString(entry.Overview),
		nullableInt(entry.Runtime),
		genres,
		nullableFloat(entry.Rating),
		nullableString(entry.PosterRef),
		nullableString(entry.BackdropRef),
		nullableString(entry.TrailerRef),
		epoch(entry.UpdatedAt),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	return requireRow(res, entry.ID)
}

// TouchFile refreshes the filesystem columns of the row for path.
func (s *Store) TouchFile(ctx context.Context, path string, size *int64, ext string, at time.Time) error {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE movies SET file_size = ?, extension = ?, updated_at = ? WHERE file_path = ?`,
		nullableInt64(size),
		ext,
		epoch(at),
		path,
	)
	if err != nil {
		return fmt.Errorf("touch entry: %w", err)
	}
	return requireRow(res, path)
}

func requireRow(res interface{ RowsAffected() (int64, error) }, key any) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return nil
}
