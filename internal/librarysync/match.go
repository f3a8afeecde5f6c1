package librarysync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"jukebox/internal/catalog"
	"jukebox/internal/filename"
	"jukebox/internal/logging"
	"jukebox/internal/metadata"
)

// ErrMetadataUnavailable is returned by Match when the provider has no
// metadata to offer, either because lookups are disabled or the id is unknown.
var ErrMetadataUnavailable = errors.New("tmdb metadata unavailable")

// Matcher fetches enrichment for a known TMDB movie id.
type Matcher interface {
	FetchByID(ctx context.Context, providerID int64) (*metadata.Metadata, error)
}

// Match pins the entry with id to providerID. Every enrichment field is
// replaced, so values left over from an earlier wrong match are cleared.
func Match(ctx context.Context, store *catalog.Store, meta Matcher, logger *slog.Logger, id, providerID int64) (*catalog.Entry, error) {
	logger = logging.NewComponentLogger(logger, "librarysync")

	entry, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load entry %d: %w", id, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %d: %w", id, catalog.ErrNotFound)
	}

	fetched, err := meta.FetchByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch tmdb %d: %w", providerID, err)
	}
	if fetched == nil {
		return nil, fmt.Errorf("tmdb %d: %w", providerID, ErrMetadataUnavailable)
	}

	replaceMetadata(entry, fetched)
	entry.UpdatedAt = time.Now().UTC()
	if err := store.Save(ctx, entry); err != nil {
		return nil, err
	}
	logging.WithContext(ctx, logger).Info("entry matched",
		logging.Int64("entry_id", entry.ID),
		logging.Int64("tmdb_id", providerID),
		logging.String(logging.FieldPath, entry.FilePath),
		logging.String("title", entry.Title),
	)
	return entry, nil
}

// replaceMetadata overwrites all enrichment fields with meta, unlike
// applyMetadata which only fills gaps.
func replaceMetadata(entry *catalog.Entry, meta *metadata.Metadata) {
	title := meta.Title
	if title == "" {
		title = filename.Parse(entry.FileName).Title
	}
	id := meta.ProviderID
	entry.Title = title
	entry.Year = meta.Year
	entry.ProviderID = &id
	entry.Overview = meta.Overview
	entry.Runtime = meta.Runtime
	entry.Genres = meta.Genres
	entry.Rating = meta.Rating
	entry.PosterRef = meta.PosterRef
	entry.BackdropRef = meta.BackdropRef
	entry.TrailerRef = meta.TrailerRef
}
