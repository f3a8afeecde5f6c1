package api

import (
	"context"

	"jukebox/internal/catalog"
	"jukebox/internal/metadata"
)

// LibraryReader abstracts the catalog reads needed by the API.
type LibraryReader interface {
	List(ctx context.Context) ([]*catalog.Entry, error)
	GetByID(ctx context.Context, id int64) (*catalog.Entry, error)
}

// LibraryService exposes read-only catalog operations returning API DTOs.
type LibraryService struct {
	store  LibraryReader
	images metadata.Images
}

// NewLibraryService constructs a LibraryService around the provided reader.
func NewLibraryService(store LibraryReader, images metadata.Images) *LibraryService {
	if store == nil {
		return nil
	}
	return &LibraryService{store: store, images: images}
}

// List returns every catalog entry ordered by title.
func (s *LibraryService) List(ctx context.Context) ([]Movie, error) {
	if s == nil || s.store == nil {
		return []Movie{}, nil
	}
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromEntries(entries, s.images), nil
}

// Describe fetches a single entry; it returns nil when absent.
func (s *LibraryService) Describe(ctx context.Context, id int64) (*Movie, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	entry, err := s.store.GetByID(ctx, id)
	if err != nil || entry == nil {
		return nil, err
	}
	movie := FromEntry(entry, s.images)
	return &movie, nil
}

// FilePath returns the on-disk path for an entry, or "" when absent.
func (s *LibraryService) FilePath(ctx context.Context, id int64) (string, error) {
	if s == nil || s.store == nil {
		return "", nil
	}
	entry, err := s.store.GetByID(ctx, id)
	if err != nil || entry == nil {
		return "", err
	}
	return entry.FilePath, nil
}
