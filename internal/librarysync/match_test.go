package librarysync_test

import (
	"context"
	"errors"
	"testing"

	"jukebox/internal/catalog"
	"jukebox/internal/librarysync"
	"jukebox/internal/metadata"
	"jukebox/internal/testsupport"
)

type stubMatcher struct {
	meta  map[int64]*metadata.Metadata
	err   error
	calls []int64
}

func (s *stubMatcher) FetchByID(_ context.Context, providerID int64) (*metadata.Metadata, error) {
	s.calls = append(s.calls, providerID)
	if s.err != nil {
		return nil, s.err
	}
	return s.meta[providerID], nil
}

func TestMatchReplacesEnrichment(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	entry := &catalog.Entry{
		FilePath:   "/movies/Heat.1995.mkv",
		FileName:   "Heat.1995.mkv",
		Extension:  ".mkv",
		Title:      "Heat Wave",
		Year:       ptr(2022),
		ProviderID: ptr(int64(1)),
		Overview:   ptr("wrong movie"),
		Genres:     []string{"Documentary"},
		TrailerRef: ptr("wrong-trailer"),
	}
	if err := store.Upsert(ctx, entry); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	matcher := &stubMatcher{meta: map[int64]*metadata.Metadata{
		949: {ProviderID: 949, Title: "Heat", Year: ptr(1995), Runtime: ptr(170), Genres: []string{"Crime"}},
	}}
	matched, err := librarysync.Match(ctx, store, matcher, nil, entry.ID, 949)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if matched.Title != "Heat" {
		t.Fatalf("unexpected title %q", matched.Title)
	}

	got, err := store.GetByID(ctx, entry.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %#v, %v", got, err)
	}
	if got.ProviderID == nil || *got.ProviderID != 949 {
		t.Fatalf("unexpected provider id %v", got.ProviderID)
	}
	if got.Year == nil || *got.Year != 1995 || got.Runtime == nil || *got.Runtime != 170 {
		t.Fatalf("unexpected year/runtime %#v", got)
	}
	if got.Overview != nil || got.TrailerRef != nil {
		t.Fatalf("expected stale overview and trailer cleared, got %#v", got)
	}
	if len(got.Genres) != 1 || got.Genres[0] != "Crime" {
		t.Fatalf("unexpected genres %v", got.Genres)
	}
	if got.FilePath != entry.FilePath || got.FileName != entry.FileName {
		t.Fatalf("filesystem fields changed: %#v", got)
	}
}

func TestMatchErrors(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	entry := &catalog.Entry{FilePath: "/movies/x.mkv", FileName: "x.mkv", Title: "x"}
	if err := store.Upsert(ctx, entry); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	matcher := &stubMatcher{meta: map[int64]*metadata.Metadata{}}
	if _, err := librarysync.Match(ctx, store, matcher, nil, 999, 949); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(matcher.calls) != 0 {
		t.Fatal("missing entry must not reach TMDB")
	}

	if _, err := librarysync.Match(ctx, store, matcher, nil, entry.ID, 949); !errors.Is(err, librarysync.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}

	boom := errors.New("tmdb down")
	matcher.err = boom
	if _, err := librarysync.Match(ctx, store, matcher, nil, entry.ID, 949); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	got, _ := store.GetByID(ctx, entry.ID)
	if got.ProviderID != nil || got.Title != "x" {
		t.Fatalf("failed match must leave the entry untouched, got %#v", got)
	}
}
