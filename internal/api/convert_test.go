package api

import (
	"testing"
	"time"

	"jukebox/internal/catalog"
	"jukebox/internal/metadata"
)

func TestFromEntryBuildsURLs(t *testing.T) {
	poster, backdrop, trailer := "/p.jpg", "/b.jpg", "abc123"
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	movie := FromEntry(&catalog.Entry{
		ID:          7,
		Title:       "Heat",
		PosterRef:   &poster,
		BackdropRef: &backdrop,
		TrailerRef:  &trailer,
		CreatedAt:   created,
	}, metadata.NewImages("https://img.example/t/p/"))

	if movie.PosterURL != "https://img.example/t/p/w500/p.jpg" {
		t.Fatalf("unexpected poster url %q", movie.PosterURL)
	}
	if movie.BackdropURL != "https://img.example/t/p/w1280/b.jpg" {
		t.Fatalf("unexpected backdrop url %q", movie.BackdropURL)
	}
	if movie.TrailerURL != metadata.TrailerURL(trailer) {
		t.Fatalf("unexpected trailer url %q", movie.TrailerURL)
	}
	if movie.CreatedAt != "2024-03-01T12:00:00.000Z" {
		t.Fatalf("unexpected createdAt %q", movie.CreatedAt)
	}
	if movie.UpdatedAt != "" {
		t.Fatalf("expected empty updatedAt, got %q", movie.UpdatedAt)
	}
	if movie.Genres == nil {
		t.Fatal("expected non-nil genres")
	}
}

func TestFromEntryWithoutEnrichment(t *testing.T) {
	movie := FromEntry(&catalog.Entry{ID: 1, Title: "Home Video"}, metadata.NewImages(""))
	if movie.PosterURL != "" || movie.BackdropURL != "" || movie.TrailerURL != "" {
		t.Fatalf("expected no URLs, got %+v", movie)
	}
	if len(FromEntries([]*catalog.Entry{nil, {ID: 2}}, metadata.NewImages(""))) != 1 {
		t.Fatal("expected nil entries to be skipped")
	}
}

func TestContentType(t *testing.T) {
	cases := map[string]string{
		"/m/a.mp4":  "video/mp4",
		"/m/a.MKV":  "video/x-matroska",
		"/m/a.webm": "video/webm",
		"/m/a.mov":  "video/quicktime",
		"/m/a.png":  "image/png",
		"/m/a":      "video/mp4",
	}
	for path, want := range cases {
		if got := contentType(path); got != want {
			t.Errorf("%s: content type = %q, want %q", path, got, want)
		}
	}
}
