package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"jukebox/internal/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := tmdb.New("key", " ", ""); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchMovieSendsQueryAndYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "key" {
			t.Errorf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		if q.Get("query") != "Jurassic Park" || q.Get("year") != "1993" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if q.Get("language") != "en-US" {
			t.Errorf("expected language, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":329,"title":"Jurassic Park","release_date":"1993-06-11"}],"total_results":1}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL+"/", "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.SearchMovie(context.Background(), "Jurassic Park", tmdb.SearchOptions{Year: 1993})
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 329 {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestSearchMovieOmitsYearWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("year") {
			t.Errorf("did not expect year parameter: %q", r.URL.RawQuery)
		}
		if r.URL.Query().Has("language") {
			t.Errorf("did not expect language parameter: %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := client.SearchMovie(context.Background(), "Unknown Movie", tmdb.SearchOptions{})
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected no results, got %#v", resp.Results)
	}
}

func TestSearchMovieHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.SearchMovie(context.Background(), "fail", tmdb.SearchOptions{})
	var statusErr *tmdb.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized || statusErr.Endpoint != "search" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestSearchMovieEmptyQuery(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "  ", tmdb.SearchOptions{}); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestGetMovieDetailsAndVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/329":
			_, _ = w.Write([]byte(`{"id":329,"title":"Jurassic Park","release_date":"1993-06-11","runtime":127,
				"genres":[{"id":12,"name":"Adventure"},{"id":878,"name":"Science Fiction"}],
				"vote_average":7.9,"poster_path":"/poster.jpg","backdrop_path":null}`))
		case "/movie/329/videos":
			_, _ = w.Write([]byte(`{"id":329,"results":[{"key":"lc0UehYemQA","site":"YouTube","type":"Trailer"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := context.Background()

	details, err := client.GetMovieDetails(ctx, 329)
	if err != nil {
		t.Fatalf("GetMovieDetails returned error: %v", err)
	}
	if details.Runtime == nil || *details.Runtime != 127 {
		t.Fatalf("unexpected runtime %v", details.Runtime)
	}
	if len(details.Genres) != 2 || details.Genres[1].Name != "Science Fiction" {
		t.Fatalf("unexpected genres %#v", details.Genres)
	}
	if details.BackdropPath != "" {
		t.Fatalf("expected empty backdrop for null, got %q", details.BackdropPath)
	}

	videos, err := client.GetMovieVideos(ctx, 329)
	if err != nil {
		t.Fatalf("GetMovieVideos returned error: %v", err)
	}
	if len(videos.Results) != 1 || videos.Results[0].Key != "lc0UehYemQA" {
		t.Fatalf("unexpected videos %#v", videos)
	}

	if _, err := client.GetMovieDetails(ctx, 0); err == nil {
		t.Fatal("expected error for non-positive id")
	}
	_, err = client.GetMovieVideos(ctx, 1)
	var statusErr *tmdb.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestRateLimitSpacesRequests(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", tmdb.WithRateLimit(rate.Every(time.Hour), 1))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "first", tmdb.SearchOptions{}); err != nil {
		t.Fatalf("first request should use the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.SearchMovie(ctx, "second", tmdb.SearchOptions{}); err == nil {
		t.Fatal("expected second request to be throttled")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single request to reach the server, got %d", got)
	}
}
