package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// API defines the TMDB operations used by the metadata client.
type API interface {
	SearchMovie(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error)
	GetMovieVideos(ctx context.Context, movieID int64) (*VideosResponse, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey      string
	baseURL     string
	language    string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

var _ API = (*Client)(nil)

// StatusError reports a non-200 TMDB response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Latency    time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned %d (latency=%v)", e.Endpoint, e.StatusCode, e.Latency)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit spaces requests to at most limit per second with the given
// burst. A non-positive limit disables throttling.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			c.rateLimiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.rateLimiter = rate.NewLimiter(limit, burst)
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchOptions contains optional parameters for TMDB movie search.
type SearchOptions struct {
	Year int
}

// SearchMovie searches TMDB movies for query, constrained to opts.Year when set.
func (c *Client) SearchMovie(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	if opts.Year > 0 {
		params.Set("year", strconv.Itoa(opts.Year))
	}

	var payload SearchResponse
	if err := c.get(ctx, "search", "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB ID.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload MovieDetails
	if err := c.get(ctx, "movie details", fmt.Sprintf("/movie/%d", movieID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieVideos fetches the trailers, teasers, and clips listed for a movie.
func (c *Client) GetMovieVideos(ctx context.Context, movieID int64) (*VideosResponse, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload VideosResponse
	if err := c.get(ctx, "movie videos", fmt.Sprintf("/movie/%d/videos", movieID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, name, path string, params url.Values, dest any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for tmdb rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: name, StatusCode: resp.StatusCode, Latency: latency}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode tmdb %s: %w", name, err)
	}
	return nil
}
