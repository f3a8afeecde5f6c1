package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"jukebox/internal/config"
	"jukebox/internal/filename"
	"jukebox/internal/logging"
	"jukebox/internal/textutil"
	"jukebox/internal/tmdb"
)

// lowConfidenceScore is the title similarity below which a match is logged.
const lowConfidenceScore = 0.3

// Config controls whether enrichment runs.
type Config struct {
	Enabled bool
}

// Client fetches enrichment for parsed titles.
type Client struct {
	cfg    Config
	api    tmdb.API
	logger *slog.Logger
}

// New creates a metadata client over api. A nil api behaves as disabled.
func New(cfg Config, api tmdb.API, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		api:    api,
		logger: logging.NewComponentLogger(logger, "metadata"),
	}
}

// NewFromConfig builds a client from application config. Without a TMDB
// credential the returned client is disabled.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil || !cfg.TMDBEnabled() {
		return New(Config{Enabled: false}, nil, logger), nil
	}
	api, err := tmdb.New(
		cfg.TMDB.APIKey,
		cfg.TMDB.BaseURL,
		cfg.TMDB.Language,
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDBTimeout()}),
		tmdb.WithRateLimit(rate.Limit(cfg.TMDB.RequestsPerSecond), 1),
	)
	if err != nil {
		return nil, fmt.Errorf("create tmdb client: %w", err)
	}
	return New(Config{Enabled: true}, api, logger), nil
}

// Enabled reports whether lookups reach TMDB.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.Enabled && c.api != nil
}

// FetchMetadata looks up title (constrained to year when non-nil) and returns
// the enrichment for the top match. It returns nil, nil when the client is
// disabled or the search finds nothing.
func (c *Client) FetchMetadata(ctx context.Context, title string, year *int) (*Metadata, error) {
	if !c.Enabled() {
		return nil, nil
	}
	match, err := c.search(ctx, title, year)
	if err != nil || match == nil {
		return nil, err
	}

	return c.fetch(ctx, *match)
}

// FetchByID returns the enrichment for a known TMDB movie id without
// searching. It returns nil, nil when the client is disabled.
func (c *Client) FetchByID(ctx context.Context, providerID int64) (*Metadata, error) {
	if !c.Enabled() {
		return nil, nil
	}
	return c.fetch(ctx, tmdb.SearchResult{ID: providerID})
}

// fetch loads details and videos for match concurrently.
func (c *Client) fetch(ctx context.Context, match tmdb.SearchResult) (*Metadata, error) {
	var (
		details *tmdb.MovieDetails
		videos  *tmdb.VideosResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := c.api.GetMovieDetails(gctx, match.ID)
		if err != nil {
			return fmt.Errorf("fetch details for tmdb %d: %w", match.ID, err)
		}
		details = d
		return nil
	})
	g.Go(func() error {
		v, err := c.api.GetMovieVideos(gctx, match.ID)
		if err != nil {
			return fmt.Errorf("fetch videos for tmdb %d: %w", match.ID, err)
		}
		videos = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildMetadata(match, details, videos), nil
}

// FetchTrailer returns the preferred trailer key for an already enriched
// entry. It returns nil, nil when the client is disabled or no trailer is
// listed.
func (c *Client) FetchTrailer(ctx context.Context, providerID int64) (*string, error) {
	if !c.Enabled() {
		return nil, nil
	}
	videos, err := c.api.GetMovieVideos(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch videos for tmdb %d: %w", providerID, err)
	}
	if videos == nil {
		return nil, nil
	}
	return SelectTrailer(videos.Results), nil
}

func (c *Client) search(ctx context.Context, title string, year *int) (*tmdb.SearchResult, error) {
	opts := tmdb.SearchOptions{}
	if year != nil {
		opts.Year = *year
	}

	resp, err := c.api.SearchMovie(ctx, title, opts)
	if err != nil {
		return nil, fmt.Errorf("search tmdb for %q: %w", title, err)
	}
	if resp != nil && len(resp.Results) > 0 {
		c.checkMatch(ctx, title, resp.Results[0])
		return &resp.Results[0], nil
	}

	hint := filename.DisplayTitle(title)
	if hint == "" || strings.EqualFold(hint, title) {
		return nil, nil
	}
	c.logger.Debug("retrying tmdb search with display title",
		logging.String("title", title),
		logging.String("query", hint),
	)
	resp, err = c.api.SearchMovie(ctx, hint, opts)
	if err != nil {
		return nil, fmt.Errorf("search tmdb for %q: %w", hint, err)
	}
	if resp != nil && len(resp.Results) > 0 {
		c.checkMatch(ctx, hint, resp.Results[0])
		return &resp.Results[0], nil
	}
	return nil, nil
}

// checkMatch warns when the top search result barely resembles the query.
// The result is still used.
func (c *Client) checkMatch(ctx context.Context, query string, match tmdb.SearchResult) {
	score, ok := textutil.TitleSimilarity(query, match.Title)
	if !ok {
		return
	}
	if original, ok := textutil.TitleSimilarity(query, match.OriginalTitle); ok && original > score {
		score = original
	}
	if score >= lowConfidenceScore {
		return
	}
	logging.WarnWithContext(logging.WithContext(ctx, c.logger), "low-confidence tmdb match", "low_confidence_match",
		logging.String("query", query),
		logging.String("match", match.Title),
		logging.Int64("tmdb_id", match.ID),
		logging.Float64("score", score),
		logging.String(logging.FieldErrorHint, "rename the file or fix the title after the scan"),
		logging.String(logging.FieldImpact, "entry enriched with the top search result"),
	)
}

func buildMetadata(match tmdb.SearchResult, details *tmdb.MovieDetails, videos *tmdb.VideosResponse) *Metadata {
	if details == nil {
		details = &tmdb.MovieDetails{}
	}
	meta := &Metadata{
		ProviderID:  match.ID,
		Title:       firstNonEmpty(details.Title, match.Title),
		Year:        releaseYear(firstNonEmpty(details.ReleaseDate, match.ReleaseDate)),
		Overview:    optionalString(details.Overview),
		PosterRef:   optionalString(firstNonEmpty(details.PosterPath, match.PosterPath)),
		BackdropRef: optionalString(firstNonEmpty(details.BackdropPath, match.BackdropPath)),
	}
	if details.ID != 0 {
		meta.ProviderID = details.ID
	}
	if details.Runtime != nil && *details.Runtime > 0 {
		runtime := *details.Runtime
		meta.Runtime = &runtime
	}
	rating := details.VoteAverage
	if details.ID == 0 {
		rating = match.VoteAverage
	}
	meta.Rating = &rating
	for _, g := range details.Genres {
		if name := strings.TrimSpace(g.Name); name != "" {
			meta.Genres = append(meta.Genres, name)
		}
	}
	if videos != nil {
		meta.TrailerRef = SelectTrailer(videos.Results)
	}
	return meta
}

// releaseYear parses the leading four digits of a TMDB release date.
func releaseYear(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return nil
	}
	return &year
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
