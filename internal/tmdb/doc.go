// Package tmdb provides the minimal TMDB API client used for catalog
// enrichment.
//
// It authenticates requests with the v3 api_key query parameter and exposes
// movie search with an optional release-year constraint, movie details, and
// the video listing used for trailer selection. Non-200 responses surface as
// *StatusError so callers can inspect the status code. Options allow tests to
// supply custom HTTP clients, and WithRateLimit spaces requests out without
// retrying on throttling responses.
package tmdb
