// Package api serves the catalog over HTTP for players and other consumers.
//
// The router is read-only: it lists catalog entries ordered by title,
// describes a single entry, and streams the underlying video file with Range
// support. Entries are converted into camelCase DTOs that carry absolute
// poster, backdrop, and trailer URLs built from the stored TMDB references.
package api
