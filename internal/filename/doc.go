// Package filename derives a human-readable title and release year from video
// file names.
//
// Parse is pure and total: it never fails, and the worst case is the whole
// cleaned name as the title with no year. The year marks the boundary
// between the title and the release/quality tags that follow it, so
// sequel markers (II, III) and edition words (EXTENDED) stay in the title.
//
// DisplayTitle is a separate, lossy cleaner that strips quality, codec,
// audio, release-group, and edition tokens. It only produces search-query
// hints and is never persisted as a canonical title.
package filename
