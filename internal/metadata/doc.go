// Package metadata turns a parsed title and year into catalog enrichment
// using TMDB.
//
// Client.FetchMetadata takes the top search result, then fetches its details
// and video listing concurrently. A disabled client (no credential) and a
// search with no results both return nil metadata without error; transport
// and status failures are returned to the caller. Trailer selection and the
// artwork/trailer URL builders live here so the CLI and API share them.
package metadata
