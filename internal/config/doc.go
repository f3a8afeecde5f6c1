// Package config loads, normalizes, and validates jukebox configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY. The Config type centralizes every knob the scanner, the
// metadata client, and the read-only API need, so data and library
// directories and provider credentials are discovered in one pass.
//
// A missing TMDB key is not an error: it disables enrichment and scans still
// run. Always obtain settings through this package so downstream code
// receives sanitized paths and clear validation errors.
package config
