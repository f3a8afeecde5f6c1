// Package catalog persists the movie catalog in SQLite.
//
// Each row is keyed by the absolute path of a video file. Writes from the
// library synchronizer go through Upsert, which inserts or updates on the
// file_path unique constraint, so repeated scans refresh rows instead of
// duplicating them. Enrichment columns are only ever filled by Upsert; an
// existing value is kept when the incoming entry carries nil.
//
// Schema changes bump schemaVersion in schema.go; an existing database with a
// different version fails to open with ErrSchemaMismatch.
package catalog
