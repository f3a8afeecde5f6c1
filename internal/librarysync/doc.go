// Package librarysync reconciles a library directory with the catalog.
//
// Sync crawls the root, and for every video file decides from the stored row
// what is still missing: a brand-new row, a metadata lookup for a row that
// was never enriched, a trailer backfill for an enriched row without a
// trailer, or just a refresh of the filesystem columns. Enrichment failures
// are logged and counted but never stop the scan; crawl and store failures
// do. With Options.Workers above one, paths are handled by a bounded worker
// pool; each path is still written by exactly one worker.
package librarysync
