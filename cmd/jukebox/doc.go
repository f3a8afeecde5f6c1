// Package main hosts the jukebox CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the structured
// logger, and hands off to the internal packages: scan reconciles a library
// directory with the catalog, list and show read it back, serve exposes the
// HTTP API, and config scaffolds or prints settings.
//
// Keep this package lean. New behaviour belongs in internal packages first
// and is surfaced here through dedicated commands or flags.
package main
