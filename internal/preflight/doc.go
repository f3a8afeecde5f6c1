// Package preflight provides readiness checks for the paths and external
// services jukebox depends on.
//
// The CLI "jukebox doctor" command runs RunAll and renders the results. Each
// check is gated by its config toggle: the TMDB check only runs when an API
// key is configured and the ntfy check only when a topic is set.
package preflight
