package preflight

import (
	"context"
	"strings"

	"jukebox/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, AccessReadWrite),
		CheckDirectoryAccess("Library directory", cfg.Paths.LibraryDir, AccessRead),
		CheckCatalog(ctx, cfg),
	}

	if cfg.TMDBEnabled() {
		results = append(results, CheckTMDB(ctx, cfg.TMDB.BaseURL, cfg.TMDB.APIKey))
	} else {
		results = append(results, Result{Name: "TMDB", Detail: "disabled (no api key); scans skip enrichment"})
	}

	if cfg.NotificationsEnabled() {
		results = append(results, CheckNtfy(ctx, cfg.Notifications.NtfyTopic))
	}

	return results
}

// Passed reports whether every result passed. Disabled TMDB enrichment is
// reported but does not count as a failure.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !(r.Name == "TMDB" && isDisabled(r.Detail)) {
			return false
		}
	}
	return true
}

func isDisabled(detail string) bool {
	return strings.HasPrefix(detail, "disabled")
}
