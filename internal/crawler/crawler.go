package crawler

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"jukebox/internal/logging"
)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".avi":  {},
	".mov":  {},
	".wmv":  {},
	".m4v":  {},
	".webm": {},
	".flv":  {},
	".mpeg": {},
	".mpg":  {},
}

// IsVideo reports whether name carries a recognised video extension.
// Matching is case-insensitive.
func IsVideo(name string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// VideoExtensions returns the recognised extensions in sorted order.
func VideoExtensions() []string {
	exts := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

type options struct {
	skipUnreadable bool
	logger         *slog.Logger
}

// Option configures a walk.
type Option func(*options)

// WithSkipUnreadable logs unreadable subdirectories and continues instead of
// ending the walk. An unreadable root still ends it.
func WithSkipUnreadable(logger *slog.Logger) Option {
	return func(o *options) {
		o.skipUnreadable = true
		if logger != nil {
			o.logger = logger
		}
	}
}

// Walk returns a depth-first sequence of absolute video file paths under
// root. Entries within a directory are visited in lexical order. A listing
// error or context cancellation is yielded as ("", err) and ends the sequence.
func Walk(ctx context.Context, root string, opts ...Option) iter.Seq2[string, error] {
	cfg := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(yield func(string, error) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			yield("", fmt.Errorf("resolve root %q: %w", root, err))
			return
		}
		w := walker{ctx: ctx, opts: cfg, yield: yield}
		w.dir(abs, true)
	}
}

type walker struct {
	ctx   context.Context
	opts  options
	yield func(string, error) bool
}

// dir reports false once the walk must stop.
func (w *walker) dir(path string, root bool) bool {
	if err := w.ctx.Err(); err != nil {
		w.yield("", err)
		return false
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if w.opts.skipUnreadable && !root {
			logging.WarnWithContext(w.opts.logger, "skipping unreadable directory", "directory_unreadable",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "files below this directory are not catalogued"),
			)
			return true
		}
		w.yield("", fmt.Errorf("read directory %q: %w", path, err))
		return false
	}

	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		switch {
		case entry.IsDir():
			if !w.dir(full, false) {
				return false
			}
		case entry.Type().IsRegular() && IsVideo(entry.Name()):
			if !w.yield(full, nil) {
				return false
			}
		}
	}
	return true
}
