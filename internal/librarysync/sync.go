package librarysync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"jukebox/internal/catalog"
	"jukebox/internal/crawler"
	"jukebox/internal/filename"
	"jukebox/internal/logging"
	"jukebox/internal/metadata"
)

// ErrScanInProgress is returned when Sync is called while another scan on the
// same Synchronizer is running.
var ErrScanInProgress = errors.New("library scan already in progress")

// Enricher supplies metadata for parsed titles.
type Enricher interface {
	FetchMetadata(ctx context.Context, title string, year *int) (*metadata.Metadata, error)
	FetchTrailer(ctx context.Context, providerID int64) (*string, error)
}

// Options tunes a Synchronizer.
type Options struct {
	// Workers is the number of paths processed concurrently. Values below
	// two process paths one at a time in crawl order.
	Workers int
	// SkipUnreadable logs and skips unreadable subdirectories instead of
	// aborting the scan.
	SkipUnreadable bool
}

// Result summarises one scan.
type Result struct {
	Total   int
	Added   int
	Updated int
	// Failed counts paths whose enrichment errored. They are still included
	// in Added or Updated.
	Failed  int
	Elapsed time.Duration
}

// Synchronizer keeps the catalog in step with a library directory.
type Synchronizer struct {
	store   *catalog.Store
	meta    Enricher
	logger  *slog.Logger
	opts    Options
	now     func() time.Time
	running atomic.Bool
}

// New creates a Synchronizer writing to store and enriching through meta.
func New(store *catalog.Store, meta Enricher, logger *slog.Logger, opts Options) *Synchronizer {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if meta == nil {
		meta = metadata.New(metadata.Config{}, nil, logger)
	}
	return &Synchronizer{
		store:  store,
		meta:   meta,
		logger: logging.NewComponentLogger(logger, "librarysync"),
		opts:   opts,
		now:    time.Now,
	}
}

type counters struct {
	total   atomic.Int64
	added   atomic.Int64
	updated atomic.Int64
	failed  atomic.Int64
}

func (c *counters) result(elapsed time.Duration) Result {
	return Result{
		Total:   int(c.total.Load()),
		Added:   int(c.added.Load()),
		Updated: int(c.updated.Load()),
		Failed:  int(c.failed.Load()),
		Elapsed: elapsed,
	}
}

// Sync walks root and reconciles every video file with the catalog. The
// returned Result reflects the work done even when an error aborts the scan.
func (s *Synchronizer) Sync(ctx context.Context, root string) (Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Result{}, ErrScanInProgress
	}
	defer s.running.Store(false)

	start := time.Now()
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("library scan started",
		logging.String("root", root),
		logging.Int("workers", s.opts.Workers),
	)

	var c counters
	var err error
	if s.opts.Workers > 1 {
		err = s.syncConcurrent(ctx, root, logger, &c)
	} else {
		err = s.syncSequential(ctx, root, logger, &c)
	}
	result := c.result(time.Since(start))
	if err != nil {
		logger.Error("library scan aborted",
			logging.String("root", root),
			logging.Error(err),
			logging.Int("total", result.Total),
		)
		return result, err
	}

	logger.Info("library scan complete",
		logging.String("root", root),
		logging.Int("total", result.Total),
		logging.Int("added", result.Added),
		logging.Int("updated", result.Updated),
		logging.Int("failed", result.Failed),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (s *Synchronizer) crawlOptions(logger *slog.Logger) []crawler.Option {
	if !s.opts.SkipUnreadable {
		return nil
	}
	return []crawler.Option{crawler.WithSkipUnreadable(logger)}
}

func (s *Synchronizer) syncSequential(ctx context.Context, root string, logger *slog.Logger, c *counters) error {
	for path, err := range crawler.Walk(ctx, root, s.crawlOptions(logger)...) {
		if err != nil {
			return fmt.Errorf("crawl library: %w", err)
		}
		if err := s.syncPath(ctx, path, logger, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Synchronizer) syncConcurrent(ctx context.Context, root string, logger *slog.Logger, c *counters) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	var crawlErr error
	for path, err := range crawler.Walk(gctx, root, s.crawlOptions(logger)...) {
		if err != nil {
			crawlErr = fmt.Errorf("crawl library: %w", err)
			break
		}
		g.Go(func() error {
			return s.syncPath(gctx, path, logger, c)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return crawlErr
}

type fileInfo struct {
	path string
	name string
	size *int64
	ext  string
	seen time.Time
}

func (s *Synchronizer) inspect(path string, logger *slog.Logger) fileInfo {
	name := filepath.Base(path)
	info := fileInfo{
		path: path,
		name: name,
		ext:  strings.ToLower(filepath.Ext(name)),
		seen: s.now().UTC(),
	}
	stat, err := os.Stat(path)
	if err != nil {
		logging.WarnWithContext(logger, "stat failed", "file_stat_failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check file permissions"),
			logging.String(logging.FieldImpact, "file size left empty"),
		)
		return info
	}
	size := stat.Size()
	info.size = &size
	return info
}

func (s *Synchronizer) syncPath(ctx context.Context, path string, logger *slog.Logger, c *counters) error {
	c.total.Add(1)

	existing, err := s.store.GetByPath(ctx, path)
	if err != nil {
		return fmt.Errorf("load catalog entry for %s: %w", path, err)
	}
	file := s.inspect(path, logger)
	state := StateOf(existing)
	logger.Debug("syncing path",
		logging.String(logging.FieldPath, path),
		logging.String("state", state.String()),
	)

	switch state {
	case StateNew:
		err = s.addEntry(ctx, file, logger, c)
	case StateUnenriched:
		err = s.enrichEntry(ctx, existing, file, logger, c)
	case StateMissingTrailer:
		err = s.backfillTrailer(ctx, existing, file, logger, c)
	case StateComplete:
		err = s.refreshEntry(ctx, file, c)
	}
	return err
}

func (s *Synchronizer) addEntry(ctx context.Context, file fileInfo, logger *slog.Logger, c *counters) error {
	parsed := filename.Parse(file.name)
	entry := &catalog.Entry{
		FilePath:  file.path,
		FileName:  file.name,
		FileSize:  file.size,
		Extension: file.ext,
		CreatedAt: file.seen,
		UpdatedAt: file.seen,
		Title:     parsed.Title,
		Year:      parsed.Year,
	}

	meta, err := s.meta.FetchMetadata(ctx, parsed.Title, parsed.Year)
	if err != nil {
		s.enrichmentFailed(ctx, logger, file.path, err, c)
	}
	applyMetadata(entry, meta)

	if err := s.store.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("insert catalog entry for %s: %w", file.path, err)
	}
	c.added.Add(1)
	logger.Info("catalogued new file",
		logging.String(logging.FieldPath, file.path),
		logging.String("title", entry.Title),
		logging.Bool("enriched", entry.Enriched()),
	)
	return nil
}

func (s *Synchronizer) enrichEntry(ctx context.Context, entry *catalog.Entry, file fileInfo, logger *slog.Logger, c *counters) error {
	parsed := filename.Parse(file.name)
	meta, err := s.meta.FetchMetadata(ctx, parsed.Title, parsed.Year)
	if err != nil {
		s.enrichmentFailed(ctx, logger, file.path, err, c)
	}
	refreshFile(entry, file)
	applyMetadata(entry, meta)

	if err := s.store.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("update catalog entry for %s: %w", file.path, err)
	}
	c.updated.Add(1)
	if meta != nil {
		logger.Info("enriched catalog entry",
			logging.String(logging.FieldPath, file.path),
			logging.String("title", entry.Title),
			logging.Int64("tmdb_id", meta.ProviderID),
		)
	}
	return nil
}

func (s *Synchronizer) backfillTrailer(ctx context.Context, entry *catalog.Entry, file fileInfo, logger *slog.Logger, c *counters) error {
	trailer, err := s.meta.FetchTrailer(ctx, *entry.ProviderID)
	if err != nil {
		s.enrichmentFailed(ctx, logger, file.path, err, c)
	}
	refreshFile(entry, file)
	if trailer != nil {
		entry.TrailerRef = trailer
	}

	if err := s.store.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("update catalog entry for %s: %w", file.path, err)
	}
	c.updated.Add(1)
	if trailer != nil {
		logger.Info("backfilled trailer",
			logging.String(logging.FieldPath, file.path),
			logging.String("trailer", *trailer),
		)
	}
	return nil
}

func (s *Synchronizer) refreshEntry(ctx context.Context, file fileInfo, c *counters) error {
	if err := s.store.TouchFile(ctx, file.path, file.size, file.ext, file.seen); err != nil {
		return fmt.Errorf("refresh catalog entry for %s: %w", file.path, err)
	}
	c.updated.Add(1)
	return nil
}

func (s *Synchronizer) enrichmentFailed(ctx context.Context, logger *slog.Logger, path string, err error, c *counters) {
	if ctx.Err() != nil {
		return
	}
	c.failed.Add(1)
	logging.WarnWithContext(logger, "metadata lookup failed", "metadata_fetch_failed",
		logging.String(logging.FieldPath, path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the TMDB api key and network access"),
		logging.String(logging.FieldImpact, "entry kept without new metadata"),
	)
}

func refreshFile(entry *catalog.Entry, file fileInfo) {
	entry.FileName = file.name
	entry.FileSize = file.size
	entry.Extension = file.ext
	entry.UpdatedAt = file.seen
}

// applyMetadata fills enrichment fields from meta without clearing any.
func applyMetadata(entry *catalog.Entry, meta *metadata.Metadata) {
	if meta == nil {
		return
	}
	if strings.TrimSpace(meta.Title) != "" {
		entry.Title = meta.Title
	}
	if meta.Year != nil {
		entry.Year = meta.Year
	}
	id := meta.ProviderID
	entry.ProviderID = &id
	if meta.Overview != nil {
		entry.Overview = meta.Overview
	}
	if meta.Runtime != nil {
		entry.Runtime = meta.Runtime
	}
	if len(meta.Genres) > 0 {
		entry.Genres = meta.Genres
	}
	if meta.Rating != nil {
		entry.Rating = meta.Rating
	}
	if meta.PosterRef != nil {
		entry.PosterRef = meta.PosterRef
	}
	if meta.BackdropRef != nil {
		entry.BackdropRef = meta.BackdropRef
	}
	if meta.TrailerRef != nil {
		entry.TrailerRef = meta.TrailerRef
	}
}
