package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"jukebox/internal/config"
	"jukebox/internal/librarysync"
	"jukebox/internal/logging"
	"jukebox/internal/metadata"
	"jukebox/internal/notifications"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var skipUnreadable bool

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Reconcile a library directory with the catalog",
		Long: "Walk the library directory, add new video files to the catalog, and fill in\n" +
			"TMDB metadata and trailers for entries that are missing them.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			root := cfg.Paths.LibraryDir
			if len(args) == 1 {
				root, err = config.ExpandPath(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("resolve scan root: %w", err)
				}
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Scan.Workers
			}
			if workers < 1 {
				return errors.New("--workers must be at least 1")
			}
			if !cmd.Flags().Changed("skip-unreadable") {
				skipUnreadable = cfg.Scan.SkipUnreadable
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scan lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another scan is already running (lock %s)", cfg.LockPath())
			}
			defer func() {
				_ = lock.Unlock()
			}()

			meta, err := metadata.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !meta.Enabled() {
				fmt.Fprintln(out, "TMDB API key not configured; cataloging files without metadata.")
			}

			_, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			syncer := librarysync.New(store, meta, logger, librarysync.Options{
				Workers:        workers,
				SkipUnreadable: skipUnreadable,
			})
			runCtx := logging.WithRunID(cmd.Context(), uuid.NewString())
			result, err := syncer.Sync(runCtx, root)
			fmt.Fprintln(out, renderScanResult(out, root, result))
			notifyScan(runCtx, notifications.NewService(cfg), logger, root, result, err)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Number of files processed concurrently")
	cmd.Flags().BoolVar(&skipUnreadable, "skip-unreadable", false, "Warn and continue when a subdirectory cannot be read")
	return cmd
}

func notifyScan(ctx context.Context, notifier notifications.Service, logger *slog.Logger, root string, result librarysync.Result, scanErr error) {
	if ctx.Err() != nil {
		return
	}
	var err error
	if scanErr != nil {
		err = notifier.NotifyScanFailed(ctx, root, scanErr)
	} else {
		err = notifier.NotifyScanCompleted(ctx, root, notifications.ScanSummary{
			Total:   result.Total,
			Added:   result.Added,
			Updated: result.Updated,
			Failed:  result.Failed,
			Elapsed: result.Elapsed,
		})
	}
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "scan notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "scan result not pushed to ntfy"),
		)
	}
}

func renderScanResult(out io.Writer, root string, result librarysync.Result) string {
	rows := [][]string{
		{"Root", root},
		{"Total", strconv.Itoa(result.Total)},
		{"Added", strconv.Itoa(result.Added)},
		{"Updated", strconv.Itoa(result.Updated)},
		{"Failed", strconv.Itoa(result.Failed)},
		{"Elapsed", result.Elapsed.Round(time.Millisecond).String()},
	}
	return renderTable(out, []string{"Scan", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
