package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jukebox/internal/librarysync"
	"jukebox/internal/metadata"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match <id> <tmdb-id>",
		Short: "Pin a catalog entry to a specific TMDB movie",
		Long: "Replace an entry's metadata with the given TMDB movie. Use this when a scan\n" +
			"picked the wrong search result; the entry is never searched again.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			providerID, err := strconv.ParseInt(strings.TrimSpace(args[1]), 10, 64)
			if err != nil || providerID <= 0 {
				return fmt.Errorf("invalid tmdb id %q", args[1])
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cfg, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			meta, err := metadata.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			if !meta.Enabled() {
				return errors.New("tmdb.api_key is not configured")
			}

			entry, err := librarysync.Match(cmd.Context(), store, meta, logger, id, providerID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Matched entry %d to TMDB %d\n", entry.ID, providerID)
			fmt.Fprintln(out, renderEntryDetail(out, entry, metadata.NewImages(cfg.TMDB.ImageBaseURL)))
			return nil
		},
	}
}
