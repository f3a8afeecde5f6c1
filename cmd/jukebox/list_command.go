package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"jukebox/internal/catalog"
	"jukebox/internal/metadata"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog entries ordered by title",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list catalog: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Catalog is empty. Run `jukebox scan` to add files.")
				return nil
			}
			fmt.Fprintln(out, renderEntryTable(out, entries))

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("catalog stats: %w", err)
			}
			fmt.Fprintf(out, "%d entries, %d enriched, %d with trailers\n", stats.Total, stats.Enriched, stats.WithTrailer)
			return nil
		},
	}
}

func renderEntryTable(out io.Writer, entries []*catalog.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Title,
			formatYear(entry.Year),
			formatRating(entry.Rating),
			yesNo(entry.HasTrailer()),
			entry.FilePath,
		})
	}
	headers := []string{"ID", "Title", "Year", "Rating", "Trailer", "Path"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft}
	return renderTable(out, headers, rows, aligns)
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			cfg, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("load entry %d: %w", id, err)
			}
			if entry == nil {
				return fmt.Errorf("entry %d: %w", id, catalog.ErrNotFound)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderEntryDetail(out, entry, metadata.NewImages(cfg.TMDB.ImageBaseURL)))
			return nil
		},
	}
}

func renderEntryDetail(out io.Writer, entry *catalog.Entry, images metadata.Images) string {
	rows := [][]string{
		{"ID", strconv.FormatInt(entry.ID, 10)},
		{"Title", entry.Title},
		{"Year", formatYear(entry.Year)},
		{"File", entry.FilePath},
		{"Size", formatSize(entry.FileSize)},
		{"Extension", entry.Extension},
		{"TMDB ID", formatOptionalInt64(entry.ProviderID)},
		{"Rating", formatRating(entry.Rating)},
		{"Runtime", formatRuntime(entry.Runtime)},
		{"Genres", strings.Join(entry.Genres, ", ")},
		{"Overview", derefString(entry.Overview)},
	}
	if entry.PosterRef != nil {
		rows = append(rows, []string{"Poster", images.PosterURL(*entry.PosterRef, "")})
	}
	if entry.BackdropRef != nil {
		rows = append(rows, []string{"Backdrop", images.BackdropURL(*entry.BackdropRef, "")})
	}
	if entry.TrailerRef != nil {
		rows = append(rows, []string{"Trailer", metadata.TrailerURL(*entry.TrailerRef)})
	}
	rows = append(rows,
		[]string{"Added", entry.CreatedAt.Local().Format("2006-01-02 15:04")},
		[]string{"Updated", entry.UpdatedAt.Local().Format("2006-01-02 15:04")},
	)
	return renderTable(out, []string{"Field", "Value"}, rows, nil)
}

func formatYear(year *int) string {
	if year == nil {
		return "-"
	}
	return strconv.Itoa(*year)
}

func formatRating(rating *float64) string {
	if rating == nil {
		return "-"
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

func formatRuntime(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dh %02dm", *minutes/60, *minutes%60)
}

func formatOptionalInt64(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func formatSize(size *int64) string {
	if size == nil || *size < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(*size))
}

func derefString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
