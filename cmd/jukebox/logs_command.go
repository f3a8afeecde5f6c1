package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jukebox/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var match string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the jukebox log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return logs.Stream(cmd.Context(), cfg.LogPath(), logs.Options{
				Lines:  lines,
				Follow: follow,
				Match:  match,
			}, func(line string) error {
				_, err := fmt.Fprintln(out, line)
				return err
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&match, "match", "", "Only print lines containing this text (e.g. a run_id)")
	return cmd
}
