package main

import (
	"github.com/spf13/cobra"

	"jukebox/internal/api"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.API.Bind = bind
			}
			return api.NewServer(cfg, store, logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides api.bind)")
	return cmd
}
