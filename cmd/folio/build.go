package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			// Static output has no HTTP surface.
			cfg.Server.RateLimit = 0
			cfg.Server.Metrics = false

			app, err := folio.New(cfg, folio.WithLogger(logger))
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.Build(cmd.Context(), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d articles (%d files) into %s\n", res.Articles, res.Files, res.Dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "Output directory")
	return cmd
}
