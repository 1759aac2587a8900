package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag, levelFlag, formatFlag string

	ctx := newCommandContext(&configFlag, &levelFlag, &formatFlag)

	rootCmd := &cobra.Command{
		Use:           "folio",
		Short:         "Serve and build a Markdown portfolio and blog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "folio.toml", "Configuration file path")
	flags.StringVar(&levelFlag, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&formatFlag, "log-format", "", "Log format: auto, text or json")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newNewCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
