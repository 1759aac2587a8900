package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

type commandContext struct {
	configFlag *string
	levelFlag  *string
	formatFlag *string

	configOnce sync.Once
	config     folio.Config
	configErr  error
}

func newCommandContext(configFlag, levelFlag, formatFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		levelFlag:  levelFlag,
		formatFlag: formatFlag,
	}
}

// ensureConfig loads the config file once and applies the logging flags.
func (c *commandContext) ensureConfig() (folio.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := folio.LoadConfig(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if v := strings.TrimSpace(*c.levelFlag); v != "" {
			cfg.Logging.Level = v
		}
		if v := strings.TrimSpace(*c.formatFlag); v != "" {
			cfg.Logging.Format = v
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the command logger on the command's stderr.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return folio.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
}

// load reads the content directory once with the given logger.
func (c *commandContext) load(cmd *cobra.Command, logger *slog.Logger) (content.LoadResult, error) {
	return c.loadWith(cmd, logger, nil)
}

// loadWith is load with a hook that adjusts the configured loader settings.
func (c *commandContext) loadWith(cmd *cobra.Command, logger *slog.Logger, adjust func(*content.LoaderConfig)) (content.LoadResult, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return content.LoadResult{}, err
	}
	loaderCfg, err := cfg.LoaderConfig(logger)
	if err != nil {
		return content.LoadResult{}, err
	}
	if adjust != nil {
		adjust(&loaderCfg)
	}
	return content.NewDirLoader(cfg.Content.Dir, loaderCfg).Load(cmd.Context())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
