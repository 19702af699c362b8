package main

import (
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"placing/internal/config"
	"placing/internal/logging"
	"placing/internal/streamio"
)

type commandContext struct {
	configPath string
	runID      string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configPath string) *commandContext {
	return &commandContext{
		configPath: configPath,
		runID:      uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger returns the diagnostic logger of a command, tagged with the run id.
func (c *commandContext) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return logger.With(logging.String(logging.FieldRunID, c.runID)), nil
}

// openOptions enables the byte progress bar when configured and stderr is a
// terminal.
func (c *commandContext) openOptions(cfg *config.Config) []streamio.Option {
	if !cfg.Progress.Bar || !logging.IsTerminal(os.Stderr) {
		return nil
	}
	return []streamio.Option{streamio.WithProgressBar(os.Stderr)}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
