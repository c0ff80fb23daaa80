// Package commands implements the leapcheck subcommands.
package commands

import (
	"log/slog"

	"github.com/leapstack-labs/leapcheck/internal/config"
	"github.com/spf13/cobra"
)

// setup pulls the loaded config from the command context and builds the
// command logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger) {
	cfg := config.FromContext(cmd.Context())

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	return cfg, logger
}
