package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/forPelevin/repurpose/internal/config"
	"github.com/forPelevin/repurpose/internal/logging"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return logging.New(logging.Options{
		Level:  level,
		Format: format,
		Writer: cmd.ErrOrStderr(),
	})
}
