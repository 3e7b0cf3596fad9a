package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envConfig    = "REPURPOSE_CONFIG"
	envDB        = "REPURPOSE_DB"
	envLogLevel  = "REPURPOSE_LOG_LEVEL"
	envLogFormat = "REPURPOSE_LOG_FORMAT"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCommand()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "repurpose",
		Short:         "Turn long-form video metadata into short-form video plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", os.Getenv(envConfig), "Engine config file (.yaml, .yml or .toml)")
	root.PersistentFlags().String("log-level", getenvDefault(envLogLevel, "info"), "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", getenvDefault(envLogFormat, "auto"), "Log format (console, json, auto)")

	root.AddCommand(
		newRunCommand(),
		newHighlightsCommand(),
		newTemplatesCommand(),
		newPlatformsCommand(),
		newConfigCommand(),
	)
	return root
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
