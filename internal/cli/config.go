package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forPelevin/repurpose/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create engine configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration as YAML (stdout when no path is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  configInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func configInit(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return config.WriteYAML(cmd.OutOrStdout(), config.Default())
	}

	force, _ := cmd.Flags().GetBool("force")
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(args[0], flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
		}
		return err
	}
	if err := config.WriteYAML(f, config.Default()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", args[0])
	return nil
}
