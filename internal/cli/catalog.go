package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forPelevin/repurpose/internal/config"
)

func newTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the configured short templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), templatesTable(cfg))
			return nil
		},
	}
}

func newPlatformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the configured target platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), platformsTable(cfg))
			return nil
		},
	}
}

func templatesTable(cfg *config.Config) string {
	names := cfg.TemplateNames()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		_, tpl := cfg.Template(name)
		slots := make([]string, 0, len(tpl.Structure))
		for _, r := range tpl.Structure {
			slots = append(slots, string(r))
		}
		label := name
		if name == cfg.DefaultTemplate {
			label += " *"
		}
		rows = append(rows, []string{label, tpl.Category, strings.Join(slots, " > ")})
	}
	return renderTable([]column{col("Template"), col("Category"), col("Structure")}, rows)
}

func platformsTable(cfg *config.Config) string {
	names := cfg.PlatformNames()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		_, p, _ := cfg.Platform(name)
		lengths := make([]string, 0, len(p.RecommendedLengths))
		for _, l := range p.RecommendedLengths {
			lengths = append(lengths, strconv.Itoa(l))
		}
		label := name
		if name == cfg.DefaultPlatform {
			label += " *"
		}
		rows = append(rows, []string{label, strconv.Itoa(p.Duration), p.AspectRatio, p.Resolution, strings.Join(lengths, ", ")})
	}
	return renderTable(
		[]column{col("Platform"), numCol("Max sec"), col("Aspect"), col("Resolution"), col("Recommended sec")},
		rows,
	)
}
