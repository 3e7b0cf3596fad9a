package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/repurpose/internal/pipeline"
	"github.com/forPelevin/repurpose/internal/types"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <metadata.json>...",
		Short: "Extract highlights and assemble a short for every input video",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}

	cmd.Flags().String("out", "out", "Output directory")
	cmd.Flags().String("platform", "", "Target platform (default from config)")
	cmd.Flags().Float64("length", 0, "Target length in seconds (0 = platform recommendation)")
	cmd.Flags().String("template", "", "Template name (default from config)")
	cmd.Flags().String("hook", "", "Custom hook text for the hook slot")
	cmd.Flags().String("db", os.Getenv(envDB), "SQLite database to persist results in")
	cmd.Flags().String("source-video", "", "Long-form MP4 to cut clips from (single input only)")
	cmd.Flags().Float64("clip-padding", 0, "Seconds added before and after every rendered clip")
	cmd.Flags().Int("workers", 4, "Videos processed in parallel")
	cmd.Flags().Bool("detect-language", true, "Detect the transcript language to pick keyword sets")

	// Hidden tool paths
	cmd.Flags().String("ffmpeg", "ffmpeg", "ffmpeg binary")
	cmd.Flags().String("ffprobe", "ffprobe", "ffprobe binary")
	_ = cmd.Flags().MarkHidden("ffmpeg")
	_ = cmd.Flags().MarkHidden("ffprobe")
	return cmd
}

func run(cmd *cobra.Command, inputs []string) error {
	engineCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	platform, _ := cmd.Flags().GetString("platform")
	lengthSec, _ := cmd.Flags().GetFloat64("length")
	template, _ := cmd.Flags().GetString("template")
	hook, _ := cmd.Flags().GetString("hook")
	dbPath, _ := cmd.Flags().GetString("db")
	sourceVideo, _ := cmd.Flags().GetString("source-video")
	paddingSec, _ := cmd.Flags().GetFloat64("clip-padding")
	workers, _ := cmd.Flags().GetInt("workers")
	detect, _ := cmd.Flags().GetBool("detect-language")
	ffmpegPath, _ := cmd.Flags().GetString("ffmpeg")
	ffprobePath, _ := cmd.Flags().GetString("ffprobe")

	abs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		p, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		abs = append(abs, p)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		Inputs:         abs,
		OutDir:         outDir,
		Platform:       platform,
		TargetLength:   types.Seconds(lengthSec),
		Template:       template,
		CustomHook:     hook,
		Workers:        workers,
		DetectLanguage: detect,
		DBPath:         dbPath,
		SourceVideo:    sourceVideo,
		ClipPadding:    types.Seconds(paddingSec),
		FFmpegPath:     ffmpegPath,
		FFprobePath:    ffprobePath,
		Engine:         engineCfg,
		Logger:         log,
	}
	if workers == 0 {
		return fmt.Errorf("config: workers must be > 0")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	m, runErr := pipeline.Run(ctx, cfg)
	if len(m.Videos) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), manifestTable(m))
	}
	return runErr
}

func manifestTable(m types.Manifest) string {
	rows := make([][]string, 0, len(m.Videos))
	for _, v := range m.Videos {
		status := "ok"
		if v.Error != "" {
			status = v.Error
		}
		rows = append(rows, []string{
			filepath.Base(v.Input),
			v.VideoID,
			v.Language,
			strconv.Itoa(v.Highlights),
			strconv.Itoa(v.Selected),
			strconv.FormatFloat(v.EstimatedSec, 'f', 1, 64),
			v.Dir,
			status,
		})
	}
	return renderTable(
		[]column{
			col("Input"), col("Video"), col("Lang"), numCol("Highlights"),
			numCol("Selected"), numCol("Seconds"), col("Dir"), wrapCol("Status", 48),
		},
		rows,
	)
}
