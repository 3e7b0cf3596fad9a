package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/forPelevin/repurpose/internal/config"
	"github.com/forPelevin/repurpose/internal/engine"
	"github.com/forPelevin/repurpose/internal/logging"
	"github.com/forPelevin/repurpose/internal/ports"
	"github.com/forPelevin/repurpose/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/repurpose/internal/ports/adapters/jsonfile"
	"github.com/forPelevin/repurpose/internal/ports/adapters/lingua"
	"github.com/forPelevin/repurpose/internal/ports/adapters/sqlite"
	"github.com/forPelevin/repurpose/internal/types"
	"github.com/forPelevin/repurpose/internal/usecase"
)

const defaultWorkers = 4

type Config struct {
	// Inputs are video metadata JSON files.
	Inputs []string
	OutDir string

	Platform     string
	TargetLength time.Duration
	Template     string
	CustomHook   string

	Workers        int
	DetectLanguage bool

	// DBPath enables the sqlite store when set.
	DBPath string

	// SourceVideo enables clip rendering; only valid for a single input.
	SourceVideo string
	// ClipPadding widens every rendered span on both sides.
	ClipPadding time.Duration
	FFmpegPath  string
	FFprobePath string

	Engine *config.Config
	Logger *slog.Logger
}

func (c Config) Validate() error {
	if len(c.Inputs) == 0 {
		return errors.New("no inputs")
	}
	for _, in := range c.Inputs {
		st, err := os.Stat(in)
		if err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
		if st.IsDir() {
			return fmt.Errorf("input %s is a directory", in)
		}
	}
	if c.Engine == nil {
		return errors.New("engine config is required")
	}
	if c.TargetLength < 0 {
		return fmt.Errorf("target length must be >= 0")
	}
	if c.ClipPadding < 0 {
		return fmt.Errorf("clip padding must be >= 0")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	if name, _, ok := c.Engine.Platform(c.Platform); !ok {
		return fmt.Errorf("unknown platform %q (known: %s)", name, strings.Join(c.Engine.PlatformNames(), ", "))
	}
	if c.SourceVideo != "" {
		if len(c.Inputs) != 1 {
			return fmt.Errorf("source video requires exactly one input, got %d", len(c.Inputs))
		}
		if _, err := os.Stat(c.SourceVideo); err != nil {
			return fmt.Errorf("stat source video: %w", err)
		}
	}
	return nil
}

// Run processes every input independently and writes a manifest for the
// batch. Failed videos are listed in the manifest and reported in the
// returned error; the others are still written.
func Run(ctx context.Context, cfg Config) (types.Manifest, error) {
	log := logging.OrDiscard(cfg.Logger)

	deps := usecase.Deps{Source: jsonfile.New()}
	if cfg.DetectLanguage {
		deps.Language = lingua.New()
	}
	if cfg.SourceVideo != "" {
		_, platform, _ := cfg.Engine.Platform(cfg.Platform)
		deps.Renderer = ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath,
			ffmpeg.WithFrame(platform.Resolution),
			ffmpeg.WithPadding(cfg.ClipPadding),
		)
	}
	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return types.Manifest{}, err
		}
		defer store.Close()
		deps.Store = store
	}
	return run(ctx, cfg, usecase.New(deps, engine.New(cfg.Engine)), log)
}

func run(ctx context.Context, cfg Config, uc usecase.Usecase, log *slog.Logger) (types.Manifest, error) {
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, runName(cfg.Inputs), time.Now().UTC())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return types.Manifest{}, err
	}
	log.Info("output run dir", "dir", runOutDir, "videos", len(cfg.Inputs))

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	opts := engine.Options{
		Platform:     cfg.Platform,
		TargetLength: cfg.TargetLength,
		Template:     cfg.Template,
		CustomHook:   cfg.CustomHook,
	}
	entries := make([]types.ManifestVideo, len(cfg.Inputs))
	errs := make([]error, len(cfg.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range cfg.Inputs {
		i, in := i, in
		g.Go(func() error {
			dir := filepath.Join(runOutDir, videoDirName(i, in))
			res, err := uc.Run(gctx, usecase.Input{
				MetadataPath: in,
				SourceVideo:  cfg.SourceVideo,
				OutDir:       dir,
				Options:      opts,
				Logger:       log.With("input", filepath.Base(in)),
			})
			if err != nil {
				// Per-video failures stay local to that video.
				log.Error("video failed", "input", in, "error", err)
				errs[i] = fmt.Errorf("%s: %w", in, err)
				entries[i] = types.ManifestVideo{Input: in, Error: err.Error()}
				return nil
			}
			entries[i] = res.Manifest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.Manifest{}, err
	}

	platform, _, _ := cfg.Engine.Platform(cfg.Platform)
	template, _ := cfg.Engine.Template(cfg.Template)
	m := types.Manifest{Platform: platform, Template: template, Videos: entries}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return m, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return m, err
	}
	log.Info("manifest written", "videos", len(entries), "path", manifestPath)
	return m, errors.Join(errs...)
}

func runName(inputs []string) string {
	if len(inputs) == 1 {
		return inputs[0]
	}
	return "batch"
}

func videoDirName(i int, input string) string {
	name := normalizePathSegment(strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)))
	if name == "" {
		name = "video"
	}
	return fmt.Sprintf("%03d-%s", i+1, name)
}

func buildRunOutDir(outRoot, input string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoSource = (*jsonfile.Adapter)(nil)
var _ ports.Store = (*sqlite.Store)(nil)
var _ ports.Renderer = (*ffmpeg.Adapter)(nil)
var _ ports.LanguageDetector = (*lingua.Detector)(nil)
