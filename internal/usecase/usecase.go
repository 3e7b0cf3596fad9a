package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/forPelevin/repurpose/internal/domain/subtitles"
	"github.com/forPelevin/repurpose/internal/engine"
	"github.com/forPelevin/repurpose/internal/logging"
	"github.com/forPelevin/repurpose/internal/ports"
	"github.com/forPelevin/repurpose/internal/types"
)

const (
	highlightsFile = "highlights.json"
	shortFile      = "short.json"
	scriptFile     = "script.txt"
	captionsFile   = "captions.ass"
	clipsDir       = "clips"
)

// Deps are the collaborators of one run. Only Source is required.
type Deps struct {
	Source   ports.VideoSource
	Store    ports.Store
	Renderer ports.Renderer
	Language ports.LanguageDetector
}

type Usecase struct {
	d   Deps
	eng *engine.Engine
}

func New(d Deps, eng *engine.Engine) Usecase { return Usecase{d: d, eng: eng} }

type Input struct {
	MetadataPath string
	// SourceVideo is the long-form file to cut clips from. Clips are only
	// rendered when it is set and a Renderer is configured.
	SourceVideo string
	// OutDir receives this video's artefacts.
	OutDir  string
	Options engine.Options
	Logger  *slog.Logger
}

type Result struct {
	Highlights types.HighlightResult
	Short      types.ShortConfig
	Manifest   types.ManifestVideo
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := logging.OrDiscard(in.Logger)

	v, err := u.d.Source.Load(ctx, in.MetadataPath)
	if err != nil {
		return Result{}, err
	}
	log = log.With("video_id", v.VideoID)

	var lang string
	if u.d.Language != nil {
		if l, ok := u.d.Language.Detect(v.Transcript); ok {
			lang = l
		}
	}

	res := u.eng.Analyze(v, lang)
	log.Info("highlights extracted", "language", lang, "highlights", res.Summary.TotalHighlights)

	short, err := u.eng.Assemble(res, in.Options)
	if err != nil {
		return Result{}, err
	}
	log.Info("short assembled",
		"template", short.Template,
		"platform", short.TargetPlatform,
		"selected", len(short.Highlights),
		"target", short.TargetLength,
	)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if u.d.Store != nil {
		if err := u.d.Store.SaveHighlights(ctx, res); err != nil {
			return Result{}, err
		}
		if err := u.d.Store.SaveShort(ctx, short); err != nil {
			return Result{}, err
		}
	}

	if err := os.MkdirAll(in.OutDir, 0o755); err != nil {
		return Result{}, err
	}
	if err := writeJSON(filepath.Join(in.OutDir, highlightsFile), res); err != nil {
		return Result{}, err
	}
	if err := writeJSON(filepath.Join(in.OutDir, shortFile), short); err != nil {
		return Result{}, err
	}
	if err := writeFile(filepath.Join(in.OutDir, scriptFile), []byte(short.Script)); err != nil {
		return Result{}, err
	}
	_, platform, _ := u.eng.Config().Platform(short.TargetPlatform)
	ass := subtitles.RenderShortASS(short.Structure, platform.Resolution)
	if err := writeFile(filepath.Join(in.OutDir, captionsFile), []byte(ass)); err != nil {
		return Result{}, err
	}

	rel := filepath.Base(in.OutDir)
	mv := types.ManifestVideo{
		Input:        in.MetadataPath,
		VideoID:      v.VideoID,
		Title:        v.Title,
		Language:     lang,
		HighlightID:  res.HighlightID,
		ShortID:      short.ShortID,
		Highlights:   res.Summary.TotalHighlights,
		Selected:     len(short.Highlights),
		EstimatedSec: short.EstimatedDuration.Seconds(),
		Dir:          filepath.ToSlash(rel),
		Script:       filepath.ToSlash(filepath.Join(rel, scriptFile)),
		Captions:     filepath.ToSlash(filepath.Join(rel, captionsFile)),
	}

	if u.d.Renderer != nil && in.SourceVideo != "" {
		clips, err := u.renderClips(ctx, log, in, short.Highlights)
		if err != nil {
			return Result{}, err
		}
		for _, c := range clips {
			mv.Clips = append(mv.Clips, filepath.ToSlash(filepath.Join(rel, clipsDir, c)))
		}
	}

	return Result{Highlights: res, Short: short, Manifest: mv}, nil
}

// renderClips cuts the selected highlights in timeline order. Highlights
// reaching past the end of the source video are skipped.
func (u Usecase) renderClips(ctx context.Context, log *slog.Logger, in Input, selected []types.RankedHighlight) ([]string, error) {
	spans := make([]types.Timestamp, 0, len(selected))
	for _, h := range selected {
		spans = append(spans, h.Timestamp)
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	total, err := u.d.Renderer.ProbeDuration(ctx, in.SourceVideo)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(in.OutDir, clipsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var out []string
	for _, ts := range spans {
		if total > 0 && ts.End > total {
			log.Warn("highlight beyond source video, skipping", "start", ts.Start, "end", ts.End, "video_duration", total)
			continue
		}
		name := fmt.Sprintf("%03d.mp4", len(out)+1)
		start := time.Now()
		if err := u.d.Renderer.RenderClip(ctx, in.SourceVideo, ts.Start, ts.End, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
		log.Debug("clip rendered", "file", name, "elapsed", time.Since(start))
		out = append(out, name)
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, b)
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o644)
}
