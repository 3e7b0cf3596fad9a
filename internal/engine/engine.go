// Package engine runs the highlight extraction and short assembly pipeline
// for a single video. It performs no I/O and holds no mutable state, so one
// Engine can serve concurrent runs.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forPelevin/repurpose/internal/config"
	"github.com/forPelevin/repurpose/internal/domain/highlights"
	"github.com/forPelevin/repurpose/internal/domain/keywords"
	"github.com/forPelevin/repurpose/internal/domain/shorts"
	"github.com/forPelevin/repurpose/internal/types"
)

type Engine struct {
	cfg   *config.Config
	newID func() string
	align highlights.Aligner
}

type Option func(*Engine)

// WithIDFunc overrides the highlightId/shortId generator.
func WithIDFunc(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

func WithAligner(a highlights.Aligner) Option {
	return func(e *Engine) { e.align = a }
}

// New returns an Engine bound to cfg. cfg must be validated and must not be
// modified afterwards.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, newID: uuid.NewString, align: highlights.IndexAligner}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Config() *config.Config { return e.cfg }

// Analyze extracts highlights from every signal of v and fuses them into one
// ranked list. lang selects the keyword set; empty or unknown languages use
// the configured default language.
func (e *Engine) Analyze(v types.Video, lang string) types.HighlightResult {
	ks := e.cfg.KeywordsFor(lang)
	sig := highlights.Signals{
		Text: highlights.ExtractText(v.Transcript, v.Timestamps, highlights.TextParams{
			Scoring: highlights.TextScoring{
				Viral:        keywords.Compile(ks.Viral),
				Question:     keywords.Compile(ks.Question),
				CallToAction: keywords.Compile(ks.CallToAction),
			},
			Threshold: e.cfg.TextHighlightThreshold,
			Align:     e.align,
		}),
		Engagement:   highlights.ExtractEngagement(v.EngagementMetrics.Timeline, e.cfg.EngagementThreshold),
		Monetization: highlights.ExtractMonetization(v.MonetizationData.RevenueTimeline),
	}
	ranked := highlights.Fuse(sig)

	top := ranked
	if n := e.cfg.TopSegments; len(top) > n {
		top = top[:n]
	}
	return types.HighlightResult{
		HighlightID: e.newID(),
		VideoID:     v.VideoID,
		Title:       v.Title,
		Language:    lang,
		Highlights:  ranked,
		Summary: types.HighlightSummary{
			TotalHighlights:       len(ranked),
			TopPerformingSegments: append([]types.RankedHighlight(nil), top...),
		},
	}
}

// Options are the caller's choices for one short.
type Options struct {
	Platform     string
	TargetLength time.Duration
	Template     string
	CustomHook   string
}

// Assemble selects highlights from res that fit the target length and maps
// them onto the chosen template. Unknown templates fall back to the default
// one; an unknown platform is the only error.
func (e *Engine) Assemble(res types.HighlightResult, opts Options) (types.ShortConfig, error) {
	platformName, platform, ok := e.cfg.Platform(opts.Platform)
	if !ok {
		return types.ShortConfig{}, fmt.Errorf("unknown platform %q", platformName)
	}
	target := platform.ResolveTarget(opts.TargetLength)
	selected := highlights.Select(res.Highlights, target, platform.MaxDuration())

	templateName, tpl := e.cfg.Template(opts.Template)
	ks := e.cfg.KeywordsFor(res.Language)
	structure, err := shorts.Assemble(shorts.Request{
		Highlights: selected,
		Slots:      tpl.Structure,
		CustomHook: opts.CustomHook,
		Target:     target,
		Keywords: shorts.Keywords{
			Hook:     keywords.Compile(ks.Hook),
			Problem:  keywords.Compile(ks.Problem),
			Solution: keywords.Compile(ks.Solution),
			Conflict: keywords.Compile(ks.Conflict),
		},
	})
	if err != nil {
		return types.ShortConfig{}, fmt.Errorf("template %q: %w", templateName, err)
	}

	return types.ShortConfig{
		ShortID:           e.newID(),
		OriginalVideoID:   res.VideoID,
		HighlightID:       res.HighlightID,
		TargetPlatform:    platformName,
		TargetLength:      target,
		Template:          templateName,
		Highlights:        selected,
		Structure:         structure,
		Script:            shorts.Script(structure),
		EstimatedDuration: shorts.TotalDuration(structure),
	}, nil
}
