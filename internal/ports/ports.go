package ports

import (
	"context"
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

// VideoSource loads the metadata bundle of one long-form video.
type VideoSource interface {
	Load(ctx context.Context, ref string) (types.Video, error)
}

type Store interface {
	SaveHighlights(ctx context.Context, res types.HighlightResult) error
	SaveShort(ctx context.Context, short types.ShortConfig) error
}

type Renderer interface {
	RenderClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string) error
	ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error)
}

// LanguageDetector returns the ISO 639-1 code of text, if it can tell.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}
