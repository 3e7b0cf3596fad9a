package highlights

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

const (
	// DefaultTextThreshold is the minimum sentence score that becomes a highlight.
	DefaultTextThreshold = 0.6

	syntheticSentenceSpan = 5 * time.Second
	mediumTextConfidence  = 0.8

	// scoreEpsilon absorbs float drift from summing keyword weights.
	scoreEpsilon = 1e-9
)

var reSentence = regexp.MustCompile(`[^.!?]+[.!?]*`)

// Aligner maps a sentence index onto a time range of the source video.
type Aligner func(index int, hints []types.TimeHint) types.Timestamp

// IndexAligner takes the hint at the sentence's index and synthesizes a
// fixed five second slot when the hint is missing or unusable.
// TODO: replace with forced alignment against word-level ASR timings.
func IndexAligner(index int, hints []types.TimeHint) types.Timestamp {
	if index < len(hints) {
		ts := types.Timestamp{Start: types.Seconds(hints[index].Start), End: types.Seconds(hints[index].End)}
		if ts.Valid() {
			return ts
		}
	}
	start := time.Duration(index) * syntheticSentenceSpan
	return types.Timestamp{Start: start, End: start + syntheticSentenceSpan}
}

type TextParams struct {
	Scoring   TextScoring
	Threshold float64
	Align     Aligner
}

// ExtractText scores every transcript sentence and keeps those above the
// threshold, strongest first.
func ExtractText(transcript string, hints []types.TimeHint, p TextParams) []types.Highlight {
	sentences := SplitSentences(transcript)
	if len(sentences) == 0 {
		return nil
	}
	align := p.Align
	if align == nil {
		align = IndexAligner
	}

	var out []types.Highlight
	for i, s := range sentences {
		score := p.Scoring.Score(s)
		if score <= p.Threshold+scoreEpsilon {
			continue
		}
		conf := types.ConfidenceLow
		if score >= mediumTextConfidence-scoreEpsilon {
			conf = types.ConfidenceMedium
		}
		out = append(out, types.Highlight{
			Content:    s,
			Timestamp:  align(i, hints),
			Score:      score,
			Source:     types.SourceText,
			Confidence: conf,
		})
	}
	sortByScore(out)
	return out
}

// SplitSentences splits text on terminal punctuation, keeping the terminator.
func SplitSentences(text string) []string {
	var out []string
	for _, m := range reSentence.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sortByScore(hs []types.Highlight) {
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Score > hs[j].Score })
}
