package highlights

import (
	"math"
	"sort"
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

const (
	bucketSize          = 10 * time.Second
	defaultSourceWeight = 0.20
)

var sourceWeights = map[types.Source]float64{
	types.SourceMonetization: 0.40,
	types.SourceEngagement:   0.35,
	types.SourceText:         0.25,
}

// SourceWeight returns the fusion weight of a signal source.
func SourceWeight(s types.Source) float64 {
	if w, ok := sourceWeights[s]; ok {
		return w
	}
	return defaultSourceWeight
}

// Signals groups the per-source extractor outputs of one video.
type Signals struct {
	Text         []types.Highlight
	Engagement   []types.Highlight
	Monetization []types.Highlight
}

// Fuse merges all signals into one ranked list. Lists are concatenated in
// source priority order (monetization, engagement, text) so that deduplication
// keeps the stronger source, then ordered by weighted score. Equal weighted
// scores keep their concatenation order.
func Fuse(sig Signals) []types.RankedHighlight {
	all := make([]types.Highlight, 0, len(sig.Monetization)+len(sig.Engagement)+len(sig.Text))
	all = appendTagged(all, sig.Monetization, types.SourceMonetization)
	all = appendTagged(all, sig.Engagement, types.SourceEngagement)
	all = appendTagged(all, sig.Text, types.SourceText)

	kept := Dedupe(all)
	out := make([]types.RankedHighlight, len(kept))
	for i, h := range kept {
		out[i] = types.RankedHighlight{Highlight: h, WeightedScore: h.Score * SourceWeight(h.Source)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WeightedScore > out[j].WeightedScore })
	return out
}

func appendTagged(dst, src []types.Highlight, source types.Source) []types.Highlight {
	for _, h := range src {
		h.Source = source
		dst = append(dst, h)
	}
	return dst
}

type bucket struct {
	start int64
	end   int64
}

func bucketOf(ts types.Timestamp) bucket {
	return bucket{start: bucketIndex(ts.Start), end: bucketIndex(ts.End)}
}

func bucketIndex(d time.Duration) int64 {
	return int64(math.Floor(float64(d) / float64(bucketSize)))
}

// Dedupe drops every highlight whose start and end fall into the same
// 10-second buckets as an earlier one.
func Dedupe(hs []types.Highlight) []types.Highlight {
	seen := make(map[bucket]struct{}, len(hs))
	out := make([]types.Highlight, 0, len(hs))
	for _, h := range hs {
		k := bucketOf(h.Timestamp)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, h)
	}
	return out
}
