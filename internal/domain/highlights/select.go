package highlights

import (
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

// closeEnough is the fill ratio after which no further highlights are admitted.
const closeEnough = 0.9

// Select greedily admits ranked highlights while their summed span stays
// within target, and stops admitting once target is 90% filled. Highlights
// longer than maxSegment are never admitted (maxSegment <= 0 disables that
// filter). Output keeps ranked order.
func Select(ranked []types.RankedHighlight, target, maxSegment time.Duration) []types.RankedHighlight {
	if target <= 0 {
		return nil
	}
	var (
		out   []types.RankedHighlight
		total time.Duration
	)
	for _, h := range ranked {
		if float64(total) >= closeEnough*float64(target) {
			break
		}
		span := h.Timestamp.Span()
		if span <= 0 {
			continue
		}
		if maxSegment > 0 && span > maxSegment {
			continue
		}
		if total+span > target {
			continue
		}
		out = append(out, h)
		total += span
	}
	return out
}

// TotalSpan sums the spans of the given highlights.
func TotalSpan(hs []types.RankedHighlight) time.Duration {
	var total time.Duration
	for _, h := range hs {
		total += h.Timestamp.Span()
	}
	return total
}
