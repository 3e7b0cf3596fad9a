package highlights

import (
	"fmt"
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

const (
	DefaultEngagementThreshold = 0.7

	// revenueSpikeFactor is how far above the mean a sample must be to count.
	revenueSpikeFactor = 1.5
)

// ExtractEngagement keeps every sample whose engagement rate exceeds threshold.
func ExtractEngagement(timeline []types.EngagementSample, threshold float64) []types.Highlight {
	var out []types.Highlight
	for _, s := range timeline {
		if s.EngagementRate <= threshold {
			continue
		}
		ts := sampleRange(s.Timestamp, s.Duration)
		if !ts.Valid() {
			continue
		}
		out = append(out, types.Highlight{
			Content:    fmt.Sprintf("Engagement peak (%.0f%%) at %s", s.EngagementRate*100, clock(ts.Start)),
			Timestamp:  ts,
			Score:      s.EngagementRate,
			Source:     types.SourceEngagement,
			Confidence: types.ConfidenceMedium,
		})
	}
	sortByScore(out)
	return out
}

// ExtractMonetization keeps samples earning more than 1.5x the mean revenue.
// Score is revenue relative to the mean and is not clamped.
func ExtractMonetization(timeline []types.RevenueSample) []types.Highlight {
	if len(timeline) == 0 {
		return nil
	}
	var total float64
	for _, s := range timeline {
		total += s.Revenue
	}
	mean := total / float64(len(timeline))
	if mean <= 0 {
		return nil
	}

	var out []types.Highlight
	for _, s := range timeline {
		if s.Revenue <= revenueSpikeFactor*mean {
			continue
		}
		ts := sampleRange(s.Timestamp, s.Duration)
		if !ts.Valid() {
			continue
		}
		ratio := s.Revenue / mean
		out = append(out, types.Highlight{
			Content:    fmt.Sprintf("Revenue peak (%.1fx average) at %s", ratio, clock(ts.Start)),
			Timestamp:  ts,
			Score:      ratio,
			Source:     types.SourceMonetization,
			Confidence: types.ConfidenceHigh,
		})
	}
	sortByScore(out)
	return out
}

func sampleRange(startSec, durSec float64) types.Timestamp {
	start := types.Seconds(startSec)
	return types.Timestamp{Start: start, End: start + types.Seconds(durSec)}
}

func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}
