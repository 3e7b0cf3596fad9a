package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/repurpose/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "repurpose.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleResult() types.HighlightResult {
	h := types.RankedHighlight{
		Highlight: types.Highlight{
			Content:    "Engagement peak (85%) at 0:30",
			Timestamp:  types.Timestamp{Start: 30 * time.Second, End: 42 * time.Second},
			Score:      0.85,
			Source:     types.SourceEngagement,
			Confidence: types.ConfidenceMedium,
		},
		WeightedScore: 0.2975,
	}
	return types.HighlightResult{
		HighlightID: "h1",
		VideoID:     "v1",
		Title:       "Talk",
		Language:    "de",
		Highlights:  []types.RankedHighlight{h},
		Summary:     types.HighlightSummary{TotalHighlights: 1, TopPerformingSegments: []types.RankedHighlight{h}},
	}
}

func TestStore_HighlightsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	res := sampleResult()
	require.NoError(t, s.SaveHighlights(ctx, res))
	// saving again updates in place
	require.NoError(t, s.SaveHighlights(ctx, res))

	got, err := s.GetHighlights(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, res, got)

	_, err = s.GetHighlights(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ShortsByVideo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveHighlights(ctx, sampleResult()))

	base := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := types.ShortConfig{
		ShortID:         "s1",
		OriginalVideoID: "v1",
		HighlightID:     "h1",
		TargetPlatform:  "youtube_shorts",
		TargetLength:    60 * time.Second,
		Template:        "hookFirst",
		Structure: []types.ShortSegment{
			{Role: types.RoleHook, Content: "Hook", Duration: 30 * time.Second, Order: 1},
			{Role: types.RoleCallToAction, Content: "Follow", Duration: 30 * time.Second, Order: 2},
		},
		Script:            "[1] HOOK\nHook\n",
		EstimatedDuration: 60 * time.Second,
	}
	second := first
	second.ShortID = "s2"
	second.HighlightID = ""
	other := first
	other.ShortID = "s3"
	other.OriginalVideoID = "v2"
	other.HighlightID = ""

	require.NoError(t, s.SaveShort(ctx, first))
	require.NoError(t, s.SaveShort(ctx, second))
	require.NoError(t, s.SaveShort(ctx, other))

	got, err := s.ListShorts(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ShortID)
	assert.Equal(t, "s2", got[1].ShortID)
	assert.Equal(t, first.Structure, got[0].Structure)
	assert.Equal(t, 60*time.Second, got[0].TargetLength)

	none, err := s.ListShorts(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_ShortRequiresKnownHighlight(t *testing.T) {
	s := openTestStore(t)
	err := s.SaveShort(context.Background(), types.ShortConfig{ShortID: "s1", OriginalVideoID: "v1", HighlightID: "unknown"})
	require.Error(t, err)
}

func TestStore_DuplicateShortID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	short := types.ShortConfig{ShortID: "s1", OriginalVideoID: "v1"}
	require.NoError(t, s.SaveShort(ctx, short))
	require.Error(t, s.SaveShort(ctx, short))
}
