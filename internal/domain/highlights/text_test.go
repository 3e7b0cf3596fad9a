package highlights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/repurpose/internal/types"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Wusstet ihr, dass KI alles verändert? Das ist die Zukunft.  Wow!!  ")
	assert.Equal(t, []string{"Wusstet ihr, dass KI alles verändert?", "Das ist die Zukunft.", "Wow!!"}, got)
	assert.Empty(t, SplitSentences("   "))
}

func TestExtractText_GermanTranscriptWithoutHints(t *testing.T) {
	hs := ExtractText("Wusstet ihr, dass KI alles verändert? Das ist die Zukunft.", nil, TextParams{
		Scoring:   testScoring(),
		Threshold: DefaultTextThreshold,
	})
	require.Len(t, hs, 1)
	h := hs[0]
	assert.Equal(t, types.SourceText, h.Source)
	assert.Equal(t, "Wusstet ihr, dass KI alles verändert?", h.Content)
	assert.Equal(t, types.Timestamp{Start: 0, End: 5 * time.Second}, h.Timestamp)
	assert.Equal(t, types.ConfidenceLow, h.Confidence)
}

func TestExtractText_UsesHintsAndSynthesizesMissing(t *testing.T) {
	transcript := "Das Wetter ist gut. Wusstet ihr das Geheimnis der KI? Wusstet ihr, warum KI alles verändert?"
	hints := []types.TimeHint{{Start: 0, End: 3}, {Start: 12.5, End: 19}}
	hs := ExtractText(transcript, hints, TextParams{Scoring: testScoring(), Threshold: DefaultTextThreshold})
	require.Len(t, hs, 2)

	// Strongest first: the third sentence has an extra question word.
	assert.Equal(t, "Wusstet ihr, warum KI alles verändert?", hs[0].Content)
	assert.Equal(t, types.Timestamp{Start: 10 * time.Second, End: 15 * time.Second}, hs[0].Timestamp)
	assert.Equal(t, types.ConfidenceMedium, hs[0].Confidence)

	assert.Equal(t, "Wusstet ihr das Geheimnis der KI?", hs[1].Content)
	assert.Equal(t, types.Timestamp{Start: 12500 * time.Millisecond, End: 19 * time.Second}, hs[1].Timestamp)
}

func TestExtractText_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractText("", nil, TextParams{Scoring: testScoring(), Threshold: DefaultTextThreshold}))
}

func TestExtractText_CustomAligner(t *testing.T) {
	align := func(i int, _ []types.TimeHint) types.Timestamp {
		return types.Timestamp{Start: time.Duration(i) * time.Minute, End: time.Duration(i+1) * time.Minute}
	}
	hs := ExtractText("Wusstet ihr, dass KI alles verändert?", nil, TextParams{
		Scoring: testScoring(), Threshold: DefaultTextThreshold, Align: align,
	})
	require.Len(t, hs, 1)
	assert.Equal(t, time.Minute, hs[0].Timestamp.End)
}

func TestIndexAligner_InvalidHintFallsBack(t *testing.T) {
	got := IndexAligner(2, []types.TimeHint{{}, {}, {Start: 9, End: 9}})
	assert.Equal(t, types.Timestamp{Start: 10 * time.Second, End: 15 * time.Second}, got)
}

func TestExtractText_ThresholdEdges(t *testing.T) {
	tests := []struct {
		name       string
		sentence   string
		want       int
		confidence types.Confidence
	}{
		// Three viral words sum to 0.6000000000000001, which must not pass > 0.6.
		{"exactly threshold", "KI Zukunft Geheimnis.", 0, ""},
		{"just above threshold", "Wusstet ihr, dass KI alles verändert?", 1, types.ConfidenceLow},
		{"exactly medium", "KI Zukunft Geheimnis verändert.", 1, types.ConfidenceMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := ExtractText(tt.sentence, nil, TextParams{Scoring: testScoring(), Threshold: DefaultTextThreshold})
			require.Len(t, hs, tt.want)
			if tt.want > 0 {
				assert.Equal(t, tt.confidence, hs[0].Confidence)
			}
		})
	}
}
