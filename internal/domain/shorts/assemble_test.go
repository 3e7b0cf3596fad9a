package shorts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/repurpose/internal/domain/keywords"
	"github.com/forPelevin/repurpose/internal/types"
)

var hookFirst = []types.SlotRole{types.RoleHook, types.RoleValueProposition, types.RoleContext, types.RoleCallToAction}

func rh(content string, src types.Source) types.RankedHighlight {
	return types.RankedHighlight{Highlight: types.Highlight{Content: content, Source: src}}
}

func testKeywords() Keywords {
	return Keywords{
		Hook:     keywords.Compile([]string{"surprising", "did you know", "wusstet ihr"}),
		Problem:  keywords.Compile([]string{"problem", "fehler"}),
		Solution: keywords.Compile([]string{"lösung", "tipp"}),
		Conflict: keywords.Compile([]string{"aber"}),
	}
}

func TestAssemble_NoSlotsIsError(t *testing.T) {
	_, err := Assemble(Request{Target: time.Minute})
	require.ErrorIs(t, err, ErrNoSlots)
}

func TestAssemble_EmptyHighlightsUseFallbacks(t *testing.T) {
	segs, err := Assemble(Request{Slots: hookFirst, Target: 60 * time.Second, Keywords: testKeywords()})
	require.NoError(t, err)
	require.Len(t, segs, 4)
	assert.Equal(t, genericHook, segs[0].Content)
	assert.Equal(t, genericValue, segs[1].Content)
	assert.Equal(t, genericContext, segs[2].Content)
	assert.Equal(t, staticCallToAction, segs[3].Content)
	for i, s := range segs {
		assert.Equal(t, hookFirst[i], s.Role)
		assert.Equal(t, i+1, s.Order)
		assert.Equal(t, 15*time.Second, s.Duration)
	}
}

func TestAssemble_DurationsSumExactly(t *testing.T) {
	slots := []types.SlotRole{types.RoleHook, types.RoleContext, types.RoleSetup, types.RoleExample, types.RoleQuestion, types.RoleProblem, types.RoleCallToAction}
	for _, target := range []time.Duration{60 * time.Second, 61 * time.Second, 7*time.Second + 3, 1} {
		segs, err := Assemble(Request{Slots: slots, Target: target})
		require.NoError(t, err)
		assert.Equal(t, target, TotalDuration(segs))
	}
}

func TestAssemble_EveryRoleHasResolver(t *testing.T) {
	for _, r := range types.SlotRoles() {
		_, ok := resolvers[r]
		assert.True(t, ok, "missing resolver for %s", r)
	}
	assert.Len(t, resolvers, len(types.SlotRoles()))
}

func TestAssemble_EveryRoleFilledWithoutHighlights(t *testing.T) {
	segs, err := Assemble(Request{Slots: types.SlotRoles(), Target: time.Minute})
	require.NoError(t, err)
	require.Len(t, segs, len(types.SlotRoles()))
	for _, s := range segs {
		assert.NotEmpty(t, s.Content, "role %s", s.Role)
	}
}

func TestResolvers_Table(t *testing.T) {
	hs := []types.RankedHighlight{
		rh("Top ranked plain statement.", types.SourceEngagement),
		rh("Das Problem kennt jeder.", types.SourceText),
		rh("Revenue peak (2.0x average) at 1:00", types.SourceMonetization),
		rh("Did you know this is surprising?", types.SourceText),
		rh("Mein Tipp: einfach machen.", types.SourceText),
	}
	tests := []struct {
		name   string
		role   types.SlotRole
		custom string
		hs     []types.RankedHighlight
		want   string
	}{
		{"hook custom wins", types.RoleHook, "  Stop scrolling!  ", hs, "Stop scrolling!"},
		{"hook keyword", types.RoleHook, "", hs, "Did you know this is surprising?"},
		{"hook best fallback", types.RoleHook, "", hs[:3], "Top ranked plain statement."},
		{"value prefers monetization", types.RoleValueProposition, "", hs, "Revenue peak (2.0x average) at 1:00"},
		{"value falls back to best", types.RoleValueProposition, "", hs[:2], "Top ranked plain statement."},
		{"context is middle", types.RoleContext, "", hs, "Revenue peak (2.0x average) at 1:00"},
		{"context of two", types.RoleContext, "", hs[:2], "Das Problem kennt jeder."},
		{"problem keyword", types.RoleProblem, "", hs, "Das Problem kennt jeder."},
		{"solution keyword", types.RoleSolution, "", hs, "Mein Tipp: einfach machen."},
		{"conflict falls back to best", types.RoleConflict, "", hs, "Top ranked plain statement."},
		{"conflict generic", types.RoleConflict, "", nil, genericConflict},
		{"setup static", types.RoleSetup, "", hs, staticSetup},
		{"question from top", types.RoleQuestion, "", hs, "Did you know: Top ranked plain statement?"},
		{"question generic", types.RoleQuestion, "", nil, genericQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Assemble(Request{
				Highlights: tt.hs,
				Slots:      []types.SlotRole{tt.role},
				CustomHook: tt.custom,
				Target:     10 * time.Second,
				Keywords:   testKeywords(),
			})
			require.NoError(t, err)
			require.Len(t, segs, 1)
			assert.Equal(t, tt.want, segs[0].Content)
		})
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short.", 30))
	assert.Equal(t, "abcdefghij...", snippet("abcdefghijklmnop", 10))
	assert.Equal(t, "äöü...", snippet("äöüß", 3))
}
