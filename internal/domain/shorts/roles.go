package shorts

import (
	"fmt"
	"strings"

	"github.com/forPelevin/repurpose/internal/domain/keywords"
	"github.com/forPelevin/repurpose/internal/types"
)

const (
	genericHook         = "You won't believe what happens next!"
	genericValue        = "Here is the one thing you need to know."
	genericContext      = "Here is the background you need."
	genericQuestion     = "Did you know this?"
	genericProblem      = "Many people struggle with exactly this."
	genericSolution     = "The solution is simpler than you think."
	genericConflict     = "But then everything changed."
	staticCallToAction  = "Follow for more content like this!"
	staticSetup         = "Let's start with the basics."
	staticResolution    = "And that is how it all came together."
	staticExample       = "Here is a concrete example."
	questionSnippetRune = 30
)

type resolver func(rc *resolveContext) string

// resolvers covers every role in types.SlotRoles.
var resolvers = map[types.SlotRole]resolver{
	types.RoleHook:             resolveHook,
	types.RoleValueProposition: resolveValueProposition,
	types.RoleContext:          resolveBackground,
	types.RoleQuestion:         resolveQuestion,
	types.RoleCallToAction:     static(staticCallToAction),
	types.RoleSetup:            static(staticSetup),
	types.RoleResolution:       static(staticResolution),
	types.RoleExample:          static(staticExample),
	types.RoleProblem:          keywordResolver(func(k Keywords) keywords.Set { return k.Problem }, genericProblem),
	types.RoleSolution:         keywordResolver(func(k Keywords) keywords.Set { return k.Solution }, genericSolution),
	types.RoleConflict:         keywordResolver(func(k Keywords) keywords.Set { return k.Conflict }, genericConflict),
}

type resolveContext struct {
	highlights []types.RankedHighlight
	tokens     [][]string
	customHook string
	kw         Keywords
}

func newResolveContext(req Request) *resolveContext {
	toks := make([][]string, len(req.Highlights))
	for i, h := range req.Highlights {
		toks[i] = keywords.Tokenize(h.Content)
	}
	return &resolveContext{
		highlights: req.Highlights,
		tokens:     toks,
		customHook: strings.TrimSpace(req.CustomHook),
		kw:         req.Keywords,
	}
}

func (rc *resolveContext) resolve(role types.SlotRole) string {
	if r, ok := resolvers[role]; ok {
		return r(rc)
	}
	return firstOf(rc.best, constant(genericValue))
}

// best is the highest ranked selected highlight.
func (rc *resolveContext) best() (string, bool) {
	if len(rc.highlights) == 0 {
		return "", false
	}
	return rc.highlights[0].Content, true
}

func (rc *resolveContext) matching(set keywords.Set) func() (string, bool) {
	return func() (string, bool) {
		for i, toks := range rc.tokens {
			if set.Match(toks) {
				return rc.highlights[i].Content, true
			}
		}
		return "", false
	}
}

// firstOf walks a fallback chain and returns the first hit. The chain must
// end in a constant so that every slot gets content.
func firstOf(steps ...func() (string, bool)) string {
	for _, step := range steps {
		if s, ok := step(); ok {
			return s
		}
	}
	return ""
}

func constant(s string) func() (string, bool) {
	return func() (string, bool) { return s, true }
}

func static(s string) resolver {
	return func(*resolveContext) string { return s }
}

func keywordResolver(pick func(Keywords) keywords.Set, generic string) resolver {
	return func(rc *resolveContext) string {
		return firstOf(rc.matching(pick(rc.kw)), rc.best, constant(generic))
	}
}

func resolveHook(rc *resolveContext) string {
	custom := func() (string, bool) { return rc.customHook, rc.customHook != "" }
	return firstOf(custom, rc.matching(rc.kw.Hook), rc.best, constant(genericHook))
}

func resolveValueProposition(rc *resolveContext) string {
	monetized := func() (string, bool) {
		for _, h := range rc.highlights {
			if h.Source == types.SourceMonetization {
				return h.Content, true
			}
		}
		return "", false
	}
	return firstOf(monetized, rc.best, constant(genericValue))
}

func resolveBackground(rc *resolveContext) string {
	middle := func() (string, bool) {
		if len(rc.highlights) == 0 {
			return "", false
		}
		return rc.highlights[len(rc.highlights)/2].Content, true
	}
	return firstOf(middle, constant(genericContext))
}

func resolveQuestion(rc *resolveContext) string {
	asked := func() (string, bool) {
		top, ok := rc.best()
		if !ok {
			return "", false
		}
		return fmt.Sprintf("Did you know: %s?", snippet(top, questionSnippetRune)), true
	}
	return firstOf(asked, constant(genericQuestion))
}

// snippet cuts s to at most n runes and strips trailing punctuation.
func snippet(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	cut := len(r) > n
	if cut {
		r = r[:n]
	}
	out := strings.TrimRight(strings.TrimSpace(string(r)), ".!?,;:")
	if cut {
		out += "..."
	}
	return out
}
