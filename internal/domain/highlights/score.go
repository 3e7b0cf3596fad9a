package highlights

import (
	"strings"

	"github.com/forPelevin/repurpose/internal/domain/keywords"
)

const (
	viralWeight    = 0.2
	questionWeight = 0.15
	ctaWeight      = 0.1
	lengthBonus    = 0.1

	bonusMinWords = 10
	bonusMaxWords = 20
)

// TextScoring holds the keyword sets used to score transcript sentences.
type TextScoring struct {
	Viral        keywords.Set
	Question     keywords.Set
	CallToAction keywords.Set
}

// Score returns the heuristic relevance of one sentence in [0..1].
func (s TextScoring) Score(sentence string) float64 {
	t := strings.TrimSpace(sentence)
	if t == "" {
		return 0
	}
	toks := keywords.Tokenize(t)

	score := float64(s.Viral.Count(toks)) * viralWeight
	score += float64(s.Question.Count(toks)) * questionWeight
	score += float64(s.CallToAction.Count(toks)) * ctaWeight

	// Sentences of this length read well as a standalone caption.
	if n := len(strings.Fields(t)); n >= bonusMinWords && n <= bonusMaxWords {
		score += lengthBonus
	}
	return clamp(score, 0, 1)
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
