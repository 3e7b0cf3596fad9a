// Package lingua detects the transcript language so the matching keyword set
// can be used for scoring.
package lingua

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

const (
	// minChars is the shortest transcript worth running detection on.
	minChars = 20
	// minRelativeDistance makes close calls between candidates come back
	// as undetected instead of guessed.
	minRelativeDistance = 0.1
)

// defaultLanguages are the candidates when New gets fewer than two. Keyword
// sets usually exist for only some of them; the rest fall back to the
// configured default language.
var defaultLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
}

type Detector struct {
	d lingua.LanguageDetector
}

// New builds a detector restricted to the given languages. Detection needs at
// least two candidates; with fewer it uses defaultLanguages.
func New(languages ...lingua.Language) *Detector {
	if len(languages) < 2 {
		languages = defaultLanguages
	}
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithMinimumRelativeDistance(minRelativeDistance).
		Build()
	return &Detector{d: d}
}

func (d *Detector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minChars {
		return "", false
	}
	lang, ok := d.d.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
