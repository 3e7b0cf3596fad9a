// Package keywords matches configured keyword phrases against free text.
//
// Text and keywords are case folded and split into word tokens, so a keyword
// only matches on word boundaries ("ki" matches "KI," but not "Kinder").
// A question mark is kept as its own token so it can be listed as a keyword.
package keywords

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Set is a compiled, read-only list of keyword phrases.
type Set struct {
	phrases [][]string
}

// Compile folds and tokenizes the given keywords. Empty entries and entries
// that fold to an already seen phrase are dropped.
func Compile(keywords []string) Set {
	var s Set
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		toks := Tokenize(k)
		if len(toks) == 0 {
			continue
		}
		key := strings.Join(toks, " ")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		s.phrases = append(s.phrases, toks)
	}
	return s
}

func (s Set) Len() int { return len(s.phrases) }

// Count returns how many distinct keywords occur in tokens.
func (s Set) Count(tokens []string) int {
	n := 0
	for _, p := range s.phrases {
		if containsPhrase(tokens, p) {
			n++
		}
	}
	return n
}

func (s Set) Match(tokens []string) bool {
	for _, p := range s.phrases {
		if containsPhrase(tokens, p) {
			return true
		}
	}
	return false
}

// Tokenize case folds text and splits it into word tokens.
func Tokenize(text string) []string {
	// Caser is stateful, so one is built per call.
	folded := cases.Fold().String(text)

	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			cur.WriteRune(r)
		case r == '?':
			flush()
			out = append(out, "?")
		default:
			flush()
		}
	}
	flush()
	return out
}

func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, w := range phrase {
			if tokens[i+j] != w {
				continue outer
			}
		}
		return true
	}
	return false
}
