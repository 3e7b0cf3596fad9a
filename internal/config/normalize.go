package config

import (
	"sort"
	"strings"
	"unicode"

	"github.com/forPelevin/repurpose/internal/types"
)

func (c *Config) normalize() {
	c.DefaultTemplate = strings.TrimSpace(c.DefaultTemplate)
	c.DefaultPlatform = strings.TrimSpace(c.DefaultPlatform)
	if c.DefaultTemplate == "" {
		c.DefaultTemplate = DefaultTemplateName
	}
	if c.DefaultPlatform == "" {
		c.DefaultPlatform = DefaultPlatformName
	}
	c.DefaultLanguage = normalizeLang(c.DefaultLanguage)
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguageName
	}

	if len(c.Keywords) > 0 {
		// Keys that need normalizing come from a config file and win over
		// the built-in entry they collide with.
		kw := make(map[string]KeywordSet, len(c.Keywords))
		var rewritten []string
		for lang, ks := range c.Keywords {
			norm := normalizeLang(lang)
			if norm != lang {
				rewritten = append(rewritten, lang)
				continue
			}
			kw[norm] = ks
		}
		sort.Strings(rewritten)
		for _, lang := range rewritten {
			kw[normalizeLang(lang)] = c.Keywords[lang]
		}
		c.Keywords = kw
	}
	for name, t := range c.Templates {
		for i, r := range t.Structure {
			t.Structure[i] = normalizeRole(string(r))
		}
		c.Templates[name] = t
	}
}

// normalizeRole accepts camelCase, kebab-case and spaced role names.
func normalizeRole(s string) types.SlotRole {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return types.SlotRole(b.String())
}

func normalizeLang(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
