package config

import (
	"sort"
	"strings"
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

type Config struct {
	EngagementThreshold    float64 `yaml:"engagement_threshold" toml:"engagement_threshold"`
	TextHighlightThreshold float64 `yaml:"text_highlight_threshold" toml:"text_highlight_threshold"`
	// Reserved for future extractors; validated but not scored yet.
	TextDensityThreshold  float64 `yaml:"text_density_threshold" toml:"text_density_threshold"`
	VisualChangeThreshold float64 `yaml:"visual_change_threshold" toml:"visual_change_threshold"`
	ViralScoreThreshold   float64 `yaml:"viral_score_threshold" toml:"viral_score_threshold"`

	TopSegments     int    `yaml:"top_segments" toml:"top_segments"`
	DefaultTemplate string `yaml:"default_template" toml:"default_template"`
	DefaultPlatform string `yaml:"default_platform" toml:"default_platform"`
	// DefaultLanguage picks the keyword set when the transcript language is
	// unknown or has no set of its own.
	DefaultLanguage string `yaml:"default_language" toml:"default_language"`

	Keywords  map[string]KeywordSet `yaml:"keywords" toml:"keywords"`
	Platforms map[string]Platform   `yaml:"platforms" toml:"platforms"`
	Templates map[string]Template   `yaml:"templates" toml:"templates"`
}

// KeywordSet is the keyword data for one transcript language.
type KeywordSet struct {
	Viral        []string `yaml:"viral" toml:"viral"`
	Question     []string `yaml:"question" toml:"question"`
	CallToAction []string `yaml:"call_to_action" toml:"call_to_action"`
	Hook         []string `yaml:"hook" toml:"hook"`
	Problem      []string `yaml:"problem" toml:"problem"`
	Solution     []string `yaml:"solution" toml:"solution"`
	Conflict     []string `yaml:"conflict" toml:"conflict"`
}

// Platform describes a short-form target format. Durations are in seconds.
type Platform struct {
	Duration           int    `yaml:"duration" toml:"duration"`
	AspectRatio        string `yaml:"aspect_ratio" toml:"aspect_ratio"`
	Resolution         string `yaml:"resolution" toml:"resolution"`
	RecommendedLengths []int  `yaml:"recommended_lengths" toml:"recommended_lengths"`
}

func (p Platform) MaxDuration() time.Duration { return time.Duration(p.Duration) * time.Second }

// ResolveTarget picks the short length for a request. A non-positive request
// uses the first recommended length; anything above the platform maximum is
// clamped to it.
func (p Platform) ResolveTarget(requested time.Duration) time.Duration {
	target := requested
	if target <= 0 {
		if len(p.RecommendedLengths) > 0 {
			target = time.Duration(p.RecommendedLengths[0]) * time.Second
		} else {
			target = p.MaxDuration()
		}
	}
	if limit := p.MaxDuration(); limit > 0 && target > limit {
		target = limit
	}
	return target
}

type Template struct {
	Structure []types.SlotRole `yaml:"structure" toml:"structure"`
	Category  string           `yaml:"category" toml:"category"`
}

// Template returns the named template, or the default template when the name
// is unknown. The returned name is the one actually used.
func (c *Config) Template(name string) (string, Template) {
	if t, ok := c.Templates[name]; ok {
		return name, t
	}
	return c.DefaultTemplate, c.Templates[c.DefaultTemplate]
}

// Platform returns the named platform; an empty name selects the default.
func (c *Config) Platform(name string) (string, Platform, bool) {
	if strings.TrimSpace(name) == "" {
		name = c.DefaultPlatform
	}
	p, ok := c.Platforms[name]
	return name, p, ok
}

// KeywordsFor returns the keyword set of a language. Unknown or empty
// languages get the DefaultLanguage set.
func (c *Config) KeywordsFor(lang string) KeywordSet {
	if ks, ok := c.Keywords[normalizeLang(lang)]; ok {
		return ks
	}
	return c.Keywords[c.DefaultLanguage]
}

// TemplateNames returns the catalog names in sorted order.
func (c *Config) TemplateNames() []string {
	names := make([]string, 0, len(c.Templates))
	for n := range c.Templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Config) PlatformNames() []string {
	names := make([]string, 0, len(c.Platforms))
	for n := range c.Platforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
