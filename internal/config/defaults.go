package config

import "github.com/forPelevin/repurpose/internal/types"

const (
	DefaultTemplateName = "hookFirst"
	DefaultPlatformName = "youtube_shorts"
	DefaultLanguageName = "en"
)

// Default returns a fresh configuration with the built-in catalogs.
func Default() *Config {
	return &Config{
		EngagementThreshold:    0.7,
		TextHighlightThreshold: 0.6,
		TextDensityThreshold:   0.5,
		VisualChangeThreshold:  0.3,
		ViralScoreThreshold:    0.8,
		TopSegments:            5,
		DefaultTemplate:        DefaultTemplateName,
		DefaultPlatform:        DefaultPlatformName,
		DefaultLanguage:        DefaultLanguageName,
		Keywords: map[string]KeywordSet{
			"de": {
				Viral:        []string{"wusstet ihr", "ki", "verändert", "zukunft", "geheimnis", "unglaublich", "krass", "revolution", "niemand", "fehler", "sofort", "wahnsinn"},
				Question:     []string{"?", "wer", "was", "wie", "warum", "wieso", "weshalb", "wann", "wo", "welche"},
				CallToAction: []string{"abonniert", "abonnieren", "liken", "kommentiert", "teilt", "folgt", "klickt", "link", "jetzt"},
				Hook:         []string{"überraschend", "wusstet ihr", "stellt euch vor", "niemand", "geheimnis", "unglaublich"},
				Problem:      []string{"problem", "schwierig", "fehler", "herausforderung", "leider", "frust"},
				Solution:     []string{"lösung", "so geht", "tipp", "trick", "einfach", "funktioniert"},
				Conflict:     []string{"aber", "jedoch", "konflikt", "kampf", "gegen", "streit"},
			},
			"en": {
				Viral:        []string{"did you know", "ai", "changes everything", "future", "secret", "unbelievable", "insane", "revolution", "nobody", "mistake", "instantly"},
				Question:     []string{"?", "who", "what", "how", "why", "when", "where", "which"},
				CallToAction: []string{"subscribe", "like", "comment", "share", "follow", "click", "link", "now"},
				Hook:         []string{"surprising", "did you know", "imagine", "nobody", "secret", "unbelievable"},
				Problem:      []string{"problem", "hard", "mistake", "challenge", "struggle"},
				Solution:     []string{"solution", "here's how", "tip", "trick", "simple", "works"},
				Conflict:     []string{"but", "however", "conflict", "fight", "versus"},
			},
		},
		Platforms: map[string]Platform{
			"youtube_shorts": {
				Duration:           60,
				AspectRatio:        "9:16",
				Resolution:         "1080x1920",
				RecommendedLengths: []int{15, 30, 60},
			},
			"tiktok": {
				Duration:           180,
				AspectRatio:        "9:16",
				Resolution:         "1080x1920",
				RecommendedLengths: []int{15, 30, 60},
			},
			"instagram_reels": {
				Duration:           90,
				AspectRatio:        "9:16",
				Resolution:         "1080x1920",
				RecommendedLengths: []int{15, 30, 60, 90},
			},
		},
		Templates: map[string]Template{
			"hookFirst": {
				Structure: []types.SlotRole{types.RoleHook, types.RoleValueProposition, types.RoleContext, types.RoleCallToAction},
				Category:  "engagement",
			},
			"questionAnswer": {
				Structure: []types.SlotRole{types.RoleQuestion, types.RoleContext, types.RoleValueProposition, types.RoleCallToAction},
				Category:  "educational",
			},
			"storytelling": {
				Structure: []types.SlotRole{types.RoleSetup, types.RoleConflict, types.RoleResolution, types.RoleCallToAction},
				Category:  "narrative",
			},
			"problemSolution": {
				Structure: []types.SlotRole{types.RoleProblem, types.RoleSolution, types.RoleExample, types.RoleCallToAction},
				Category:  "educational",
			},
		},
	}
}
