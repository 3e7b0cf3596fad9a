package config

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid config")

// Validate ensures the configuration is usable. It is run once at load time
// so that no run can hit a broken template or platform.
func (c *Config) Validate() error {
	if err := c.validateThresholds(); err != nil {
		return err
	}
	if err := c.validateTemplates(); err != nil {
		return err
	}
	if err := c.validatePlatforms(); err != nil {
		return err
	}
	if _, ok := c.Keywords[c.DefaultLanguage]; len(c.Keywords) > 0 && !ok {
		return fmt.Errorf("%w: default_language %q has no keyword set", ErrInvalidConfig, c.DefaultLanguage)
	}
	if c.TopSegments < 0 {
		return fmt.Errorf("%w: top_segments must be >= 0", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validateThresholds() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"engagement_threshold", c.EngagementThreshold},
		{"text_highlight_threshold", c.TextHighlightThreshold},
		{"text_density_threshold", c.TextDensityThreshold},
		{"visual_change_threshold", c.VisualChangeThreshold},
		{"viral_score_threshold", c.ViralScoreThreshold},
	}
	for _, ch := range checks {
		if ch.v < 0 || ch.v > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %v", ErrInvalidConfig, ch.name, ch.v)
		}
	}
	return nil
}

func (c *Config) validateTemplates() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("%w: no templates configured", ErrInvalidConfig)
	}
	for _, name := range c.TemplateNames() {
		t := c.Templates[name]
		if len(t.Structure) == 0 {
			return fmt.Errorf("%w: template %q has no slots", ErrInvalidConfig, name)
		}
		for _, r := range t.Structure {
			if !r.Valid() {
				return fmt.Errorf("%w: template %q uses unknown slot role %q", ErrInvalidConfig, name, r)
			}
		}
	}
	if _, ok := c.Templates[c.DefaultTemplate]; !ok {
		return fmt.Errorf("%w: default_template %q is not in the template catalog", ErrInvalidConfig, c.DefaultTemplate)
	}
	return nil
}

func (c *Config) validatePlatforms() error {
	for _, name := range c.PlatformNames() {
		p := c.Platforms[name]
		if p.Duration <= 0 {
			return fmt.Errorf("%w: platform %q duration must be > 0", ErrInvalidConfig, name)
		}
		for _, l := range p.RecommendedLengths {
			if l <= 0 {
				return fmt.Errorf("%w: platform %q recommended lengths must be > 0", ErrInvalidConfig, name)
			}
		}
	}
	if _, ok := c.Platforms[c.DefaultPlatform]; !ok {
		return fmt.Errorf("%w: default_platform %q is not in the platform catalog", ErrInvalidConfig, c.DefaultPlatform)
	}
	return nil
}
