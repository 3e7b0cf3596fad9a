package types

import (
	"encoding/json"
	"time"
)

// Video is the metadata bundle handed over by the video metadata provider.
// All times are in seconds.
type Video struct {
	VideoID           string            `json:"videoId"`
	Title             string            `json:"title"`
	Transcript        string            `json:"transcript"`
	Timestamps        []TimeHint        `json:"timestamps,omitempty"`
	EngagementMetrics EngagementMetrics `json:"engagementMetrics"`
	MonetizationData  MonetizationData  `json:"monetizationData"`
}

type TimeHint struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type EngagementMetrics struct {
	Timeline []EngagementSample `json:"timeline,omitempty"`
}

type EngagementSample struct {
	Timestamp      float64 `json:"timestamp"`
	Duration       float64 `json:"duration"`
	EngagementRate float64 `json:"engagementRate"`
}

type MonetizationData struct {
	RevenueTimeline []RevenueSample `json:"revenueTimeline,omitempty"`
}

type RevenueSample struct {
	Timestamp float64 `json:"timestamp"`
	Duration  float64 `json:"duration"`
	Revenue   float64 `json:"revenue"`
}

type Source string

const (
	SourceText         Source = "text"
	SourceEngagement   Source = "engagement"
	SourceMonetization Source = "monetization"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Timestamp is a half-open time range inside the long-form video.
type Timestamp struct {
	Start time.Duration
	End   time.Duration
}

func (t Timestamp) Span() time.Duration { return t.End - t.Start }

func (t Timestamp) Valid() bool { return t.Start < t.End }

type timestampJSON struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(timestampJSON{Start: t.Start.Seconds(), End: t.End.Seconds()})
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw timestampJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Start, t.End = Seconds(raw.Start), Seconds(raw.End)
	return nil
}

// Highlight is a scored candidate excerpt produced by one extractor.
type Highlight struct {
	Content    string     `json:"content"`
	Timestamp  Timestamp  `json:"timestamp"`
	Score      float64    `json:"score"`
	Source     Source     `json:"source"`
	Confidence Confidence `json:"confidence"`
}

type RankedHighlight struct {
	Highlight
	WeightedScore float64 `json:"weightedScore"`
}

type SlotRole string

const (
	RoleHook             SlotRole = "hook"
	RoleValueProposition SlotRole = "value_proposition"
	RoleContext          SlotRole = "context"
	RoleQuestion         SlotRole = "question"
	RoleCallToAction     SlotRole = "call_to_action"
	RoleSetup            SlotRole = "setup"
	RoleConflict         SlotRole = "conflict"
	RoleResolution       SlotRole = "resolution"
	RoleProblem          SlotRole = "problem"
	RoleSolution         SlotRole = "solution"
	RoleExample          SlotRole = "example"
)

// SlotRoles lists every role a template may reference.
func SlotRoles() []SlotRole {
	return []SlotRole{
		RoleHook, RoleValueProposition, RoleContext, RoleQuestion, RoleCallToAction,
		RoleSetup, RoleConflict, RoleResolution, RoleProblem, RoleSolution, RoleExample,
	}
}

func (r SlotRole) Valid() bool {
	for _, known := range SlotRoles() {
		if r == known {
			return true
		}
	}
	return false
}

type ShortSegment struct {
	Role     SlotRole
	Content  string
	Duration time.Duration
	Order    int
}

type shortSegmentJSON struct {
	Role     SlotRole `json:"role"`
	Content  string   `json:"content"`
	Duration float64  `json:"duration"`
	Order    int      `json:"order"`
}

func (s ShortSegment) MarshalJSON() ([]byte, error) {
	return json.Marshal(shortSegmentJSON{Role: s.Role, Content: s.Content, Duration: s.Duration.Seconds(), Order: s.Order})
}

func (s *ShortSegment) UnmarshalJSON(b []byte) error {
	var raw shortSegmentJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ShortSegment{Role: raw.Role, Content: raw.Content, Duration: Seconds(raw.Duration), Order: raw.Order}
	return nil
}

type HighlightResult struct {
	HighlightID string            `json:"highlightId"`
	VideoID     string            `json:"videoId"`
	Title       string            `json:"title"`
	Language    string            `json:"language,omitempty"`
	Highlights  []RankedHighlight `json:"highlights"`
	Summary     HighlightSummary  `json:"summary"`
}

type HighlightSummary struct {
	TotalHighlights       int               `json:"totalHighlights"`
	TopPerformingSegments []RankedHighlight `json:"topPerformingSegments"`
}

// ShortConfig is the assembled short handed to the rendering collaborator.
type ShortConfig struct {
	ShortID           string
	OriginalVideoID   string
	HighlightID       string
	TargetPlatform    string
	TargetLength      time.Duration
	Template          string
	Highlights        []RankedHighlight
	Structure         []ShortSegment
	Script            string
	EstimatedDuration time.Duration
}

type shortConfigJSON struct {
	ShortID           string            `json:"shortId"`
	OriginalVideoID   string            `json:"originalVideoId"`
	HighlightID       string            `json:"highlightId,omitempty"`
	TargetPlatform    string            `json:"targetPlatform"`
	TargetLength      float64           `json:"targetLength"`
	Template          string            `json:"template"`
	Highlights        []RankedHighlight `json:"highlights"`
	Structure         []ShortSegment    `json:"structure"`
	Script            string            `json:"script"`
	EstimatedDuration float64           `json:"estimatedDuration"`
}

func (c ShortConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(shortConfigJSON{
		ShortID:           c.ShortID,
		OriginalVideoID:   c.OriginalVideoID,
		HighlightID:       c.HighlightID,
		TargetPlatform:    c.TargetPlatform,
		TargetLength:      c.TargetLength.Seconds(),
		Template:          c.Template,
		Highlights:        c.Highlights,
		Structure:         c.Structure,
		Script:            c.Script,
		EstimatedDuration: c.EstimatedDuration.Seconds(),
	})
}

func (c *ShortConfig) UnmarshalJSON(b []byte) error {
	var raw shortConfigJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = ShortConfig{
		ShortID:           raw.ShortID,
		OriginalVideoID:   raw.OriginalVideoID,
		HighlightID:       raw.HighlightID,
		TargetPlatform:    raw.TargetPlatform,
		TargetLength:      Seconds(raw.TargetLength),
		Template:          raw.Template,
		Highlights:        raw.Highlights,
		Structure:         raw.Structure,
		Script:            raw.Script,
		EstimatedDuration: Seconds(raw.EstimatedDuration),
	}
	return nil
}

type Manifest struct {
	Platform string          `json:"platform"`
	Template string          `json:"template"`
	Videos   []ManifestVideo `json:"videos"`
}

type ManifestVideo struct {
	Input        string   `json:"input"`
	VideoID      string   `json:"video_id,omitempty"`
	Title        string   `json:"title,omitempty"`
	Language     string   `json:"language,omitempty"`
	HighlightID  string   `json:"highlight_id,omitempty"`
	ShortID      string   `json:"short_id,omitempty"`
	Highlights   int      `json:"highlights"`
	Selected     int      `json:"selected"`
	EstimatedSec float64  `json:"estimated_sec"`
	Dir          string   `json:"dir,omitempty"`
	Script       string   `json:"script,omitempty"`
	Captions     string   `json:"captions,omitempty"`
	Clips        []string `json:"clips,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Seconds converts a float second count into a Duration.
func Seconds(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
