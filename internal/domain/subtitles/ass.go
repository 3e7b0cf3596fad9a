package subtitles

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/repurpose/internal/types"
)

const (
	defaultResX = 1080
	defaultResY = 1920
)

// RenderShortASS renders one caption event per segment of an assembled
// short. Event times are short-local: segment n starts where n-1 ended.
// resolution is "WIDTHxHEIGHT"; anything unparsable uses vertical 1080x1920.
func RenderShortASS(segments []types.ShortSegment, resolution string) string {
	resX, resY := parseResolution(resolution)

	var b strings.Builder
	b.WriteString(assHeader(resX, resY))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	var at time.Duration
	for _, s := range segments {
		end := at + s.Duration
		text := sanitizeASS(s.Content)
		if text != "" && s.Duration > 0 {
			b.WriteString("Dialogue: 0,")
			b.WriteString(assTime(at))
			b.WriteString(",")
			b.WriteString(assTime(end))
			b.WriteString(",Short,")
			b.WriteString(string(s.Role))
			b.WriteString(",0,0,0,,")
			b.WriteString(strings.Join(packLines(text), `\N`))
			b.WriteString("\n")
		}
		at = end
	}
	return b.String()
}

// packLines wraps text into lines of at most 42 characters. Caption lines
// beyond that get hard to read on vertical layouts.
func packLines(text string) []string {
	const charBudget = 42
	var (
		out    []string
		cur    []string
		curLen int
	)
	for _, w := range strings.Fields(text) {
		wl := len([]rune(w))
		next := curLen + wl
		if curLen > 0 {
			next++
		}
		if len(cur) > 0 && next > charBudget {
			out = append(out, strings.Join(cur, " "))
			cur, curLen = nil, 0
			next = wl
		}
		cur = append(cur, w)
		curLen = next
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}

func parseResolution(s string) (int, int) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return defaultResX, defaultResY
	}
	x, errX := strconv.Atoi(w)
	y, errY := strconv.Atoi(h)
	if errX != nil || errY != nil || x <= 0 || y <= 0 {
		return defaultResX, defaultResY
	}
	return x, y
}

func assHeader(resX, resY int) string {
	return fmt.Sprintf(strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Short, Inter, 72, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 60,60,240,1
`), resX, resY)
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
