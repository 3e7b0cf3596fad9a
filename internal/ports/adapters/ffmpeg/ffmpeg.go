package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// audioFade is applied at both ends of a clip so cuts in the middle of a
// word do not click.
const audioFade = 150 * time.Millisecond

// Adapter cuts highlight spans out of the source video and reframes them for
// a short-form platform.
type Adapter struct {
	ffmpeg  string
	ffprobe string

	// width and height of the output frame; zero keeps the source frame.
	width, height int
	padding       time.Duration
}

type Option func(*Adapter)

// WithFrame crops and scales clips to a platform resolution such as
// "1080x1920". Malformed values keep the source frame.
func WithFrame(resolution string) Option {
	return func(a *Adapter) {
		a.width, a.height = parseFrame(resolution)
	}
}

// WithPadding widens every span by d on both sides.
func WithPadding(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.padding = d
		}
	}
}

func New(ffmpegPath, ffprobePath string, opts ...Option) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	a := &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Adapter) RenderClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string) error {
	start, end = a.pad(start, end)
	if end <= start {
		return fmt.Errorf("ffmpeg render clip: empty span %s-%s", start, end)
	}
	cmd := exec.CommandContext(ctx, a.ffmpeg, a.clipArgs(inMP4, start, end, outMP4)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) pad(start, end time.Duration) (time.Duration, time.Duration) {
	start -= a.padding
	if start < 0 {
		start = 0
	}
	return start, end + a.padding
}

func (a *Adapter) clipArgs(inMP4 string, start, end time.Duration, outMP4 string) []string {
	args := []string{
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", inMP4,
	}
	if vf := a.videoFilter(); vf != "" {
		args = append(args, "-vf", vf)
	}
	if af := audioFilter(end - start); af != "" {
		args = append(args, "-af", af)
	}
	return append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "20",
		"-c:a", "aac",
		"-b:a", "160k",
		"-movflags", "+faststart",
		outMP4,
	)
}

// videoFilter fills the target frame and center-crops the overflow, so a
// landscape source becomes a vertical short without letterboxing.
func (a *Adapter) videoFilter() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,setsar=1",
		a.width, a.height, a.width, a.height)
}

func audioFilter(span time.Duration) string {
	if span < 4*audioFade {
		return ""
	}
	return fmt.Sprintf("afade=t=in:st=0:d=%s,afade=t=out:st=%s:d=%s",
		fmtSeconds(audioFade), fmtSeconds(span-audioFade), fmtSeconds(audioFade))
}

func (a *Adapter) ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		inMP4,
	)
	b, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration %s: %w", inMP4, err)
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func parseFrame(resolution string) (int, int) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(resolution)), "x")
	if !ok {
		return 0, 0
	}
	width, err1 := strconv.Atoi(w)
	height, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return 0, 0
	}
	// libx264 with yuv420p needs even dimensions.
	return width &^ 1, height &^ 1
}

func fmtSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
