//go:build integration

package itest

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

type clipInfo struct {
	seconds float64
	width   int
	height  int
}

// probeClip reads the container duration and the first video stream size.
func probeClip(mp4Path string) (clipInfo, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:format=duration",
		"-of", "default=noprint_wrappers=1",
		mp4Path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return clipInfo{}, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}

	var info clipInfo
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch k {
		case "duration":
			info.seconds, err = strconv.ParseFloat(v, 64)
		case "width":
			info.width, err = strconv.Atoi(v)
		case "height":
			info.height, err = strconv.Atoi(v)
		}
		if err != nil {
			return clipInfo{}, fmt.Errorf("parse %s %q: %w", k, v, err)
		}
	}
	if info.seconds <= 0 {
		return clipInfo{}, fmt.Errorf("ffprobe: no duration for %s", mp4Path)
	}
	return info, nil
}
