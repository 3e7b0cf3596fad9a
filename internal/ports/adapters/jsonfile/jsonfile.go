package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/repurpose/internal/types"
)

// Adapter reads video metadata bundles from JSON files on disk.
type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Load(ctx context.Context, path string) (types.Video, error) {
	if err := ctx.Err(); err != nil {
		return types.Video{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Video{}, fmt.Errorf("read metadata: %w", err)
	}
	var v types.Video
	if err := json.Unmarshal(b, &v); err != nil {
		return types.Video{}, fmt.Errorf("parse metadata %s: %w", filepath.Base(path), err)
	}
	v.VideoID = strings.TrimSpace(v.VideoID)
	if v.VideoID == "" {
		v.VideoID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	v.Title = strings.TrimSpace(v.Title)
	return v, nil
}
