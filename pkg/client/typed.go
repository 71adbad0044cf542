package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// DecodeAs converts raw document content into a typed value via a JSON
// round trip, mirroring how content is persisted on disk.
func DecodeAs[T any](content core.Content) (T, error) {
	var out T
	data, err := json.Marshal(content)
	if err != nil {
		return out, fmt.Errorf("failed to encode content: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode content: %w", err)
	}
	return out, nil
}

// LoadAs reads a document and decodes it into T, returning def when the
// document is absent or no folder is configured.
func LoadAs[T any](ctx context.Context, c *Client, name string, def T) (T, int64, error) {
	content, version, err := c.Load(ctx, name, nil)
	if err != nil {
		return def, 0, err
	}
	if content == nil {
		return def, version, nil
	}
	out, err := DecodeAs[T](content)
	if err != nil {
		return def, 0, fmt.Errorf("document %s: %w", name, err)
	}
	return out, version, nil
}
