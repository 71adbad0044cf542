package fs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// Codec defines how document content is encoded on disk for one file format.
type Codec interface {
	// Encode converts content to bytes.
	Encode(content core.Content) ([]byte, error)
	// Decode parses bytes back into content.
	Decode(data []byte) (core.Content, error)
}

// DefaultCodecs returns the standard set of codecs keyed by file extension.
// Scheduling documents are JSON; YAML is supported for hand-edited documents
// like settings.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		".json": JSONCodec{},
		".yaml": YAMLCodec{},
		".yml":  YAMLCodec{},
	}
}

// JSONCodec handles reading and writing JSON documents.
type JSONCodec struct{}

func (JSONCodec) Encode(content core.Content) ([]byte, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, err
	}
	// Trailing newline keeps diffs of hand-inspected files clean.
	return append(data, '\n'), nil
}

func (JSONCodec) Decode(data []byte) (core.Content, error) {
	var content core.Content
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&content); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return content, nil
}

// YAMLCodec handles reading and writing YAML documents.
type YAMLCodec struct{}

func (YAMLCodec) Encode(content core.Content) ([]byte, error) {
	return yaml.Marshal(content)
}

func (YAMLCodec) Decode(data []byte) (core.Content, error) {
	var content core.Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return content, nil
}
