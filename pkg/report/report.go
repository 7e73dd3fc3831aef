package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/cookiemonster/pkg/search"
)

// Report is the outcome of one run as handed to a Sink.
type Report struct {
	RunID   uuid.UUID
	Matches []search.MatchRecord
}

// Sink persists a report.
type Sink interface {
	Write(ctx context.Context, r Report) error
	// String describes the destination for log messages.
	String() string
}

// Format selects the serialization of a report.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks YAML for .yaml and .yml names and JSON otherwise.
func FormatFor(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func (f Format) contentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Marshal serializes matches as an array. JSON output uses a four space
// indent and leaves HTML characters unescaped. An empty report is "[]".
func Marshal(matches []search.MatchRecord, f Format) ([]byte, error) {
	if matches == nil {
		matches = []search.MatchRecord{}
	}

	if f == FormatYAML {
		out, err := yaml.Marshal(matches)
		if err != nil {
			return nil, errors.Join(ErrEncode, err)
		}
		return out, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(matches); err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
