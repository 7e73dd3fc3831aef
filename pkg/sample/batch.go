package sample

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a batch file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml and .yml files and JSON for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseBatch decodes a list of groups and validates group names.
func ParseBatch(raw []byte, format Format) ([]Group, error) {
	var groups []Group
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &groups); err != nil {
			return nil, errors.Join(ErrInvalidBatch, err)
		}
	case FormatJSON:
		if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&groups); err != nil {
			return nil, errors.Join(ErrInvalidBatch, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidBatch, format)
	}
	if err := Validate(groups); err != nil {
		return nil, errors.Join(ErrInvalidBatch, err)
	}
	return groups, nil
}

// LoadBatch reads and parses a batch file.
func LoadBatch(path string) ([]Group, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadBatch, err)
	}
	return ParseBatch(raw, FormatFromPath(path))
}

// LoadPayload reads a JSON document to be encoded into a session cookie.
// YAML files are converted to JSON first.
func LoadPayload(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadBatch, err)
	}
	if FormatFromPath(path) != FormatYAML {
		return raw, nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrInvalidBatch, err)
	}
	return json.Marshal(doc)
}
