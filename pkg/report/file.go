package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileSink writes the report to a local file, replacing any previous content.
type FileSink struct {
	path   string
	format Format
}

// NewFileSink returns a sink for path. The format follows the file extension.
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		return nil, ErrInvalidTarget
	}
	return &FileSink{path: path, format: FormatFor(path)}, nil
}

func (s *FileSink) Write(_ context.Context, r Report) error {
	data, err := Marshal(r.Matches, s.format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Join(ErrWrite, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return nil
}

func (s *FileSink) String() string { return s.path }
