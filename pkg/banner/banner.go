// Package banner holds the ASCII banners printed by the command line tool.
package banner

import (
	_ "embed"
	"io"

	"github.com/fatih/color"
)

var (
	//go:embed small.txt
	small string
	//go:embed large.txt
	large string
)

// Small returns the one-line banner shown before every run.
func Small() string { return small }

// Large returns the banner shown with the usage text.
func Large() string { return large }

// Fprint writes text to w in bright white. Color is dropped when color
// output is disabled globally, e.g. for non-terminal writers or NO_COLOR.
func Fprint(w io.Writer, text string) error {
	_, err := color.New(color.FgHiWhite).Fprint(w, text)
	return err
}
