package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ConsoleHandler renders records as single colored lines:
//
//	[*] info and debug
//	[+] success
//	[!] warnings (yellow) and errors (red)
//
// Attributes are not printed, except an "error" attribute which is appended
// as ": <error>". Multi-line errors, such as those from errors.Join, are
// joined with "; ".
type ConsoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler

	info, success, warn, fail, debug *color.Color
	attrErr                          slog.Value
}

// NewConsoleHandler returns a ConsoleHandler writing to w.
func NewConsoleHandler(w io.Writer, level slog.Leveler, noColor bool) *ConsoleHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	h := &ConsoleHandler{
		mu:      &sync.Mutex{},
		w:       w,
		level:   level,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		debug:   color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{h.info, h.success, h.warn, h.fail, h.debug} {
			c.DisableColor()
		}
	}
	return h
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ConsoleHandler) Handle(_ context.Context, rec slog.Record) error {
	c, prefix := h.style(rec.Level)

	msg := rec.Message
	errVal := h.attrErr
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == "error" {
			errVal = a.Value
			return false
		}
		return true
	})
	if errVal.Kind() != slog.KindAny || errVal.Any() != nil {
		if s := errVal.String(); s != "" {
			msg = fmt.Sprintf("%s: %s", msg, s)
		}
	}

	// Joined errors carry newlines; keep one record on one prefixed line.
	msg = strings.ReplaceAll(strings.TrimSpace(msg), "\n", "; ")

	var buf bytes.Buffer
	buf.WriteString(c.Sprintf("%s %s", prefix, msg))
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *ConsoleHandler) style(level slog.Level) (*color.Color, string) {
	switch {
	case level >= slog.LevelError:
		return h.fail, "[!]"
	case level >= slog.LevelWarn:
		return h.warn, "[!]"
	case level >= LevelSuccess:
		return h.success, "[+]"
	case level >= slog.LevelInfo:
		return h.info, "[*]"
	default:
		return h.debug, "[*]"
	}
}

// WithAttrs keeps only a static "error" attribute; everything else is dropped
// from console output.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	for _, a := range attrs {
		if a.Key == "error" {
			clone.attrErr = a.Value
		}
	}
	return &clone
}

func (h *ConsoleHandler) WithGroup(_ string) slog.Handler {
	return h
}
