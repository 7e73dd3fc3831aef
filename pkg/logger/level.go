package logger

import (
	"context"
	"log/slog"
)

// LevelSuccess sits between INFO and WARN and marks positive findings.
const LevelSuccess = slog.Level(2)

// Success logs msg at LevelSuccess.
func Success(ctx context.Context, l *slog.Logger, msg string, attrs ...slog.Attr) {
	l.LogAttrs(ctx, LevelSuccess, msg, attrs...)
}

// replaceLevel renders LevelSuccess as "SUCCESS" instead of "INFO+2".
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelSuccess {
			return slog.String(slog.LevelKey, "SUCCESS")
		}
	}
	return a
}
