package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiemonster/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to console output", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithNoColor())
		log.Info("Testing samples for: session")
		assert.Equal(t, "[*] Testing samples for: session\n", buf.String())
	})

	t.Run("json formatter option", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithJSONFormatter())
		log.Info("hello")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		out := buf.String()
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "hello")
	})

	t.Run("success level is named", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithJSONFormatter())
		logger.Success(context.Background(), log, "Found secret: keyboard cat", logger.Secret("keyboard cat"))
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "SUCCESS", entry["level"])
		assert.Equal(t, "keyboard cat", entry["secret"])
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()
		quiet := &bytes.Buffer{}
		logger.New(logger.WithOutput(quiet), logger.WithNoColor()).Debug("hidden")
		assert.Empty(t, quiet.String())

		loud := &bytes.Buffer{}
		logger.New(logger.WithOutput(loud), logger.WithNoColor(), logger.WithVerbose(true)).Debug("shown")
		assert.Equal(t, "[*] shown\n", loud.String())
	})

	t.Run("includes default attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithJSONFormatter(),
			logger.WithAttr(slog.String("svc", "test")),
		)
		log.Info("msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "test", entry["svc"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		type key string
		ctxKey := key("id")
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithJSONFormatter(),
			logger.WithContextValue("id", ctxKey),
		)
		ctx := context.WithValue(context.Background(), ctxKey, "42")
		log.InfoContext(ctx, "context msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "42", entry["id"])
	})
}

func TestConsoleHandler(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithNoColor(), logger.WithVerbose(true))
	ctx := context.Background()

	log.Debug("Loading wordlist")
	log.Info("Testing samples for: session", logger.CookieName("session"))
	logger.Success(ctx, log, "Found secret: keyboard cat")
	log.Warn("careful")
	log.Error("Failed to save results", logger.Error(errors.New("disk full")))
	log.With(logger.Error(errors.New("static"))).Error("bound")

	assert.Equal(t, ""+
		"[*] Loading wordlist\n"+
		"[*] Testing samples for: session\n"+
		"[+] Found secret: keyboard cat\n"+
		"[!] careful\n"+
		"[!] Failed to save results: disk full\n"+
		"[!] bound: static\n",
		buf.String())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	f, err := logger.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatConsole, f)

	f, err = logger.ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestConsoleHandlerJoinedErrors(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithNoColor())

	log.Warn("Search aborted", logger.Error(errors.Join(errors.New("search.aborted"), context.Canceled)))
	log.Error("Search failed", logger.Error(errors.Join(errors.New("search.oracle_start"), errors.New("bind: address already in use"))))

	assert.Equal(t, ""+
		"[!] Search aborted: search.aborted; context canceled\n"+
		"[!] Search failed: search.oracle_start; bind: address already in use\n",
		buf.String())
}
