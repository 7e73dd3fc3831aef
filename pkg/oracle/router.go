package oracle

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cookiemonster/pkg/cookie"
	"github.com/dmitrymomot/cookiemonster/pkg/cookiesession"
	"github.com/dmitrymomot/cookiemonster/pkg/httpserver"
	"github.com/dmitrymomot/cookiemonster/pkg/logger"
)

const maxBodySize = 1 << 20

// NewRouter returns the oracle HTTP handler for cfg:
//
//	GET  /        verified session as JSON, or {"cookie_monster_no_likey": true}
//	POST /        merges a JSON object into a new session and signs it
//	GET  /healthz liveness probe
func NewRouter(cfg Config, log *slog.Logger) (http.Handler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	mgr, err := cookie.New([]string{cfg.CookieSecret}, cookie.WithDigest(cfg.Digest))
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Group(func(r chi.Router) {
		r.Use(cookiesession.New(cfg.CookieName, mgr,
			cookiesession.WithLogger(log),
			cookiesession.WithCookieOptions(cookie.WithPath(cfg.CookiePath), cookie.WithHTTPOnly(true)),
		))
		r.Get("/", verifyHandler)
		r.Post("/", encodeHandler)
	})
	return r, nil
}

func verifyHandler(w http.ResponseWriter, r *http.Request) {
	sess := cookiesession.MustFromContext(r.Context())
	if !sess.Populated() {
		writeJSON(w, http.StatusOK, map[string]any{SentinelKey: true})
		return
	}
	writeJSON(w, http.StatusOK, sess.Values())
}

func encodeHandler(w http.ResponseWriter, r *http.Request) {
	sess := cookiesession.MustFromContext(r.Context())

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, ErrInvalidPayload, err)
		return
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, ErrInvalidPayload, errors.New("unexpected data after JSON object"))
		return
	}

	sess.Merge(body)
	writeJSON(w, http.StatusOK, sess.Values())
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, err error) {
	writeJSON(w, status, map[string]errorDetail{
		"error": {Code: code.Error(), Message: err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
