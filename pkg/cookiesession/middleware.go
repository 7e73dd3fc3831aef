package cookiesession

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiemonster/pkg/cookie"
	"github.com/dmitrymomot/cookiemonster/pkg/logger"
)

// Option configures the middleware.
type Option func(*middleware)

// WithLogger sets the logger used for rejected cookies. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *middleware) {
		if l != nil {
			m.log = l
		}
	}
}

// WithCookieOptions sets attributes for cookies written by the middleware.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(m *middleware) { m.cookieOpts = append(m.cookieOpts, opts...) }
}

type middleware struct {
	name       string
	mgr        *cookie.Manager
	log        *slog.Logger
	cookieOpts []cookie.Option
}

// New returns middleware that loads the session stored in the signed cookie
// pair name / name.sig and writes it back when a handler changes it.
//
// A missing cookie, a missing or wrong signature and an undecodable payload
// all result in an empty new session.
func New(name string, mgr *cookie.Manager, opts ...Option) func(http.Handler) http.Handler {
	m := &middleware{name: name, mgr: mgr, log: logger.Discard()}
	for _, opt := range opts {
		opt(m)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.load(r)
			srw := &responseWriter{ResponseWriter: w, m: m, sess: sess}
			next.ServeHTTP(srw, r.WithContext(WithSession(r.Context(), sess)))
			srw.commit()
		})
	}
}

func (m *middleware) load(r *http.Request) *Session {
	value, err := m.mgr.GetSigned(r, m.name)
	if err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			m.log.DebugContext(r.Context(), "session cookie rejected",
				logger.CookieName(m.name), logger.Error(err))
		}
		return newSession(nil, true)
	}

	values, err := Decode(value)
	if err != nil {
		m.log.DebugContext(r.Context(), "session payload rejected",
			logger.CookieName(m.name), logger.Error(err))
		return newSession(nil, true)
	}
	return newSession(values, false)
}

func (m *middleware) save(w http.ResponseWriter, sess *Session) {
	if !sess.IsChanged() {
		return
	}
	if !sess.Populated() {
		if !sess.IsNew() {
			m.mgr.DeleteSigned(w, m.name)
		}
		return
	}

	value, err := Encode(sess.values)
	if err == nil {
		err = m.mgr.SetSigned(w, m.name, value, m.cookieOpts...)
	}
	if err != nil {
		m.log.Error("failed to write session cookie", logger.CookieName(m.name), logger.Error(err))
	}
}

var _ http.ResponseWriter = (*responseWriter)(nil)

// responseWriter flushes the session cookies right before the status line.
type responseWriter struct {
	http.ResponseWriter
	m       *middleware
	sess    *Session
	written bool
}

func (w *responseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.written = true
	w.m.save(w.ResponseWriter, w.sess)
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// commit saves the session when the handler wrote nothing at all.
func (w *responseWriter) commit() {
	if !w.written {
		w.written = true
		w.m.save(w.ResponseWriter, w.sess)
	}
}
