package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/cookiemonster/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	startHooks      []func(*slog.Logger)
	stopHooks       []func(*slog.Logger)
}

func defaultConfig() *config {
	return &config{
		addr:            "127.0.0.1:3000",
		shutdownTimeout: 5 * time.Second,
		logger:          logger.Discard(),
	}
}

// Server wraps http.Server with a synchronous bind, awaited shutdown and logging.
// A Server serves at most once; create a new one for every listen cycle.
type Server struct {
	cfg  *config
	srv  *http.Server
	ln   net.Listener
	done chan error
	once sync.Once
	mu   sync.Mutex
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Start binds the listener and serves handler in the background.
// Bind errors are returned immediately, wrapped with ErrStart, so the caller
// knows the port is held once Start returns nil.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return errors.Join(ErrStart, errors.New("server already started"))
	}

	cfg := s.cfg
	srv := &http.Server{
		Addr:         cfg.addr,
		Handler:      handler,
		ReadTimeout:  cfg.readTimeout,
		WriteTimeout: cfg.writeTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", srv.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}

	s.srv = srv
	s.ln = ln
	s.done = make(chan error, 1)

	for _, h := range cfg.startHooks {
		h(cfg.logger)
	}

	go func() { s.done <- srv.Serve(ln) }()
	return nil
}

// Addr returns the bound listener address, e.g. "127.0.0.1:41234".
func (s *Server) Addr() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return "", ErrNotStarted
	}
	return s.ln.Addr().String(), nil
}

// Run starts the HTTP server and blocks until the context is cancelled, an
// interrupt/TERM signal arrives or the server fails.
// It returns ErrStart wrapped with the underlying error if the server fails to start.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if err := s.Start(ctx, handler); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-ctx.Done():
	case <-stop:
	case err := <-s.done:
		// Serve returned without Shutdown; hand the result back to Shutdown callers.
		s.done <- err
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops the server gracefully and waits until the listener is closed
// and the serve loop has returned. Connections still open when the shutdown
// timeout expires are closed forcibly.
// It is safe for repeated calls.
// Any error from http.Server.Shutdown is wrapped with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv, done := s.srv, s.done
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		err = srv.Shutdown(ctx)
		if err != nil {
			_ = srv.Close()
		}
		if serveErr := <-done; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			err = errors.Join(err, serveErr)
		}

		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
