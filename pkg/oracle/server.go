package oracle

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"

	"github.com/dmitrymomot/cookiemonster/pkg/httpserver"
	"github.com/dmitrymomot/cookiemonster/pkg/logger"
)

// Option configures Start.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger for the oracle and its HTTP server.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Server is a running oracle bound to one cookie name and one secret.
type Server struct {
	cfg    Config
	srv    *httpserver.Server
	client *Client
	addr   string
}

// Start binds the oracle and serves it in the background. The listener is
// bound when Start returns, bind failures are wrapped with httpserver.ErrStart.
func Start(ctx context.Context, cfg Config, opts ...Option) (*Server, error) {
	o := options{log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.withDefaults()
	handler, err := NewRouter(cfg, o.log)
	if err != nil {
		return nil, err
	}

	srv := httpserver.New(
		httpserver.WithHostPort(cfg.Host, cfg.Port),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
		httpserver.WithReadTimeout(cfg.RequestTimeout),
		httpserver.WithWriteTimeout(cfg.RequestTimeout),
		httpserver.WithLogger(o.log),
	)
	if err := srv.Start(ctx, handler); err != nil {
		return nil, err
	}

	addr, err := srv.Addr()
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return nil, err
	}
	client, err := NewClient("http://"+addr+"/", cfg.RequestTimeout)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return nil, err
	}

	o.log.DebugContext(ctx, "Oracle listening on "+addr,
		logger.CookieName(cfg.CookieName), slog.String("addr", addr))

	return &Server{cfg: cfg, srv: srv, client: client, addr: addr}, nil
}

// Addr returns the bound address, e.g. "127.0.0.1:3000".
func (s *Server) Addr() string { return s.addr }

// Port returns the bound port.
func (s *Server) Port() int {
	_, p, err := net.SplitHostPort(s.addr)
	if err != nil {
		return 0
	}
	port, _ := strconv.Atoi(p)
	return port
}

// URL returns the base URL of the oracle.
func (s *Server) URL() string { return "http://" + s.addr + "/" }

// Verify asks the oracle whether data and sig were signed with its secret.
func (s *Server) Verify(ctx context.Context, data, sig string) (Verdict, error) {
	return s.client.Verify(ctx, s.cfg.CookieName, data, sig)
}

// Encode signs payload, a JSON object, with the oracle secret.
func (s *Server) Encode(ctx context.Context, payload []byte) (Pair, error) {
	return s.client.Encode(ctx, s.cfg.CookieName, payload)
}

// Stop shuts the oracle down and returns once the port is released.
// Repeated calls are no-ops.
func (s *Server) Stop(ctx context.Context) error {
	s.client.CloseIdleConnections()
	return s.srv.Shutdown(ctx)
}

// Encode starts a one-off oracle for cfg, signs payload and stops it again.
func Encode(ctx context.Context, cfg Config, payload []byte, opts ...Option) (pair Pair, err error) {
	if err := validatePayload(payload); err != nil {
		return Pair{}, err
	}

	srv, err := Start(ctx, cfg, opts...)
	if err != nil {
		return Pair{}, err
	}
	defer func() {
		if stopErr := srv.Stop(context.Background()); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	return srv.Encode(ctx, payload)
}
