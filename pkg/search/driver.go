package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cookiemonster/pkg/logger"
	"github.com/dmitrymomot/cookiemonster/pkg/oracle"
	"github.com/dmitrymomot/cookiemonster/pkg/sample"
)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithLauncher replaces the function used to start oracles.
func WithLauncher(l Launcher) Option {
	return func(d *Driver) {
		if l != nil {
			d.launch = l
		}
	}
}

// WithObserver registers a progress observer.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// Driver runs the secret search. It owns the configured port for the whole
// run and never has more than one oracle bound at a time.
type Driver struct {
	cfg       Config
	log       *slog.Logger
	launch    Launcher
	observers []Observer
}

// New returns a Driver for cfg.
func New(cfg Config, opts ...Option) *Driver {
	d := &Driver{
		cfg:    cfg,
		log:    logger.Discard(),
		launch: startOracle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func startOracle(ctx context.Context, cfg oracle.Config) (Oracle, error) {
	return oracle.Start(ctx, cfg)
}

// Run tests every secret against every group, in input order, and returns
// the matches found. Samples solved by a secret are not tested again and a
// group is left as soon as it has no samples left.
//
// A failure to start an oracle aborts the run with ErrOracleStart. A
// cancelled ctx is honored between rounds and yields ErrAborted. In both
// cases the partial result is returned alongside the error.
func (d *Driver) Run(ctx context.Context, groups []sample.Group, secrets []string) (Result, error) {
	res := Result{RunID: uuid.New()}
	ctx = WithRunID(ctx, res.RunID)

	pending := make([][]sample.Sample, len(groups))
	for i, g := range groups {
		pending[i] = slices.Clone(g.Samples)
	}

	for gi, g := range groups {
		d.log.InfoContext(ctx, "Testing samples for: "+g.Name, logger.CookieName(g.Name))

		for si, secret := range secrets {
			if len(pending[gi]) == 0 {
				d.log.DebugContext(ctx, "No more samples left to process for "+g.Name, logger.CookieName(g.Name))
				break
			}
			if err := ctx.Err(); err != nil {
				res.Unsolved = unsolved(groups, pending)
				return res, errors.Join(ErrAborted, err)
			}

			round := Round{GroupIndex: gi, Group: g.Name, Secret: secret, Index: si, Total: len(secrets), Remaining: len(pending[gi])}
			for _, o := range d.observers {
				o.OnRound(ctx, round)
			}

			matches, remaining, err := d.round(ctx, g.Name, secret, pending[gi])
			res.Matches = append(res.Matches, matches...)
			pending[gi] = remaining
			if err != nil {
				res.Unsolved = unsolved(groups, pending)
				return res, err
			}
		}
	}

	res.Unsolved = unsolved(groups, pending)
	return res, nil
}

// round starts one oracle, replays every pending sample and stops it again.
func (d *Driver) round(ctx context.Context, name, secret string, pending []sample.Sample) ([]MatchRecord, []sample.Sample, error) {
	d.log.DebugContext(ctx, fmt.Sprintf("Testing %d sample(s) for secret %q", len(pending), secret),
		logger.CookieName(name), logger.Count(len(pending)))
	d.log.DebugContext(ctx, fmt.Sprintf("Building oracle on port %d", d.cfg.Port))

	srv, err := d.launch(ctx, oracle.Config{
		CookieName:      name,
		CookieSecret:    secret,
		Host:            d.cfg.Host,
		Port:            d.cfg.Port,
		Digest:          d.cfg.Digest,
		RequestTimeout:  d.cfg.RequestTimeout,
		ShutdownTimeout: d.cfg.ShutdownTimeout,
	})
	if err != nil {
		return nil, pending, errors.Join(ErrOracleStart, err)
	}
	defer func() {
		if err := srv.Stop(context.WithoutCancel(ctx)); err != nil {
			d.log.WarnContext(ctx, "Failed to stop oracle", logger.Error(err))
		}
	}()

	var (
		matches   []MatchRecord
		remaining = make([]sample.Sample, 0, len(pending))
	)
	for _, s := range pending {
		verdict, err := srv.Verify(ctx, s.Data, s.Sig)
		if err != nil {
			d.log.ErrorContext(ctx, "Request to oracle failed", logger.CookieName(name), logger.Error(err))
			remaining = append(remaining, s)
			continue
		}
		if !verdict.Valid {
			remaining = append(remaining, s)
			continue
		}

		m := MatchRecord{
			Name:        name,
			Data:        s.Data,
			Sig:         s.Sig,
			IP:          s.IP,
			Port:        s.Port,
			DecodedData: s.Decoded(),
			Secret:      secret,
		}
		matches = append(matches, m)
		d.reportMatch(ctx, s, m)
	}

	return matches, remaining, nil
}

func (d *Driver) reportMatch(ctx context.Context, s sample.Sample, m MatchRecord) {
	msg := "Found secret: " + m.Secret
	if origin := s.Origin(); origin != "" {
		msg = fmt.Sprintf("Found secret for %s: %s", origin, m.Secret)
	}
	logger.Success(ctx, d.log, msg,
		logger.CookieName(m.Name), logger.Secret(m.Secret), logger.Origin(s.IP, s.Port))

	for _, o := range d.observers {
		o.OnMatch(ctx, m)
	}
}

func unsolved(groups []sample.Group, pending [][]sample.Sample) []sample.Group {
	var out []sample.Group
	for i, g := range groups {
		if len(pending[i]) > 0 {
			out = append(out, sample.Group{Name: g.Name, Samples: pending[i]})
		}
	}
	return out
}
