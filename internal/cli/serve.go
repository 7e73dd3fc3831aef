package cli

import (
	"errors"
	"log/slog"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/cookiemonster/pkg/cookie"
	"github.com/dmitrymomot/cookiemonster/pkg/httpserver"
	"github.com/dmitrymomot/cookiemonster/pkg/logger"
	"github.com/dmitrymomot/cookiemonster/pkg/oracle"
)

// serveCommand runs a long-lived oracle until interrupted, for manual probing
// with curl or a browser.
func (a *App) serveCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the verification oracle for one secret until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log, err := a.newLogger(opts)
			if err != nil {
				return errors.Join(ErrInvalidOptions, err)
			}
			if opts.Secret == "" {
				log.ErrorContext(ctx, "A secret key must be specified with the --secret option.")
				return errors.Join(ErrSilent, ErrInvalidOptions)
			}
			if opts.Name == "" {
				log.ErrorContext(ctx, "A cookie name must be specified with the --name option.")
				return errors.Join(ErrSilent, ErrInvalidOptions)
			}
			digest, err := cookie.ParseDigest(opts.Digest)
			if err != nil {
				log.ErrorContext(ctx, "Unsupported digest: "+opts.Digest)
				return errors.Join(ErrSilent, ErrInvalidOptions, err)
			}

			handler, err := oracle.NewRouter(oracle.Config{
				CookieName:   opts.Name,
				CookieSecret: opts.Secret,
				Digest:       digest,
			}, log)
			if err != nil {
				return err
			}

			addr := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
			reqTimeout, shutdownTimeout := a.env.timeouts()
			srv := httpserver.New(
				httpserver.WithAddr(addr),
				httpserver.WithReadTimeout(reqTimeout),
				httpserver.WithWriteTimeout(reqTimeout),
				httpserver.WithShutdownTimeout(shutdownTimeout),
				httpserver.WithLogger(log),
				httpserver.WithStartHook(func(l *slog.Logger) {
					l.InfoContext(ctx, "Oracle listening on http://"+addr, logger.CookieName(opts.Name))
				}),
				httpserver.WithStopHook(func(l *slog.Logger) {
					l.InfoContext(ctx, "Oracle stopped")
				}),
			)
			if err := srv.Run(ctx, handler); err != nil {
				log.ErrorContext(ctx, "Oracle failed", logger.Error(err))
				return errors.Join(ErrSilent, err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Name, "name", "n", a.env.Name, "The cookie name to sign and verify.")
	f.StringVarP(&opts.Secret, "secret", "k", "", "The secret key of the oracle.")
	f.IntVarP(&opts.Port, "port", "p", a.env.Port, "The port to bind to.")
	f.StringVar(&opts.Host, "host", a.env.Host, "The address to bind to.")
	f.StringVar(&opts.Digest, "digest", a.env.Digest, "The HMAC digest: sha1, sha256 or sha512.")
	f.StringVar(&opts.LogFormat, "log-format", a.env.LogFormat, "Log output format: console, text or json.")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Output verbose messages.")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output.")
	return cmd
}
