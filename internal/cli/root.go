package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmitrymomot/cookiemonster/pkg/banner"
	"github.com/dmitrymomot/cookiemonster/pkg/cookie"
	"github.com/dmitrymomot/cookiemonster/pkg/logger"
	"github.com/dmitrymomot/cookiemonster/pkg/oracle"
	"github.com/dmitrymomot/cookiemonster/pkg/report"
	"github.com/dmitrymomot/cookiemonster/pkg/sample"
	"github.com/dmitrymomot/cookiemonster/pkg/search"
	"github.com/dmitrymomot/cookiemonster/pkg/wordlist"
)

// ErrSilent marks failures that were already reported to the user.
var ErrSilent = errors.New("cli.silent")

// App wires the command line to the search and encode operations.
type App struct {
	env        Env
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func(io.Writer) bool
	reportOpts []report.Option
}

// AppOption configures an App.
type AppOption func(*App)

// WithOutput redirects standard output and standard error.
func WithOutput(stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithReportOptions passes options to report.Open.
func WithReportOptions(opts ...report.Option) AppOption {
	return func(a *App) { a.reportOpts = append(a.reportOpts, opts...) }
}

// NewApp returns an App using env for flag defaults.
func NewApp(env Env, opts ...AppOption) *App {
	a := &App{
		env:        env,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		isTerminal: isTerminal,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Command builds the root command.
func (a *App) Command() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:           "cookiemonster",
		Short:         "Automates the testing of Express.js cookies for weak secrets.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.wordlistSet = cmd.Flags().Changed("wordlist")
			return a.run(cmd.Context(), opts)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	opts.bind(cmd, a.env)

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c == cmd {
			_ = banner.Fprint(c.OutOrStdout(), banner.Large())
		}
		defaultHelp(c, args)
	})

	cmd.AddCommand(a.serveCommand())
	return cmd
}

// Execute loads the environment, runs the command line and returns the error
// that decides the exit status.
func Execute(ctx context.Context) error {
	env, err := LoadEnv()
	if err != nil {
		logger.New(logger.WithOutput(os.Stderr)).Error("Failed to load configuration", logger.Error(err))
		return err
	}
	err = NewApp(env).Command().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrSilent) {
		logger.New(logger.WithOutput(os.Stderr)).Error(err.Error())
	}
	return err
}

func (a *App) newLogger(opts *Options) (*slog.Logger, error) {
	format, err := logger.ParseFormat(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	logOpts := []logger.Option{
		logger.WithFormat(format),
		logger.WithOutput(a.stdout),
		logger.WithVerbose(opts.Verbose),
		logger.WithContextExtractors(search.LoggerExtractor()),
	}
	if opts.NoColor || !a.isTerminal(a.stdout) {
		logOpts = append(logOpts, logger.WithNoColor())
	}
	return logger.New(logOpts...), nil
}

func (a *App) run(ctx context.Context, opts *Options) error {
	if opts.NoColor {
		color.NoColor = true
	}
	log, err := a.newLogger(opts)
	if err != nil {
		logger.New(logger.WithOutput(a.stderr), logger.WithNoColor()).Error("Invalid log format", logger.Error(err))
		return errors.Join(ErrSilent, ErrInvalidOptions, err)
	}
	if opts.LogFormat == "" || opts.LogFormat == string(logger.FormatConsole) {
		_ = banner.Fprint(a.stdout, banner.Small())
	}

	if err := opts.validate(); err != nil {
		log.ErrorContext(ctx, err.Error())
		log.DebugContext(ctx, "Exiting")
		return errors.Join(ErrSilent, err)
	}
	digest, err := cookie.ParseDigest(opts.Digest)
	if err != nil {
		log.ErrorContext(ctx, "Unsupported digest: "+opts.Digest)
		return errors.Join(ErrSilent, ErrInvalidOptions, err)
	}

	if opts.Encode {
		return a.encode(ctx, log, opts, digest)
	}
	return a.decode(ctx, log, opts, digest)
}

func (a *App) decode(ctx context.Context, log *slog.Logger, opts *Options, digest cookie.Digest) error {
	source := opts.Wordlist
	if source == "" {
		source = wordlist.DefaultName
	}
	log.DebugContext(ctx, "Loading wordlist from "+source)
	secrets, err := wordlist.Load(opts.Wordlist)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load wordlist", logger.Error(err))
		return errors.Join(ErrSilent, err)
	}

	groups, err := opts.groups()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load input file", logger.Error(err))
		return errors.Join(ErrSilent, err)
	}

	driverOpts := []search.Option{search.WithLogger(log)}
	var bar *progress
	if !opts.NoProgress && !opts.Verbose && a.isTerminal(a.stderr) {
		bar = newProgress(a.stderr, len(groups), len(secrets), !opts.NoColor)
		driverOpts = append(driverOpts, search.WithObserver(bar))
	}

	driver := search.New(search.Config{
		Host:            opts.Host,
		Port:            opts.Port,
		Digest:          digest,
		RequestTimeout:  a.env.RequestTimeout,
		ShutdownTimeout: a.env.ShutdownTimeout,
	}, driverOpts...)

	res, runErr := driver.Run(ctx, groups, secrets)
	if bar != nil {
		bar.finish()
	}
	ctx = search.WithRunID(ctx, res.RunID)

	switch {
	case runErr == nil:
		log.DebugContext(ctx, "Search finished",
			logger.Count(len(res.Matches)), slog.Int("unsolved", sample.Count(res.Unsolved)))
	case errors.Is(runErr, search.ErrAborted):
		log.WarnContext(ctx, "Search aborted", logger.Error(runErr))
	default:
		log.ErrorContext(ctx, "Search failed", logger.Error(runErr))
	}

	if opts.Output != "" {
		// Partial results are saved after an abort too; sinks bound their own time.
		a.save(context.WithoutCancel(ctx), log, opts.Output, report.Report{RunID: res.RunID, Matches: res.Matches})
	}

	if runErr != nil {
		return errors.Join(ErrSilent, ErrSearchFailed, runErr)
	}
	return nil
}

// save persists the report. Failures are logged and do not change the exit
// status.
func (a *App) save(ctx context.Context, log *slog.Logger, target string, rep report.Report) {
	opts := append([]report.Option{
		report.WithLogger(log),
		report.WithS3Config(a.env.S3),
		report.WithRedisConfig(a.env.Redis),
	}, a.reportOpts...)

	sink, err := report.Open(ctx, target, opts...)
	if err == nil {
		defer func() { _ = report.Close(sink) }()
		err = sink.Write(ctx, rep)
	}
	if err != nil {
		log.ErrorContext(ctx, "Failed to save results", logger.Error(err), logger.Target(target))
		return
	}
	logger.Success(ctx, log, "Saved results to "+target, logger.Target(target), logger.Count(len(rep.Matches)))
}

func (a *App) encode(ctx context.Context, log *slog.Logger, opts *Options, digest cookie.Digest) error {
	payload, err := sample.LoadPayload(opts.InputFile)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read input file", logger.Error(err))
		return errors.Join(ErrSilent, ErrEncodeFailed, err)
	}

	log.DebugContext(ctx, "Building oracle on port "+strconv.Itoa(opts.Port))
	pair, err := oracle.Encode(ctx, oracle.Config{
		CookieName:      opts.Name,
		CookieSecret:    opts.Secret,
		Host:            opts.Host,
		Port:            opts.Port,
		Digest:          digest,
		RequestTimeout:  a.env.RequestTimeout,
		ShutdownTimeout: a.env.ShutdownTimeout,
	}, payload, oracle.WithLogger(log))
	if err != nil {
		log.ErrorContext(ctx, "Failed to encode cookie", logger.Error(err))
		return errors.Join(ErrSilent, ErrEncodeFailed, err)
	}

	logger.Success(ctx, log, "Data Cookie: "+opts.Name+"="+pair.Data)
	logger.Success(ctx, log, "Signature Cookie: "+cookie.SignatureName(opts.Name)+"="+pair.Sig)
	return nil
}
