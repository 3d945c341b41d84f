package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/schedforge/internal/backend"
	"github.com/agbru/schedforge/internal/cli"
	"github.com/agbru/schedforge/internal/config"
	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/logging"
	"github.com/agbru/schedforge/internal/metrics"
	"github.com/agbru/schedforge/internal/orchestration"
	"github.com/agbru/schedforge/internal/server"
	"github.com/agbru/schedforge/internal/tui"
	"github.com/agbru/schedforge/internal/ui"
)

// Application represents the schedforge application instance.
type Application struct {
	Config    config.AppConfig
	Backend   orchestration.Backend
	ErrWriter io.Writer

	metrics *metrics.Collector
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithBackend replaces the HTTP backend client, mainly for tests.
func WithBackend(b orchestration.Backend) AppOption {
	return func(a *Application) { a.Backend = b }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full argument vector, program name first.
//   - errWriter: Receives usage, parse errors and console logs.
//   - opts: Optional overrides such as WithBackend.
//
// Returns:
//   - *Application: The configured application.
//   - error: flag.ErrHelp or a ConfigError when the arguments are invalid.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "schedforge"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter, metrics: metrics.NewCollector()}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	logger, closeLog, err := a.newLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error opening log file: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	if a.Backend == nil {
		a.Backend = backend.New(a.Config.BaseURL,
			backend.WithLogger(logger),
			backend.WithMetrics(a.metrics))
	}
	orch := orchestration.New(a.Backend,
		orchestration.WithLogger(logger),
		orchestration.WithMetrics(a.metrics))

	ctx, stop := a.lifecycle(ctx)
	defer stop()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var g errgroup.Group
	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, a.metrics, logger)
		g.Go(func() error { return srv.Run(runCtx) })
	}

	var code int
	if a.Config.TUI {
		code = tui.Run(runCtx, orch, a.Config, Version)
	} else {
		code = cli.Run(runCtx, orch, a.Config, out)
	}

	cancelRun()
	if err := g.Wait(); err != nil {
		logger.Error("metrics server failed", err, logging.String("addr", a.Config.MetricsAddr))
	}
	return code
}

// lifecycle applies the optional run timeout and stops on SIGINT or SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, func()) {
	cancelTimeout := func() {}
	if a.Config.Timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// newLogger builds the zerolog logger for this run. Logs go to --log-file as
// JSON when set; otherwise to stderr in console format, except in TUI mode
// where they would corrupt the screen and are discarded.
func (a *Application) newLogger() (logging.Logger, func(), error) {
	level := zerolog.InfoLevel
	switch {
	case a.Config.Verbose:
		level = zerolog.DebugLevel
	case a.Config.Quiet:
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLogger(f, "schedforge"), func() { _ = f.Close() }, nil
	}
	if a.Config.TUI {
		return logging.Nop(), func() {}, nil
	}
	w := zerolog.ConsoleWriter{Out: a.ErrWriter, TimeFormat: time.Kitchen, NoColor: a.Config.NoColor}
	return logging.NewLogger(w, "schedforge"), func() {}, nil
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
