package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/usecase/countdown"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options are the resolved command line settings
type options struct {
	duration    string
	granularity time.Duration
	zeroTick    bool
	logLevel    string
}

// parseOptions binds flags into viper so CT_ environment variables can supply them too
func parseOptions(args []string, stderr io.Writer) (*options, error) {
	flags := pflag.NewFlagSet("countdown", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: countdown [flags] <hh:mm:ss|mm:ss>")
		flags.PrintDefaults()
	}
	flags.Duration("granularity", countdown.DefaultGranularity.Std(), "interval between ticks")
	flags.Bool("zero-tick", false, "print 00:00 before done")
	flags.String("log-level", "off", "log level: off, debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return nil, errors.New("expected exactly one duration argument")
	}

	return &options{
		duration:    flags.Arg(0),
		granularity: v.GetDuration("granularity"),
		zeroTick:    v.GetBool("zero-tick"),
		logLevel:    v.GetString("log-level"),
	}, nil
}

func newLogger(level string) coreport.Logger {
	if strings.EqualFold(level, "off") || level == "" {
		return logger.NewNoopLogger()
	}
	return logger.NewZapLoggerWithLevel(false, coreport.ParseLogLevel(level))
}

// run counts the duration down, printing each tick, and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		_, _ = fmt.Fprintln(stderr, "countdown:", err)
		return exitUsage
	}

	appLogger := newLogger(opts.logLevel)
	defer func() { _ = appLogger.Flush() }()

	loop := timeProvider.NewEventLoop(appLogger, 0)
	loopCtx, cancelLoop := context.WithCancel(ctx)
	defer func() {
		cancelLoop()
		<-loop.Done()
	}()
	go loop.Run(loopCtx)

	engine, err := countdown.NewEngine(opts.duration, coreport.Duration(opts.granularity), loop)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "countdown:", err)
		if errs.IsFormatError(err) {
			return exitUsage
		}
		return exitFailure
	}
	if opts.zeroTick {
		engine.WithBoundary(countdown.BoundaryInclusive)
	}

	appLogger.Debug("Starting countdown", map[string]any{
		"duration":    opts.duration,
		"granularity": opts.granularity.String(),
		"zero_tick":   opts.zeroTick,
	})

	finished := make(chan struct{})
	err = loop.Do(ctx, func() {
		engine.
			OnTick(func(remaining int64) {
				_, _ = fmt.Fprintln(stdout, entity.FormatDuration(remaining, engine.Format()))
			}).
			OnStop(func() {
				_, _ = fmt.Fprintln(stdout, "done")
				close(finished)
			})
		engine.Start()
	})
	if err != nil {
		if ctx.Err() != nil {
			_, _ = fmt.Fprintln(stderr, "countdown: interrupted")
			return exitInterrupted
		}
		_, _ = fmt.Fprintln(stderr, "countdown:", err)
		return exitFailure
	}

	select {
	case <-finished:
		return exitOK
	case <-ctx.Done():
		_, _ = fmt.Fprintln(stderr, "countdown: interrupted")
		return exitInterrupted
	}
}
