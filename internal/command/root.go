package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/profilefinder/internal/logx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const envPrefix = "PROFILEFINDER_"

// Main runs the command line application and exits the process on failure.
func Main(name string, version string, usage string, commands ...*cli.Command) {
	app := NewApp(name, version, usage, os.Stderr, commands...)

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// NewApp builds the application. Logs are written to logOutput.
func NewApp(name string, version string, usage string, logOutput io.Writer, commands ...*cli.Command) *cli.App {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Version:  version,
		Commands: commands,
		Flags:    globalFlags(),
		Before: func(ctx *cli.Context) error {
			if workdir := ctx.String("workdir"); workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrapf(err, "could not change working directory to '%s'", workdir)
				}
			}

			level, err := parseLogLevel(ctx.String("log-level"))
			if err != nil {
				return errors.WithStack(err)
			}

			slog.SetDefault(newLogger(logOutput, level))

			return nil
		},
		ExitErrHandler: reportError,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	return app
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "workdir",
			EnvVars: []string{envPrefix + "WORKDIR"},
			Usage:   "change to this directory before running the command",
		},
		&cli.BoolFlag{
			Name:    "debug",
			EnvVars: []string{envPrefix + "DEBUG"},
			Usage:   "print error stack traces",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			EnvVars: []string{envPrefix + "LOG_LEVEL"},
			Usage:   "logging level (debug, info, warn, error)",
		},
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(logx.ContextHandler{
		Handler: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
	})
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level '%s'", level)
	}
}

// reportError logs the error returned by a command, with its stack trace
// in debug mode.
func reportError(ctx *cli.Context, err error) {
	if err == nil {
		return
	}

	message := err.Error()
	if ctx.Bool("debug") {
		message = fmt.Sprintf("%+v", err)
	}

	slog.ErrorContext(ctx.Context, message)
}
