// Package cli provides the command-line interface for agentsync.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// ErrOutOfSync is returned by the check command when any destination is
// missing or has drifted. The report has already been printed.
var ErrOutOfSync = errors.New("destinations are out of sync")

// Run executes the CLI application with the given context and arguments,
// writing to the process's standard streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdout, os.Stderr)
}

// RunWithIO executes the CLI application with explicit output streams.
// Machine-readable output goes to stdout; logs and the operator report go
// to stderr.
func RunWithIO(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return newApp(stdout, stderr).Run(ctx, args)
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "agentsync",
		Usage:     "Propagate canonical agent skills and instructions into tool-specific directories",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Emit logs as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.StringFlag{
				Name:    "root",
				Usage:   "Repository root (default: nearest directory containing .git)",
				Sources: cli.EnvVars("AGENTSYNC_ROOT"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (default: agents.yaml in the repository root or tooling/agents)",
				Sources: cli.EnvVars("AGENTSYNC_CONFIG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureColors(cmd)
			logger := configureLogging(cmd)
			return logging.NewContext(ctx, logger), nil
		},
		Commands: []*cli.Command{
			syncCommand(),
			checkCommand(),
			configCommand(),
			newCommand(),
			transformsCommand(),
			versionCommand(),
		},
	}
}

// configureColors sets up color output based on CLI flags.
func configureColors(cmd *cli.Command) {
	if cmd.Bool("no-color") {
		ui.DisableColors()
	}
}

// configureLogging sets up the default logger from CLI flags. Without
// --verbose only warnings reach the operator, so the report stays readable.
func configureLogging(cmd *cli.Command) *slog.Logger {
	opts := logging.DefaultOptions()
	opts.Output = cmd.Root().ErrWriter
	opts.Level = logging.LevelWarn
	opts.JSON = cmd.Bool("log-json")

	if cmd.Bool("debug") {
		opts.Level = logging.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") {
		opts.Level = logging.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return logger
}
