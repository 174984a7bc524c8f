package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/export"
	"github.com/klauern/agentsync/internal/progress"
	"github.com/klauern/agentsync/internal/sync"
	"github.com/klauern/agentsync/internal/transform"
)

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "target",
			Aliases: []string{"t"},
			Usage:   "Only process these target keys (repeatable)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, yaml, markdown",
			Value:   string(export.FormatText),
		},
		&cli.BoolFlag{
			Name:  "diff",
			Usage: "Show a unified diff for every overwritten or drifted destination",
		},
		&cli.BoolFlag{
			Name:  "problems-only",
			Usage: "Only include warnings, drift and missing destinations in json, yaml and markdown output",
		},
	}
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Write every destination so it matches its source",
		Description: `Propagate every source file to every enabled target, applying the
   configured transforms. Destinations with local modifications are
   overwritten and reported as warnings. Nothing is ever deleted.

   Examples:
     agentsync sync
     agentsync sync --target claude --target codex`,
		Flags: runFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runMode(ctx, cmd, sync.ModeSync)
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify every destination matches its source without writing",
		Description: `Audit destinations read-only. Exits non-zero when any destination is
   missing or has drifted, so it can gate CI.

   Examples:
     agentsync check
     agentsync check --format json > report.json`,
		Flags: runFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runMode(ctx, cmd, sync.ModeCheck)
		},
	}
}

// runMode loads the workspace, runs one pass and prints the result.
func runMode(ctx context.Context, cmd *cli.Command, mode sync.Mode) error {
	format, err := export.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	syncer, err := sync.New(ws.cfg, ws.root, transform.Default())
	if err != nil {
		return err
	}

	bar := progress.New(progress.Options{
		Description: progressLabel(mode),
		Writer:      cmd.Root().ErrWriter,
	})
	opts := sync.Options{
		Targets: cmd.StringSlice("target"),
		Diff:    cmd.Bool("diff"),
		Progress: func(_ sync.Record, done, total int) {
			_ = bar.Step(done, total)
		},
	}

	var result *sync.Result
	if mode == sync.ModeCheck {
		result, err = syncer.Check(ctx, opts)
	} else {
		result, err = syncer.Sync(ctx, opts)
	}
	if err != nil {
		_ = bar.Clear()
		return err
	}
	_ = bar.Finish()

	if format == export.FormatText {
		writeReport(cmd.Root().ErrWriter, result)
	} else {
		exporter := export.New(export.Options{
			Format:       format,
			Pretty:       true,
			ProblemsOnly: cmd.Bool("problems-only"),
		})
		if err := exporter.Export(result, cmd.Root().Writer); err != nil {
			return fmt.Errorf("failed to write %s report: %w", format, err)
		}
	}

	if !result.OK() {
		return ErrOutOfSync
	}
	return nil
}

func progressLabel(mode sync.Mode) string {
	if mode == sync.ModeCheck {
		return "Checking"
	}
	return "Syncing"
}
