package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/config"
	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/template"
	"github.com/klauern/agentsync/internal/transform"
	"github.com/klauern/agentsync/internal/ui"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "Inspect and manage the configuration",
		Action: showConfig,
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the resolved configuration as YAML",
				Action: showConfig,
			},
			{
				Name:   "path",
				Usage:  "Print the resolved repository, configuration and source locations",
				Action: showPaths,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration without touching any file",
				Action: validateConfig,
			},
			{
				Name:  "init",
				Usage: "Write a starter configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing configuration file",
					},
					&cli.StringSliceFlag{
						Name:    "target",
						Aliases: []string{"t"},
						Usage:   "Target presets to include (claude, codex, cursor, gemini; default claude and codex)",
					},
				},
				Action: initConfig,
			},
		},
	}
}

func showConfig(_ context.Context, cmd *cli.Command) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	data, err := ws.cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	w := cmd.Root().Writer
	fmt.Fprintf(w, "# %s\n", ws.configPath)
	_, err = w.Write(data)
	return err
}

func showPaths(_ context.Context, cmd *cli.Command) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	packageRoot, skillsRoot := ws.cfg.Roots(ws.root)

	w := cmd.Root().Writer
	fmt.Fprintf(w, "Repository root: %s\n", ws.root)
	fmt.Fprintf(w, "Config file:     %s\n", ws.configPath)
	fmt.Fprintf(w, "Package root:    %s\n", packageRoot)
	fmt.Fprintf(w, "Skills root:     %s\n", skillsRoot)
	return nil
}

func validateConfig(_ context.Context, cmd *cli.Command) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	if err := ws.cfg.Validate(transform.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "%s\n", ui.Mark(ui.ToneSuccess, fmt.Sprintf(
		"%s is valid (%d source groups, %d targets)",
		ws.configPath, len(ws.cfg.Sources), len(ws.cfg.TargetKeys()),
	)))
	return nil
}

func initConfig(_ context.Context, cmd *cli.Command) error {
	root, err := resolveRoot(cmd.String("root"))
	if err != nil {
		return err
	}
	path := cmd.String("config")
	if path == "" {
		path = filepath.Join(root, "agents.yaml")
	} else if path, err = resolveConfigPath(path, root); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	targets, err := template.PresetsFor(cmd.StringSlice("target"))
	if err != nil {
		return err
	}
	gen, err := template.New()
	if err != nil {
		return err
	}
	content, err := gen.RenderConfig(template.ConfigData{
		PackageRoot: config.DefaultPackageRoot,
		SkillsRoot:  config.DefaultSkillsRoot,
		Targets:     targets,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	// #nosec G306 - configuration is checked into the repository
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Info("configuration written", logging.Path(path))

	fmt.Fprintf(cmd.Root().Writer, "%s\n", ui.Mark(ui.ToneSuccess, "Created "+path))
	return nil
}
