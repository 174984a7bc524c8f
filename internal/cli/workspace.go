package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/config"
	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/util"
)

// workspace is the repository and configuration a command operates on.
type workspace struct {
	root       string
	configPath string
	cfg        *config.Config
}

// loadWorkspace resolves --root and --config and loads the configuration.
func loadWorkspace(cmd *cli.Command) (*workspace, error) {
	root, err := resolveRoot(cmd.String("root"))
	if err != nil {
		return nil, err
	}

	path, err := resolveConfigPath(cmd.String("config"), root)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("configuration loaded",
		logging.Path(path),
		logging.Count(len(cfg.Sources)),
	)

	return &workspace{root: root, configPath: path, cfg: cfg}, nil
}

// resolveRoot returns the absolute repository root. Without an explicit
// root it walks up from the working directory to the nearest .git.
func resolveRoot(flag string) (string, error) {
	if flag == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return util.FindRepoRoot(wd)
	}

	root, err := filepath.Abs(util.ExpandHome(flag))
	if err != nil {
		return "", fmt.Errorf("invalid root %q: %w", flag, err)
	}
	if !util.IsDir(root) {
		return "", fmt.Errorf("root %s is not a directory", root)
	}
	return root, nil
}

// resolveConfigPath returns the explicit config path, or the first
// configuration file found under root.
func resolveConfigPath(flag, root string) (string, error) {
	if flag == "" {
		return config.Find(root)
	}
	path, err := filepath.Abs(util.ExpandHome(flag))
	if err != nil {
		return "", fmt.Errorf("invalid config path %q: %w", flag, err)
	}
	return path, nil
}
