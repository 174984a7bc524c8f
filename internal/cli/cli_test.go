package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/agentsync/internal/config"
	"github.com/klauern/agentsync/internal/export"
	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/util"
)

const testConfig = `version: 1
global_transforms:
  - trailing-newline
sources:
  - patterns:
      - "src/skills/**/*.md"
    targets:
      claude:
        dir: .claude/skills
      codex:
        dir: .codex/skills
      cursor:
        dir: .cursor/rules
        enabled: false
`

// newRepo creates a repository with one skill and the test configuration.
func newRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	util.WriteFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main\n")
	util.WriteFile(t, filepath.Join(root, "agents.yaml"), testConfig)
	util.WriteFile(t, filepath.Join(root, "tooling", "agents", "src", "skills", "review", "SKILL.md"), "# Review\r\n")
	return root
}

type output struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, root string, args ...string) output {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"agentsync", "--no-color", "--root", root}, args...)
	err := RunWithIO(context.Background(), full, &stdout, &stderr)
	return output{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestConfigureLogging(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantLevel slog.Level
	}{
		"no flags only shows warnings": {
			args:      []string{"agentsync", "version"},
			wantLevel: slog.LevelWarn,
		},
		"verbose flag enables info level": {
			args:      []string{"agentsync", "--verbose", "version"},
			wantLevel: slog.LevelInfo,
		},
		"debug flag enables debug level": {
			args:      []string{"agentsync", "--debug", "version"},
			wantLevel: slog.LevelDebug,
		},
		"debug wins over verbose": {
			args:      []string{"agentsync", "--verbose", "--debug", "version"},
			wantLevel: slog.LevelDebug,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			prev := logging.Default()
			t.Cleanup(func() { logging.SetDefault(prev) })

			var stdout, stderr bytes.Buffer
			if err := RunWithIO(context.Background(), tt.args, &stdout, &stderr); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			logger := logging.Default()
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.wantLevel) {
				t.Errorf("level %v should be enabled", tt.wantLevel)
			}
			if tt.wantLevel > slog.LevelDebug && logger.Enabled(ctx, tt.wantLevel-4) {
				t.Errorf("level %v should be disabled", tt.wantLevel-4)
			}
		})
	}
}

func TestSyncCommand(t *testing.T) {
	root := newRepo(t)

	out := run(t, root, "sync")
	if out.err != nil {
		t.Fatalf("sync error = %v\nstderr: %s", out.err, out.stderr)
	}
	util.AssertFileContent(t, filepath.Join(root, ".claude", "skills", "review", "SKILL.md"), "# Review\n")
	util.AssertFileContent(t, filepath.Join(root, ".codex", "skills", "review", "SKILL.md"), "# Review\n")
	util.AssertNotExists(t, filepath.Join(root, ".cursor"))

	for _, want := range []string{"Sync summary", "Created", "Total"} {
		if !strings.Contains(out.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, out.stderr)
		}
	}
	if out.stdout != "" {
		t.Errorf("text report should not write stdout, got %q", out.stdout)
	}
}

func TestSyncCommand_ReportsOverwrites(t *testing.T) {
	root := newRepo(t)
	if out := run(t, root, "sync"); out.err != nil {
		t.Fatalf("sync error = %v", out.err)
	}
	util.WriteFile(t, filepath.Join(root, ".codex", "skills", "review", "SKILL.md"), "edited\n")

	out := run(t, root, "sync")
	if out.err != nil {
		t.Fatalf("sync with warnings should succeed, got %v", out.err)
	}
	if !strings.Contains(out.stderr, "Warnings:") ||
		!strings.Contains(out.stderr, ".codex/skills/review/SKILL.md: Target file had local modifications that were overwritten") {
		t.Errorf("stderr missing overwrite warning:\n%s", out.stderr)
	}
}

func TestCheckCommand(t *testing.T) {
	root := newRepo(t)

	out := run(t, root, "check")
	if !errors.Is(out.err, ErrOutOfSync) {
		t.Fatalf("check before sync error = %v, want ErrOutOfSync", out.err)
	}
	for _, want := range []string{"Check summary", "[missing]", "Run 'agentsync sync' to fix drift."} {
		if !strings.Contains(out.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, out.stderr)
		}
	}
	util.AssertNotExists(t, filepath.Join(root, ".claude"))

	if out := run(t, root, "sync"); out.err != nil {
		t.Fatalf("sync error = %v", out.err)
	}
	out = run(t, root, "check")
	if out.err != nil {
		t.Fatalf("check after sync error = %v\nstderr: %s", out.err, out.stderr)
	}
	if !strings.Contains(out.stderr, "All destinations are in sync.") {
		t.Errorf("stderr = %s", out.stderr)
	}
}

func TestCheckCommand_Diff(t *testing.T) {
	root := newRepo(t)
	if out := run(t, root, "sync"); out.err != nil {
		t.Fatalf("sync error = %v", out.err)
	}
	util.WriteFile(t, filepath.Join(root, ".claude", "skills", "review", "SKILL.md"), "# Reviews\n")

	out := run(t, root, "check", "--diff")
	if !errors.Is(out.err, ErrOutOfSync) {
		t.Fatalf("error = %v, want ErrOutOfSync", out.err)
	}
	for _, want := range []string{"[drift]", "      -# Reviews", "      +# Review"} {
		if !strings.Contains(out.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, out.stderr)
		}
	}
}

func TestCheckCommand_JSON(t *testing.T) {
	root := newRepo(t)

	out := run(t, root, "check", "--format", "json", "--target", "codex")
	if !errors.Is(out.err, ErrOutOfSync) {
		t.Fatalf("error = %v, want ErrOutOfSync", out.err)
	}

	var report export.Report
	if err := json.Unmarshal([]byte(out.stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out.stdout)
	}
	if report.OK || report.Total != 1 || report.Counts["missing"] != 1 {
		t.Errorf("report = %+v", report)
	}
	if report.Records[0].TargetKey != "codex" {
		t.Errorf("record = %+v", report.Records[0])
	}
}

func TestRunCommand_Errors(t *testing.T) {
	tests := map[string]struct {
		args    []string
		setup   func(t *testing.T, root string)
		wantErr string
	}{
		"invalid format": {
			args:    []string{"check", "--format", "xml"},
			wantErr: "unsupported format",
		},
		"unknown target": {
			args:    []string{"sync", "--target", "vim"},
			wantErr: `unknown target "vim"`,
		},
		"missing config": {
			args: []string{"sync"},
			setup: func(t *testing.T, root string) {
				if err := os.Remove(filepath.Join(root, "agents.yaml")); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: "no agentsync configuration found",
		},
		"invalid config": {
			args: []string{"check"},
			setup: func(t *testing.T, root string) {
				util.WriteFile(t, filepath.Join(root, "agents.yaml"), "version: 2\nsources: []\n")
			},
			wantErr: "invalid configuration",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := newRepo(t)
			if tt.setup != nil {
				tt.setup(t, root)
			}
			out := run(t, root, tt.args...)
			if out.err == nil || !strings.Contains(out.err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", out.err, tt.wantErr)
			}
			if errors.Is(out.err, ErrOutOfSync) {
				t.Error("fatal errors must not be reported as drift")
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	root := newRepo(t)

	t.Run("show", func(t *testing.T) {
		out := run(t, root, "config", "show")
		if out.err != nil {
			t.Fatalf("error = %v", out.err)
		}
		for _, want := range []string{"# " + filepath.Join(root, "agents.yaml"), "package_root: tooling/agents", "claude:", "enabled: false"} {
			if !strings.Contains(out.stdout, want) {
				t.Errorf("stdout missing %q:\n%s", want, out.stdout)
			}
		}
	})

	t.Run("path", func(t *testing.T) {
		out := run(t, root, "config", "path")
		if out.err != nil {
			t.Fatalf("error = %v", out.err)
		}
		if !strings.Contains(out.stdout, filepath.Join(root, "tooling", "agents", "src", "skills")) {
			t.Errorf("stdout = %s", out.stdout)
		}
	})

	t.Run("validate", func(t *testing.T) {
		out := run(t, root, "config", "validate")
		if out.err != nil {
			t.Fatalf("error = %v", out.err)
		}
		if !strings.Contains(out.stdout, "is valid (1 source groups, 3 targets)") {
			t.Errorf("stdout = %s", out.stdout)
		}
	})

	t.Run("environment disables targets", func(t *testing.T) {
		t.Setenv("AGENTSYNC_DISABLED_TARGETS", "codex")
		if out := run(t, root, "sync"); out.err != nil {
			t.Fatalf("sync error = %v", out.err)
		}
		util.AssertNotExists(t, filepath.Join(root, ".codex"))
	})
}

func TestConfigInit(t *testing.T) {
	root := t.TempDir()

	out := run(t, root, "config", "init")
	if out.err != nil {
		t.Fatalf("init error = %v", out.err)
	}
	path := filepath.Join(root, "agents.yaml")
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	if keys := cfg.Sources[0].Targets.Keys(); len(keys) != 2 || keys[0] != "claude" || keys[1] != "codex" {
		t.Errorf("starter targets = %v", keys)
	}

	if out := run(t, root, "config", "init"); out.err == nil {
		t.Error("second init without --force should fail")
	}
	if out := run(t, root, "config", "init", "--force", "--target", "cursor"); out.err != nil {
		t.Fatalf("init --force error = %v", out.err)
	}
	cfg, err = config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("regenerated config does not load: %v", err)
	}
	if keys := cfg.TargetKeys(); len(keys) != 1 || keys[0] != "cursor" {
		t.Errorf("regenerated targets = %v", keys)
	}

	if out := run(t, root, "config", "init", "--force", "--target", "vim"); out.err == nil {
		t.Error("init with unknown preset should fail")
	}
}

func TestNewCommand(t *testing.T) {
	root := newRepo(t)

	out := run(t, root, "new", "--kind", "command", "--description", "Deploy the service", "deploy")
	if out.err != nil {
		t.Fatalf("new error = %v", out.err)
	}
	path := filepath.Join(root, "tooling", "agents", "src", "skills", "deploy", "SKILL.md")
	if !strings.Contains(util.ReadFile(t, path), "description: Deploy the service") {
		t.Errorf("scaffolded skill missing description")
	}

	if out := run(t, root, "sync"); out.err != nil {
		t.Fatalf("sync error = %v", out.err)
	}
	if _, err := os.Stat(filepath.Join(root, ".claude", "skills", "deploy", "SKILL.md")); err != nil {
		t.Errorf("new skill was not propagated: %v", err)
	}

	for name, args := range map[string][]string{
		"missing name":   {"new"},
		"invalid name":   {"new", "Deploy"},
		"unknown kind":   {"new", "--kind", "macro", "x"},
		"already exists": {"new", "deploy"},
	} {
		t.Run(name, func(t *testing.T) {
			if out := run(t, root, args...); out.err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTransformsCommand(t *testing.T) {
	out := run(t, t.TempDir(), "transforms")
	if out.err != nil {
		t.Fatalf("error = %v", out.err)
	}
	for _, name := range []string{"trailing-newline", "frontmatter-target", "generated-header", "expand-placeholders"} {
		if !strings.Contains(out.stdout, name) {
			t.Errorf("stdout missing %q:\n%s", name, out.stdout)
		}
	}
}

func TestConfigFlag_TOML(t *testing.T) {
	root := newRepo(t)
	util.WriteFile(t, filepath.Join(root, "alt.toml"), `version = 1

[[sources]]
patterns = ["src/skills/**/*.md"]

[sources.targets.agents]
dir = "out/agents"
`)

	out := run(t, root, "--config", filepath.Join(root, "alt.toml"), "sync")
	if out.err != nil {
		t.Fatalf("sync error = %v\nstderr: %s", out.err, out.stderr)
	}
	util.AssertFileContent(t, filepath.Join(root, "out", "agents", "review", "SKILL.md"), "# Review\n")
}
