// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes a harness that runs the CLI in-process against an isolated
// repository, fixture management and output assertions.
package e2e

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/klauern/agentsync/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains machine-readable output and command listings.
	Stdout string
	// Stderr contains logs and the operator report.
	Stderr string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the exit code the process would have used.
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// OutOfSync reports whether the command failed only because destinations
// are missing or drifted.
func (r *Result) OutOfSync() bool {
	return errors.Is(r.Err, cli.ErrOutOfSync)
}

// Harness runs CLI commands against an isolated repository.
type Harness struct {
	t       *testing.T
	homeDir string
	repo    *Fixture
}

// NewHarness creates a harness with a fresh repository (marked by a .git
// directory) and an isolated HOME. AGENTSYNC_* variables inherited from the
// environment are cleared for the duration of the test.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		t:       t,
		homeDir: t.TempDir(),
		repo:    NewFixture(t, t.TempDir()),
	}
	h.repo.MkdirAll(".git")

	h.SetEnv("HOME", h.homeDir)
	for _, key := range []string{
		"AGENTSYNC_CONFIG",
		"AGENTSYNC_ROOT",
		"AGENTSYNC_PACKAGE_ROOT",
		"AGENTSYNC_SKILLS_ROOT",
		"AGENTSYNC_DISABLED_TARGETS",
	} {
		h.SetEnv(key, "")
	}

	return h
}

// SetEnv sets an environment variable for CLI commands run through this harness.
// The environment will be restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.t.Setenv(key, value)
}

// Repo returns the fixture rooted at the repository.
func (h *Harness) Repo() *Fixture {
	return h.repo
}

// Run executes a CLI command against the harness repository. Global flags
// --no-color and --root are added in front of args.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	full := append([]string{"agentsync", "--no-color", "--root", h.repo.Path(".")}, args...)

	var stdout, stderr bytes.Buffer
	err := cli.RunWithIO(context.Background(), full, &stdout, &stderr)

	exitCode := 0
	if err != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
		ExitCode: exitCode,
	}
}
