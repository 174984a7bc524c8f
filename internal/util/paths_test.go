package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomeDir(t *testing.T) {
	home := HomeDir()
	if home == "" {
		t.Error("HomeDir() returned empty string")
	}

	// Verify it's an absolute path
	if !filepath.IsAbs(home) {
		t.Errorf("HomeDir() returned relative path: %s", home)
	}
}

func TestExpandHome(t *testing.T) {
	home := HomeDir()

	tests := map[string]struct {
		in   string
		want string
	}{
		"tilde alone":   {in: "~", want: home},
		"tilde prefix":  {in: "~/repo", want: filepath.Join(home, "repo")},
		"relative path": {in: "repo/~", want: "repo/~"},
		"absolute path": {in: "/srv/repo", want: "/srv/repo"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlashRel(t *testing.T) {
	base := filepath.FromSlash("/repo")
	target := filepath.FromSlash("/repo/.claude/skills/x/SKILL.md")

	if got := SlashRel(base, target); got != ".claude/skills/x/SKILL.md" {
		t.Errorf("SlashRel() = %q", got)
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := CreateTempDir(t)
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o750); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
	nested := filepath.Join(root, "tooling", "agents", "src")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got, err := FindRepoRoot(nested)
	AssertNoError(t, err)
	AssertEqual(t, got, root)
}

func TestFindRepoRoot_NoGit(t *testing.T) {
	dir := CreateTempDir(t)

	got, err := FindRepoRoot(dir)
	AssertNoError(t, err)
	// Falls back to the starting directory unless an ancestor is a repository.
	if got != dir && !IsDir(filepath.Join(got, ".git")) {
		t.Errorf("FindRepoRoot() = %q, want %q", got, dir)
	}
}

func TestIsDir(t *testing.T) {
	dir := CreateTempDir(t)
	file := filepath.Join(dir, "f.txt")
	WriteFile(t, file, "x")

	if !IsDir(dir) {
		t.Error("IsDir(dir) = false")
	}
	if IsDir(file) {
		t.Error("IsDir(file) = true")
	}
	if IsDir(filepath.Join(dir, "missing")) {
		t.Error("IsDir(missing) = true")
	}
}
