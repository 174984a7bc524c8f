// Package pathmap maps canonical source files to their destination paths.
package pathmap

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/klauern/agentsync/internal/transform"
	"github.com/klauern/agentsync/internal/util"
)

var (
	// ErrOutsideSkillsRoot is returned when a source file does not live below
	// the skills root and so has no defined destination.
	ErrOutsideSkillsRoot = errors.New("source is outside the skills root")

	// ErrInvalidTargetDir is returned for target directories that are absolute
	// or would escape the repository root.
	ErrInvalidTargetDir = errors.New("target directory must be relative to and inside the repository root")
)

// Mapper re-parents files found below SkillsRoot under a target directory
// of RepoRoot, preserving every intermediate directory.
type Mapper struct {
	// RepoRoot is the absolute repository root; target dirs are relative to it.
	RepoRoot string
	// SkillsRoot is the absolute anchor directory sources must live under.
	SkillsRoot string
}

// New returns a Mapper for the given roots. Both are made absolute.
func New(repoRoot, skillsRoot string) (Mapper, error) {
	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return Mapper{}, fmt.Errorf("failed to resolve repository root: %w", err)
	}
	anchor, err := filepath.Abs(skillsRoot)
	if err != nil {
		return Mapper{}, fmt.Errorf("failed to resolve skills root: %w", err)
	}
	return Mapper{RepoRoot: root, SkillsRoot: anchor}, nil
}

// Target returns the absolute destination path of sourcePath under targetDir.
//
//	SkillsRoot: /repo/tooling/agents/src/skills
//	source:     /repo/tooling/agents/src/skills/ci-verify/SKILL.md
//	targetDir:  .claude/skills
//	result:     /repo/.claude/skills/ci-verify/SKILL.md
func (m Mapper) Target(sourcePath, targetDir string) (string, error) {
	if err := ValidateTargetDir(targetDir); err != nil {
		return "", err
	}

	rel, err := filepath.Rel(m.SkillsRoot, filepath.Clean(sourcePath))
	if err != nil || rel == "." || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s (skills root %s)", ErrOutsideSkillsRoot, sourcePath, m.SkillsRoot)
	}

	return filepath.Join(m.RepoRoot, filepath.FromSlash(targetDir), rel), nil
}

// Context builds the transform context for one (source, target key) pair.
func (m Mapper) Context(sourcePath, targetPath, targetKey string) transform.Context {
	return transform.Context{
		SourcePath:     sourcePath,
		SourceRelative: util.SlashRel(m.RepoRoot, sourcePath),
		TargetPath:     targetPath,
		TargetRelative: util.SlashRel(m.RepoRoot, targetPath),
		Extension:      filepath.Ext(sourcePath),
		TargetKey:      targetKey,
	}
}

// ValidateTargetDir rejects empty, absolute or escaping target directories.
func ValidateTargetDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTargetDir)
	}
	native := filepath.FromSlash(dir)
	if filepath.IsAbs(native) || !filepath.IsLocal(native) {
		return fmt.Errorf("%w: %s", ErrInvalidTargetDir, dir)
	}
	return nil
}
