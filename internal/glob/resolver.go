// Package glob resolves source file patterns into a deterministic file set.
package glob

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/klauern/agentsync/internal/logging"
)

// Resolve expands every pattern against baseDir and returns the union of the
// matched regular files as sorted, deduplicated absolute paths.
//
// Patterns use forward slashes and support doublestar syntax ("**" crosses
// directory boundaries). Patterns that are absolute or climb out of baseDir
// with ".." are matched against the real filesystem instead of baseDir.
// Wildcards never match dot-prefixed files or directories; a hidden path is
// only returned when the pattern names that segment with a leading dot.
// An empty result is not an error.
func Resolve(patterns []string, baseDir string) ([]string, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %q: %w", baseDir, err)
	}

	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := expand(pattern, base)
		if err != nil {
			return nil, err
		}
		logging.Debug("expanded pattern",
			slog.String("pattern", pattern),
			logging.Path(base),
			logging.Count(len(matches)),
		)
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// expand resolves a single pattern to absolute file paths.
func expand(pattern, base string) ([]string, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return nil, fmt.Errorf("empty glob pattern")
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(trimmed)) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	if filepath.IsAbs(trimmed) {
		return filesystemGlob(filepath.Clean(trimmed), pattern)
	}

	cleaned := path.Clean(filepath.ToSlash(trimmed))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return filesystemGlob(filepath.Join(base, filepath.FromSlash(cleaned)), pattern)
	}

	rel, err := doublestar.Glob(os.DirFS(base), cleaned, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand pattern %q: %w", pattern, err)
	}
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		if !visible(r, cleaned) {
			continue
		}
		out = append(out, filepath.Join(base, filepath.FromSlash(r)))
	}
	return out, nil
}

func filesystemGlob(joined, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(joined, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand pattern %q: %w", pattern, err)
	}
	slashPattern := filepath.ToSlash(joined)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !visible(filepath.ToSlash(m), slashPattern) {
			continue
		}
		abs, err := filepath.Abs(m)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve match %q: %w", m, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// visible reports whether match, produced by pattern, has no hidden segment
// below the pattern's literal base other than those the pattern spells with
// a leading dot.
func visible(match, pattern string) bool {
	base, rest := doublestar.SplitPattern(pattern)
	rel := match
	if base != "." {
		rel = strings.TrimPrefix(match, strings.TrimSuffix(base, "/")+"/")
	}

	var dotted []string
	for _, seg := range strings.Split(rest, "/") {
		if strings.HasPrefix(seg, ".") {
			dotted = append(dotted, seg)
		}
	}

	for _, seg := range strings.Split(rel, "/") {
		if !strings.HasPrefix(seg, ".") || seg == "." || seg == ".." {
			continue
		}
		named := false
		for _, d := range dotted {
			if ok, _ := doublestar.Match(d, seg); ok {
				named = true
				break
			}
		}
		if !named {
			return false
		}
	}
	return true
}
