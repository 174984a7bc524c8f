package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klauern/agentsync/internal/pathmap"
	"github.com/klauern/agentsync/internal/transform"
)

// ErrUnsupportedVersion is reported for any version other than CurrentVersion.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// ValidationError collects every problem found in a configuration.
type ValidationError struct {
	Problems []string
	version  bool
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid configuration (%d problems):\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// Is lets errors.Is match ErrUnsupportedVersion.
func (e *ValidationError) Is(target error) bool {
	return target == ErrUnsupportedVersion && e.version
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the configuration against the transforms in registry.
// It returns a *ValidationError listing every problem, or nil.
func (c *Config) Validate(registry *transform.Registry) error {
	verr := &ValidationError{}

	if c.Version != CurrentVersion {
		verr.version = true
		verr.add("%v: got %d, want %d", ErrUnsupportedVersion, c.Version, CurrentVersion)
	}
	if strings.TrimSpace(c.PackageRoot) == "" {
		verr.add("package_root must not be empty")
	}
	if strings.TrimSpace(c.SkillsRoot) == "" {
		verr.add("skills_root must not be empty")
	}
	if len(c.Sources) == 0 {
		verr.add("at least one source group is required")
	}

	for _, name := range c.GlobalTransforms {
		if _, ok := registry.Lookup(name); !ok {
			verr.add("global_transforms: unknown transform %q", name)
		}
	}

	for i, group := range c.Sources {
		where := fmt.Sprintf("sources[%d]", i)

		if len(group.Patterns) == 0 {
			verr.add("%s: at least one pattern is required", where)
		}
		for j, p := range group.Patterns {
			if strings.TrimSpace(p) == "" {
				verr.add("%s.patterns[%d]: pattern must not be empty", where, j)
			}
		}

		if group.Targets.Len() == 0 {
			verr.add("%s: at least one target is required", where)
		}
		for _, pair := range group.Targets.Pairs() {
			if strings.TrimSpace(pair.Key) == "" {
				verr.add("%s.targets: target key must not be empty", where)
			}
			if err := pathmap.ValidateTargetDir(pair.Spec.Dir); err != nil {
				verr.add("%s.targets.%s.dir: %v", where, pair.Key, err)
			}
		}

		for _, name := range group.Transforms {
			if _, ok := registry.Lookup(name); !ok {
				verr.add("%s.transforms: unknown transform %q", where, name)
			}
		}
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}
