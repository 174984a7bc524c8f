// Package config loads the agentsync configuration: the ordered source
// groups, their targets and the transforms applied on the way.
// It supports YAML (default) and TOML files plus environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/agentsync/internal/util"
)

// CurrentVersion is the only configuration version understood.
const CurrentVersion = 1

// Default locations, relative to the repository root.
const (
	DefaultPackageRoot = "tooling/agents"
	DefaultSkillsRoot  = "src/skills"
)

// ErrNotFound is returned by Find when no configuration file exists.
var ErrNotFound = errors.New("no agentsync configuration found")

// candidateFiles are probed, in order, relative to the repository root.
var candidateFiles = []string{
	"agents.yaml",
	"agents.yml",
	"agents.toml",
	filepath.Join(DefaultPackageRoot, "agents.yaml"),
	filepath.Join(DefaultPackageRoot, "agents.yml"),
	filepath.Join(DefaultPackageRoot, "agents.toml"),
}

// Config is the root configuration.
type Config struct {
	// Version must equal CurrentVersion.
	Version int `yaml:"version" toml:"version"`

	// PackageRoot is the directory glob patterns are resolved against,
	// relative to the repository root unless absolute.
	PackageRoot string `yaml:"package_root" toml:"package_root"`

	// SkillsRoot is the anchor directory whose subtree is mirrored into each
	// target, relative to PackageRoot unless absolute.
	SkillsRoot string `yaml:"skills_root" toml:"skills_root"`

	// GlobalTransforms run on every file before the group's own transforms.
	GlobalTransforms []string `yaml:"global_transforms,omitempty" toml:"global_transforms"`

	// Sources are processed in order.
	Sources []SourceGroup `yaml:"sources" toml:"sources"`
}

// SourceGroup is a set of patterns fanned out to one or more targets.
type SourceGroup struct {
	// Patterns are doublestar globs relative to PackageRoot.
	Patterns []string `yaml:"patterns" toml:"patterns"`
	// Targets maps target keys to destinations, in declaration order.
	Targets Targets `yaml:"targets" toml:"targets"`
	// Transforms run after the global transforms.
	Transforms []string `yaml:"transforms,omitempty" toml:"transforms"`
}

// TargetSpec is one destination root.
type TargetSpec struct {
	// Dir is the destination directory relative to the repository root.
	Dir string `yaml:"dir" toml:"dir"`
	// Description is shown in logs instead of the key when set.
	Description string `yaml:"description,omitempty" toml:"description"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled"`
}

// IsEnabled reports whether the target is enabled (the default).
func (t TargetSpec) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// Label returns the description, or key when there is none.
func (t TargetSpec) Label(key string) string {
	if t.Description != "" {
		return t.Description
	}
	return key
}

// Default returns a configuration holding only the location defaults.
func Default() *Config {
	return &Config{
		PackageRoot: DefaultPackageRoot,
		SkillsRoot:  DefaultSkillsRoot,
	}
}

// Find returns the first configuration file present under repoRoot.
func Find(repoRoot string) (string, error) {
	for _, candidate := range candidateFiles {
		path := filepath.Join(repoRoot, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNotFound, repoRoot, strings.Join(candidateFiles, ", "))
}

// LoadFromPath loads configuration from path, choosing the decoder from the
// file extension, then applies environment overrides.
func LoadFromPath(path string) (*Config, error) {
	// #nosec G304 - path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Format returns "toml" for .toml files and "yaml" otherwise.
func Format(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Parse decodes data in the given format over the defaults.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	return cfg, nil
}

// applyEnvironment applies environment variable overrides.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("AGENTSYNC_PACKAGE_ROOT"); v != "" {
		c.PackageRoot = v
	}
	if v := os.Getenv("AGENTSYNC_SKILLS_ROOT"); v != "" {
		c.SkillsRoot = v
	}
	if v := os.Getenv("AGENTSYNC_DISABLED_TARGETS"); v != "" {
		for _, key := range splitList(v) {
			c.DisableTarget(key)
		}
	}
}

// DisableTarget disables key in every source group that declares it.
func (c *Config) DisableTarget(key string) {
	disabled := false
	for i := range c.Sources {
		spec, ok := c.Sources[i].Targets.Get(key)
		if !ok {
			continue
		}
		spec.Enabled = &disabled
		c.Sources[i].Targets.Set(key, spec)
	}
}

// TargetKeys returns every distinct target key in declaration order.
func (c *Config) TargetKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, group := range c.Sources {
		for _, key := range group.Targets.Keys() {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// Roots resolves the package root and skills root against repoRoot.
func (c *Config) Roots(repoRoot string) (packageRoot, skillsRoot string) {
	packageRoot = resolveAgainst(repoRoot, c.PackageRoot)
	skillsRoot = resolveAgainst(packageRoot, c.SkillsRoot)
	return packageRoot, skillsRoot
}

func resolveAgainst(base, p string) string {
	p = util.ExpandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, filepath.FromSlash(p))
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
