package template

import (
	"bytes"
	"fmt"
	"strings"
)

// TargetPreset is a well-known destination for a coding agent.
type TargetPreset struct {
	Key         string
	Dir         string
	Description string
}

// Presets lists the targets "config init" knows about.
var Presets = []TargetPreset{
	{Key: "claude", Dir: ".claude/skills", Description: "Claude Code skills"},
	{Key: "codex", Dir: ".codex/skills", Description: "Codex skills"},
	{Key: "cursor", Dir: ".cursor/rules", Description: "Cursor rules"},
	{Key: "gemini", Dir: ".gemini/skills", Description: "Gemini CLI skills"},
}

// DefaultTargets are used when no targets are requested.
var DefaultTargets = []string{"claude", "codex"}

// PresetsFor returns the presets for keys, in the order given.
func PresetsFor(keys []string) ([]TargetPreset, error) {
	if len(keys) == 0 {
		keys = DefaultTargets
	}
	out := make([]TargetPreset, 0, len(keys))
	for _, key := range keys {
		found := false
		for _, p := range Presets {
			if p.Key == key {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown target preset %q (known: %s)", key, presetKeys())
		}
	}
	return out, nil
}

func presetKeys() string {
	keys := make([]string, len(Presets))
	for i, p := range Presets {
		keys[i] = p.Key
	}
	return strings.Join(keys, ", ")
}

// ConfigData holds the data passed to the configuration template.
type ConfigData struct {
	PackageRoot string
	SkillsRoot  string
	Targets     []TargetPreset
}

// RenderConfig renders a starter agents.yaml.
func (g *Generator) RenderConfig(data ConfigData) (string, error) {
	var buf bytes.Buffer
	if err := g.config.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute config template: %w", err)
	}
	return buf.String(), nil
}
