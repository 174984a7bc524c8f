package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Targets is an ordered mapping of target key to TargetSpec.
//
// YAML documents keep their declaration order. TOML tables carry no usable
// order once decoded, so their keys are sorted.
type Targets struct {
	keys  []string
	specs map[string]TargetSpec
}

// NewTargets builds Targets from key/spec pairs in the given order.
func NewTargets(pairs ...TargetPair) Targets {
	var t Targets
	for _, p := range pairs {
		t.Set(p.Key, p.Spec)
	}
	return t
}

// TargetPair is a key and its spec.
type TargetPair struct {
	Key  string
	Spec TargetSpec
}

// Keys returns the target keys in order.
func (t Targets) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of targets.
func (t Targets) Len() int {
	return len(t.keys)
}

// Get returns the spec for key.
func (t Targets) Get(key string) (TargetSpec, bool) {
	spec, ok := t.specs[key]
	return spec, ok
}

// Set adds or replaces key, keeping the original position on replace.
func (t *Targets) Set(key string, spec TargetSpec) {
	if t.specs == nil {
		t.specs = make(map[string]TargetSpec)
	}
	if _, exists := t.specs[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.specs[key] = spec
}

// Pairs returns the targets as ordered pairs.
func (t Targets) Pairs() []TargetPair {
	out := make([]TargetPair, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, TargetPair{Key: k, Spec: t.specs[k]})
	}
	return out
}

// UnmarshalYAML decodes a mapping node, preserving key order.
func (t *Targets) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: targets must be a mapping of key to target", value.Line)
	}

	var out Targets
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, specNode := value.Content[i], value.Content[i+1]
		key := keyNode.Value
		if _, dup := out.specs[key]; dup {
			return fmt.Errorf("line %d: duplicate target %q", keyNode.Line, key)
		}
		var spec TargetSpec
		if err := specNode.Decode(&spec); err != nil {
			return fmt.Errorf("target %q: %w", key, err)
		}
		out.Set(key, spec)
	}
	*t = out
	return nil
}

// MarshalYAML encodes the targets as an ordered mapping.
func (t Targets) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range t.Pairs() {
		var spec yaml.Node
		if err := spec.Encode(p.Spec); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
			&spec,
		)
	}
	return node, nil
}

// UnmarshalTOML decodes a table of target tables.
func (t *Targets) UnmarshalTOML(data any) error {
	table, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("targets must be a table, got %T", data)
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out Targets
	for _, key := range keys {
		spec, err := targetSpecFromTOML(key, table[key])
		if err != nil {
			return err
		}
		out.Set(key, spec)
	}
	*t = out
	return nil
}

func targetSpecFromTOML(key string, raw any) (TargetSpec, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return TargetSpec{}, fmt.Errorf("target %q must be a table, got %T", key, raw)
	}

	var spec TargetSpec
	for name, value := range fields {
		switch name {
		case "dir":
			s, ok := value.(string)
			if !ok {
				return TargetSpec{}, fmt.Errorf("target %q: dir must be a string", key)
			}
			spec.Dir = s
		case "description":
			s, ok := value.(string)
			if !ok {
				return TargetSpec{}, fmt.Errorf("target %q: description must be a string", key)
			}
			spec.Description = s
		case "enabled":
			b, ok := value.(bool)
			if !ok {
				return TargetSpec{}, fmt.Errorf("target %q: enabled must be a boolean", key)
			}
			spec.Enabled = &b
		default:
			return TargetSpec{}, fmt.Errorf("target %q: unknown field %q", key, name)
		}
	}
	return spec, nil
}
