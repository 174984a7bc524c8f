package transform

import (
	"fmt"
	"sort"
)

// Registry maps transform names to implementations.
type Registry struct {
	transforms map[string]Transform
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{transforms: make(map[string]Transform)}
}

// Register adds t to the registry. Names must be unique and non-empty.
func (r *Registry) Register(t Transform) error {
	if t.Name == "" {
		return fmt.Errorf("transform name is required")
	}
	if t.Fn == nil {
		return fmt.Errorf("transform %q has no function", t.Name)
	}
	if _, exists := r.transforms[t.Name]; exists {
		return fmt.Errorf("transform %q already registered", t.Name)
	}
	r.transforms[t.Name] = t
	return nil
}

// Lookup returns the transform registered under name.
func (r *Registry) Lookup(name string) (Transform, bool) {
	t, ok := r.transforms[name]
	return t, ok
}

// List returns all transforms sorted by name.
func (r *Registry) List() []Transform {
	out := make([]Transform, 0, len(r.transforms))
	for _, t := range r.transforms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve converts names into a pipeline, failing on the first unknown name.
func (r *Registry) Resolve(names []string) (Pipeline, error) {
	p := make(Pipeline, 0, len(names))
	for _, name := range names {
		t, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown transform %q", name)
		}
		p = append(p, t)
	}
	return p, nil
}

// Pipeline resolves the global transforms followed by the group transforms.
func (r *Registry) Pipeline(global, group []string) (Pipeline, error) {
	g, err := r.Resolve(global)
	if err != nil {
		return nil, fmt.Errorf("global transforms: %w", err)
	}
	s, err := r.Resolve(group)
	if err != nil {
		return nil, fmt.Errorf("group transforms: %w", err)
	}
	return append(g, s...), nil
}

var defaultRegistry = newBuiltinRegistry()

// Default returns the registry holding the builtin transforms.
func Default() *Registry {
	return defaultRegistry
}

func newBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, t := range builtins() {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}
