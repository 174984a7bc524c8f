// Package transform implements the content rewrite pipeline applied to every
// propagated file.
//
// Transforms are pure functions selected by name from a Registry, never
// carried as code in configuration. A run applies the global transforms
// first, then the source group's own transforms, each in declaration order;
// every transform sees the previous one's output and the same Context.
package transform

import (
	"errors"
	"fmt"
)

// Context describes the (source file, target key) pair being processed.
// It is passed by value, so a transform cannot change what later
// transforms observe.
type Context struct {
	// SourcePath is the absolute path to the source file.
	SourcePath string
	// SourceRelative is the source path relative to the repository root, with forward slashes.
	SourceRelative string
	// TargetPath is the absolute path to the destination file.
	TargetPath string
	// TargetRelative is the destination path relative to the repository root, with forward slashes.
	TargetRelative string
	// Extension is the source file extension including the dot (e.g. ".md").
	Extension string
	// TargetKey names the target (e.g. "claude", "codex").
	TargetKey string
}

// Func rewrites content. It must be deterministic and free of side effects.
// An error aborts processing of the file.
type Func func(content string, ctx Context) (string, error)

// Transform is a named Func.
type Transform struct {
	Name        string
	Description string
	Fn          Func
}

// Pipeline is an ordered list of transforms.
type Pipeline []Transform

// Apply folds content through the pipeline from left to right.
func (p Pipeline) Apply(content string, ctx Context) (string, error) {
	fns := make([]Func, len(p))
	for i, t := range p {
		fns[i] = t.Fn
	}
	out, err := Apply(content, fns, ctx)
	if err != nil {
		var se *StepError
		if errors.As(err, &se) {
			se.Name = p[se.Step-1].Name
		}
		return "", err
	}
	return out, nil
}

// Names returns the transform names in application order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, t := range p {
		names[i] = t.Name
	}
	return names
}

// StepError reports the transform that aborted a fold. Step is 1-based;
// Name is set when the transform came from a Pipeline.
type StepError struct {
	Step   int
	Name   string
	Source string
	Err    error
}

func (e *StepError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("transform %q failed for %s: %v", e.Name, e.Source, e.Err)
	}
	return fmt.Sprintf("transform #%d failed for %s: %v", e.Step, e.Source, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Apply folds content through fns from left to right.
func Apply(content string, fns []Func, ctx Context) (string, error) {
	out := content
	for i, fn := range fns {
		next, err := fn(out, ctx)
		if err != nil {
			return "", &StepError{Step: i + 1, Source: ctx.SourceRelative, Err: err}
		}
		out = next
	}
	return out, nil
}
