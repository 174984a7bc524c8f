// Package ui renders the operator report: colored status symbols and the
// per-status summary block.
package ui

import (
	"github.com/fatih/color"
)

var (
	// Success colors passing outcomes (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error colors gate failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning colors overwrites and drift (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Path colors destination paths (cyan).
	Path = color.New(color.FgCyan).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for details and hints.
	Dim = color.New(color.Faint).SprintFunc()
)

// Tone groups statuses that share a symbol and color.
type Tone int

const (
	// ToneSuccess is for created, unchanged and in-sync destinations.
	ToneSuccess Tone = iota
	// ToneWarning is for overwritten and drifted destinations.
	ToneWarning
	// ToneError is for missing destinations.
	ToneError
)

const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
	SymbolError   = "✗"
)

// Symbol returns the colored symbol for tone.
func Symbol(tone Tone) string {
	switch tone {
	case ToneWarning:
		return Warning(SymbolWarning)
	case ToneError:
		return Error(SymbolError)
	default:
		return Success(SymbolSuccess)
	}
}

// Mark returns the colored symbol for tone followed by msg.
func Mark(tone Tone, msg string) string {
	if msg == "" {
		return Symbol(tone)
	}
	return Symbol(tone) + " " + msg
}

// DisableColors disables all color output, including summary styling.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled reports whether colors are enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
