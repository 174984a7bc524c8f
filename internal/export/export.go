// Package export writes run results in machine-readable formats for CI
// tooling: JSON, YAML and a Markdown table suited to job summaries.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/sync"
)

// Format represents an output format.
type Format string

const (
	// FormatText is the human report. It is rendered by the CLI, not here.
	FormatText Format = "text"
	// FormatJSON exports the result as JSON.
	FormatJSON Format = "json"
	// FormatYAML exports the result as YAML.
	FormatYAML Format = "yaml"
	// FormatMarkdown exports the result as a Markdown table.
	FormatMarkdown Format = "markdown"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: text, json, yaml, markdown)", s)
	}
	return format, nil
}

// Options configures export behavior.
type Options struct {
	// Format specifies the output format.
	Format Format
	// Pretty enables indentation for JSON.
	Pretty bool
	// ProblemsOnly limits records to warnings, drift and missing destinations.
	ProblemsOnly bool
}

// DefaultOptions returns the default export options.
func DefaultOptions() Options {
	return Options{
		Format: FormatJSON,
		Pretty: true,
	}
}

// Exporter writes results in one format.
type Exporter struct {
	opts Options
}

// New creates a new Exporter with the given options.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Report is the exported document.
type Report struct {
	Mode    string         `json:"mode" yaml:"mode"`
	OK      bool           `json:"ok" yaml:"ok"`
	Total   int            `json:"total" yaml:"total"`
	Counts  map[string]int `json:"counts" yaml:"counts"`
	Records []sync.Record  `json:"records" yaml:"records"`
}

// NewReport summarizes result. Counts always list every status of the
// result's mode, including zeros.
func NewReport(result *sync.Result, problemsOnly bool) Report {
	counts := make(map[string]int)
	for _, status := range result.Mode.Statuses() {
		counts[string(status)] = result.Count(status)
	}

	records := result.Records
	if problemsOnly {
		records = append(result.Warnings(), result.Problems()...)
	}
	if records == nil {
		records = []sync.Record{}
	}

	return Report{
		Mode:    string(result.Mode),
		OK:      result.OK(),
		Total:   result.Total(),
		Counts:  counts,
		Records: records,
	}
}

// Export writes result to w in the configured format.
func (e *Exporter) Export(result *sync.Result, w io.Writer) error {
	defer logging.Timer("export")()

	report := NewReport(result, e.opts.ProblemsOnly)
	logging.Debug("starting export",
		slog.String("format", string(e.opts.Format)),
		logging.Count(len(report.Records)),
		logging.Operation("export"),
	)

	var err error
	switch e.opts.Format {
	case FormatJSON:
		err = e.exportJSON(report, w)
	case FormatYAML:
		err = e.exportYAML(report, w)
	case FormatMarkdown:
		err = e.exportMarkdown(report, w)
	default:
		err = fmt.Errorf("unsupported export format: %s", e.opts.Format)
	}

	if err != nil {
		logging.Error("export failed",
			slog.String("format", string(e.opts.Format)),
			logging.Err(err),
		)
		return err
	}
	return nil
}

func (e *Exporter) exportJSON(report Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}

func (e *Exporter) exportYAML(report Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

func (e *Exporter) exportMarkdown(report Report, w io.Writer) error {
	var sb strings.Builder

	verdict := "passed"
	if !report.OK {
		verdict = "failed"
	}
	sb.WriteString(fmt.Sprintf("## agentsync %s %s\n\n", report.Mode, verdict))

	sb.WriteString("| Status | Count |\n")
	sb.WriteString("|--------|-------|\n")
	for _, status := range sync.Mode(report.Mode).Statuses() {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", status, report.Counts[string(status)]))
	}
	sb.WriteString(fmt.Sprintf("| **total** | %d |\n", report.Total))

	if len(report.Records) > 0 {
		sb.WriteString("\n| Target | Path | Status | Detail |\n")
		sb.WriteString("|--------|------|--------|--------|\n")
		for _, rec := range report.Records {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s |\n",
				rec.TargetKey, rec.TargetRelative, rec.Status, escapeCell(rec.Detail)))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
