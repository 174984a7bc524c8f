package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Styles holds the lipgloss styles of the summary block.
var Styles = struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Total lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	Label: lipgloss.NewStyle().Width(labelWidth),
	Total: lipgloss.NewStyle().Bold(true),
}

const labelWidth = 12

// SummaryRow is one status line of the summary.
type SummaryRow struct {
	Tone  Tone
	Label string
	Count int
}

// StatusLabel turns a status identifier such as "in_sync" into "In Sync".
func StatusLabel(status string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(status, "_", " "))
}

// Summary renders a titled block with one line per row and a total line.
func Summary(title string, rows []SummaryRow) string {
	var sb strings.Builder
	sb.WriteString(render(Styles.Title, title))
	sb.WriteString("\n")

	total := 0
	for _, row := range rows {
		total += row.Count
		sb.WriteString(fmt.Sprintf("  %s %s %d\n", Symbol(row.Tone), pad(row.Label), row.Count))
	}
	sb.WriteString(fmt.Sprintf("    %s %d\n", render(Styles.Total, pad("Total")), total))
	return sb.String()
}

func pad(label string) string {
	return Styles.Label.Render(label)
}

// render applies style only when colors are enabled.
func render(style lipgloss.Style, s string) string {
	if !IsColorEnabled() {
		return s
	}
	return style.Render(s)
}
