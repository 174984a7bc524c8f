package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauern/agentsync/internal/sync"
	"github.com/klauern/agentsync/internal/ui"
)

// toneOf maps a status onto the symbol shown next to it.
func toneOf(status sync.Status) ui.Tone {
	switch status {
	case sync.StatusWarning, sync.StatusDrift:
		return ui.ToneWarning
	case sync.StatusMissing:
		return ui.ToneError
	default:
		return ui.ToneSuccess
	}
}

// writeReport prints the operator report for result.
func writeReport(w io.Writer, result *sync.Result) {
	rows := make([]ui.SummaryRow, 0, 3)
	for _, status := range result.Mode.Statuses() {
		rows = append(rows, ui.SummaryRow{
			Tone:  toneOf(status),
			Label: ui.StatusLabel(string(status)),
			Count: result.Count(status),
		})
	}

	title := "Sync summary"
	if result.Mode == sync.ModeCheck {
		title = "Check summary"
	}
	fmt.Fprint(w, ui.Summary(title, rows))

	if result.Mode == sync.ModeSync {
		writeSyncDetails(w, result)
		return
	}
	writeCheckDetails(w, result)
}

func writeSyncDetails(w io.Writer, result *sync.Result) {
	warnings := result.Warnings()
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Warnings:"))
	for _, rec := range warnings {
		fmt.Fprintf(w, "  %s: %s\n", ui.Mark(ui.ToneWarning, ui.Path(rec.TargetRelative)), rec.Detail)
		writeDiff(w, rec.Diff)
	}
}

func writeCheckDetails(w io.Writer, result *sync.Result) {
	problems := result.Problems()
	if len(problems) == 0 {
		if result.Total() > 0 {
			fmt.Fprintf(w, "\n%s\n", ui.Mark(ui.ToneSuccess, "All destinations are in sync."))
		}
		return
	}

	fmt.Fprintf(w, "\n%s\n", ui.Bold("Out of sync:"))
	for _, rec := range problems {
		fmt.Fprintf(w, "  %s [%s] %s\n",
			ui.Mark(toneOf(rec.Status), ui.Path(rec.TargetRelative)),
			rec.Status,
			ui.Dim(rec.Detail),
		)
		writeDiff(w, rec.Diff)
	}
	fmt.Fprintf(w, "\n%s\n", ui.Dim("Run 'agentsync sync' to fix drift."))
}

// writeDiff prints d indented under its record, coloring changed lines.
func writeDiff(w io.Writer, d string) {
	if d == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(d, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = ui.Bold(line)
		case strings.HasPrefix(line, "+"):
			line = ui.Success(line)
		case strings.HasPrefix(line, "-"):
			line = ui.Error(line)
		case strings.HasPrefix(line, "@@"):
			line = ui.Path(line)
		}
		fmt.Fprintf(w, "      %s\n", line)
	}
}
