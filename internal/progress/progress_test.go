package progress

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/ui"
)

func withLogger(t *testing.T, level slog.Level) {
	t.Helper()
	prev := logging.Default()
	logging.SetDefault(logging.New(logging.Options{Level: level, Output: io.Discard}))
	t.Cleanup(func() { logging.SetDefault(prev) })
}

func TestNew_Visibility(t *testing.T) {
	tests := map[string]struct {
		colors bool
		force  bool
		level  slog.Level
		writer io.Writer
		want   bool
	}{
		"forced buffer":       {colors: true, force: true, level: logging.LevelInfo, writer: &bytes.Buffer{}, want: true},
		"buffer":              {colors: true, level: logging.LevelInfo, writer: &bytes.Buffer{}, want: false},
		"colors disabled":     {colors: false, force: true, level: logging.LevelInfo, writer: &bytes.Buffer{}, want: false},
		"debug logging":       {colors: true, force: true, level: logging.LevelDebug, writer: &bytes.Buffer{}, want: false},
		"non-terminal stderr": {colors: true, level: logging.LevelInfo, writer: os.Stderr, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if name == "non-terminal stderr" && isTerminal(os.Stderr) {
				t.Skip("stderr is a terminal")
			}
			withLogger(t, tt.level)
			if tt.colors {
				ui.EnableColors()
			} else {
				ui.DisableColors()
			}
			defer ui.EnableColors()

			if got := New(Options{Description: "Syncing", Writer: tt.writer, Force: tt.force}).Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBar_Step(t *testing.T) {
	withLogger(t, logging.LevelInfo)
	ui.EnableColors()

	var buf bytes.Buffer
	bar := New(Options{Description: "Checking", Writer: &buf, Force: true})
	for i := 1; i <= 3; i++ {
		if err := bar.Step(i, 3); err != nil {
			t.Fatalf("Step(%d) error = %v", i, err)
		}
	}
	if err := bar.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Checking")) {
		t.Errorf("output %q does not contain the description", buf.String())
	}
}

func TestBar_FixedWidth(t *testing.T) {
	withLogger(t, logging.LevelInfo)
	ui.EnableColors()

	var buf bytes.Buffer
	bar := New(Options{Description: "Syncing", Writer: &buf, Force: true})
	if err := bar.Step(4, 4); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if err := bar.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, strings.Repeat("█", 15)) {
		t.Errorf("completed bar %q is not 15 cells wide", out)
	}
	if strings.Contains(out, strings.Repeat("█", 16)) {
		t.Errorf("completed bar %q is wider than 15 cells", out)
	}
}

func TestBar_Disabled(t *testing.T) {
	ui.DisableColors()
	defer ui.EnableColors()

	var buf bytes.Buffer
	bar := New(Options{Description: "Syncing", Writer: &buf, Force: true})
	if err := bar.Step(1, 2); err != nil {
		t.Errorf("Step() error = %v", err)
	}
	if err := bar.Clear(); err != nil {
		t.Errorf("Clear() error = %v", err)
	}
	if err := bar.Finish(); err != nil {
		t.Errorf("Finish() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("hidden bar wrote %q", buf.String())
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
