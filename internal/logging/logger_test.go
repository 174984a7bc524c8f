package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/klauern/agentsync/internal/logging"
)

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:  logging.LevelInfo,
		Output: &buf,
	})

	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:  logging.LevelInfo,
		Output: &buf,
		JSON:   true,
	})

	logger.Info("test message", logging.Target("claude"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry["msg"] != "test message" {
		t.Errorf("expected msg='test message', got: %v", entry["msg"])
	}
	if entry[logging.KeyTarget] != "claude" {
		t.Errorf("expected target='claude', got: %v", entry[logging.KeyTarget])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:  logging.LevelWarn,
		Output: &buf,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("messages below warn should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should appear at warn level")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := logging.DefaultOptions()

	if opts.Level != logging.LevelInfo {
		t.Errorf("expected default level to be Info, got: %v", opts.Level)
	}
	if opts.JSON {
		t.Error("expected default JSON to be false")
	}
	if opts.AddSource {
		t.Error("expected default AddSource to be false")
	}
}

func TestPackageLevelLogging(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{Level: logging.LevelDebug, Output: &buf}))
	t.Cleanup(func() { logging.SetDefault(logging.New(logging.DefaultOptions())) })

	logging.Debug("d")
	logging.Info("i")
	logging.Warn("w")
	logging.Error("e")
	logging.With("component", "test").Info("child")

	output := buf.String()
	for _, want := range []string{"msg=d", "msg=i", "msg=w", "msg=e", "component=test"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Output: &buf})

	ctx := logging.NewContext(context.Background(), logger)
	logging.WithContext(ctx).Info("context message")

	if !strings.Contains(buf.String(), "context message") {
		t.Error("expected logger from context to write to buffer")
	}
	if logging.FromContext(context.Background()) != nil {
		t.Error("expected nil logger from empty context")
	}
	if logging.WithContext(context.Background()) == nil {
		t.Error("expected default logger fallback")
	}
}

func TestAttributeHelpers(t *testing.T) {
	tests := map[string]struct {
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		"target":    {attr: logging.Target("codex"), wantKey: logging.KeyTarget, wantVal: "codex"},
		"source":    {attr: logging.Source("src/a.md"), wantKey: logging.KeySource, wantVal: "src/a.md"},
		"group":     {attr: logging.Group(2), wantKey: logging.KeyGroup, wantVal: "2"},
		"status":    {attr: logging.Status("drift"), wantKey: logging.KeyStatus, wantVal: "drift"},
		"path":      {attr: logging.Path("/tmp/x"), wantKey: logging.KeyPath, wantVal: "/tmp/x"},
		"operation": {attr: logging.Operation("check"), wantKey: logging.KeyOperation, wantVal: "check"},
		"count":     {attr: logging.Count(3), wantKey: logging.KeyCount, wantVal: "3"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if got := tt.attr.Value.String(); got != tt.wantVal {
				t.Errorf("value = %q, want %q", got, tt.wantVal)
			}
		})
	}
}

func TestErr(t *testing.T) {
	if attr := logging.Err(nil); !attr.Equal(slog.Attr{}) {
		t.Errorf("Err(nil) = %v, want empty attr", attr)
	}
	attr := logging.Err(errors.New("boom"))
	if attr.Key != logging.KeyError || attr.Value.String() != "boom" {
		t.Errorf("Err() = %v", attr)
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{Level: logging.LevelDebug, Output: &buf}))
	t.Cleanup(func() { logging.SetDefault(logging.New(logging.DefaultOptions())) })

	logging.Timer("check")()

	output := buf.String()
	if !strings.Contains(output, "operation=check") || !strings.Contains(output, "duration=") {
		t.Errorf("expected timer output, got: %s", output)
	}
}
