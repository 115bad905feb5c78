package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("mask decoded", "mask", "m1")

	output := buf.String()
	if !strings.Contains(output, "mask decoded") {
		t.Fatalf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"mask":"m1"`) {
		t.Fatalf("expected mask attr in JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Fatalf("expected level INFO in output, got: %s", output)
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")
	log.Debug("also should not appear")

	if buf.Len() > 0 {
		t.Fatalf("expected no output for info/debug at warn level, got: %s", buf.String())
	}

	log.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warn message in output, got: %s", buf.String())
	}
}

func TestSetup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"pretty", "hello"},
		{"", "hello"},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		log, err := Setup(&buf, "debug", tc.format)
		if err != nil {
			t.Fatalf("Setup(%q): %v", tc.format, err)
		}
		log.Debug("hello")
		if !strings.Contains(buf.String(), tc.want) {
			t.Fatalf("Setup(%q): expected %q in %q", tc.format, tc.want, buf.String())
		}
	}

	if _, err := Setup(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := Discard()
	log.Error("dropped")
	log.With("k", "v").WithGroup("g").Info("dropped")
}

func TestWith(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	childLog := log.With("component", "transfer")
	childLog.Info("child message")

	output := buf.String()
	if !strings.Contains(output, `"component":"transfer"`) {
		t.Fatalf("expected component attr in output, got: %s", output)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("roundtrip test")
	if !strings.Contains(buf.String(), "roundtrip test") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext with no logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range tests {
		result := ParseLevel(tc.input)
		if result != tc.expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tc.input, tc.expected, result)
		}
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestPrettyHandlerNestedGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)

	logger := slog.New(h.WithGroup("a").WithGroup("b"))
	logger.Info("nested", "key", "val")

	if !strings.Contains(buf.String(), "a.b.key=val") {
		t.Fatalf("expected 'a.b.key=val' in output, got: %s", buf.String())
	}
}

func TestPrettyHandlerSharesWriterLock(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	child := h.WithAttrs([]slog.Attr{slog.String("stage", "render")}).(*PrettyHandler)
	if child.mu != h.mu {
		t.Fatal("derived handler should share the parent's lock")
	}
}

func TestPrettyFormatsValues(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, nil))
	logger.Info("test", "msg", "hello world", "plain", "simple", "err", errors.New("bad magic"))

	output := buf.String()
	if !strings.Contains(output, `msg="hello world"`) {
		t.Fatalf("expected quoted string with spaces, got: %s", output)
	}
	if !strings.Contains(output, "plain=simple") {
		t.Fatalf("expected unquoted simple string, got: %s", output)
	}
	if !strings.Contains(output, `err="bad magic"`) {
		t.Fatalf("expected quoted error, got: %s", output)
	}
	if !strings.Contains(output, "INFO ") {
		t.Fatalf("expected padded level, got: %s", output)
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"simple", false},
		{"has space", true},
		{"has\ttab", true},
		{`has"quote`, true},
		{"", false},
	}

	for _, tc := range tests {
		if got := needsQuoting(tc.input); got != tc.expected {
			t.Errorf("needsQuoting(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestPrettyComponentTag(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	h.color = false

	logger := slog.New(h).With("component", "api")
	logger.Info("mask stored", "id", "mask_1", "source", "upload")

	got := buf.String()
	if !strings.Contains(got, "INFO  [api] mask stored id=mask_1 source=upload\n") {
		t.Fatalf("unexpected line: %q", got)
	}
	if strings.Contains(got, "component=") {
		t.Fatalf("component should be lifted into the tag: %q", got)
	}
	if strings.Contains(got, "\033[") {
		t.Fatalf("expected no color codes: %q", got)
	}
}

func TestPrettyGroupsAndEmptyAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	h.color = false

	slog.New(h).Info("render", slog.Group("size", "w", 2, "h", 3), slog.Attr{}, "q", "a=b")

	got := buf.String()
	if !strings.Contains(got, "render size.w=2 size.h=3 q=\"a=b\"\n") {
		t.Fatalf("unexpected line: %q", got)
	}
}
