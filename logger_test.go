package textmesh

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestDiscardHandler(t *testing.T) {
	h := slog.Handler(discardHandler{})
	if h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(LevelError) = true, want false")
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("quads", 1)}).(discardHandler); !ok {
		t.Error("WithAttrs() did not return a discardHandler")
	}
	if _, ok := h.WithGroup("mesh").(discardHandler); !ok {
		t.Error("WithGroup() did not return a discardHandler")
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger() != silent {
		t.Skip("another test replaced the logger")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestMeshBuildLogging(t *testing.T) {
	tests := []struct {
		level  slog.Level
		logged bool
	}{
		{slog.LevelDebug, true},
		{slog.LevelWarn, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf := captureLogs(t, tt.level)
			if _, err := NewStatic(newRecordingContext(), newTestGlyphMap(), Center, "hi"); err != nil {
				t.Fatalf("NewStatic() error = %v", err)
			}
			if got := strings.Contains(buf.String(), "mesh built"); got != tt.logged {
				t.Errorf("mesh build logged = %v, want %v; output: %s", got, tt.logged, buf.String())
			}
		})
	}
}

func TestSetLoggerNil(t *testing.T) {
	captureLogs(t, slog.LevelDebug)
	SetLogger(nil)
	if Logger() != silent {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
