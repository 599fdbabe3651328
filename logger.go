package textmesh

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false so slog skips
// building the record at all.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var silent = slog.New(discardHandler{})

// current is read on every log call from the render thread and may be
// replaced from any goroutine.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes log output of textmesh and its sub-packages to l.
// Nothing is logged until SetLogger is called; nil silences logging again.
//
// Levels:
//   - [slog.LevelDebug]: mesh builds, buffer sizes, atlas rasterization
//   - [slog.LevelInfo]: backend lifecycle
//   - [slog.LevelWarn]: buffer reallocation, dropped glyphs, ignored uniforms
//
// Example:
//
//	textmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger. The glyphmap, export and
// backend packages log through it.
func Logger() *slog.Logger {
	return current.Load()
}
