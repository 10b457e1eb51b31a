package logging

import (
	"context"
	"log/slog"
)

// prettyHandler fronts the charm logger, which cannot replace attributes and
// stops at debug. It applies the redaction hook itself and prints trace
// records at debug once they pass minLevel.
type prettyHandler struct {
	next        slog.Handler
	minLevel    slog.Level
	replaceAttr func([]string, slog.Attr) slog.Attr
	groups      []string
}

func newPrettyHandler(next slog.Handler, minLevel slog.Level, replaceAttr func([]string, slog.Attr) slog.Attr) *prettyHandler {
	return &prettyHandler{next: next, minLevel: minLevel, replaceAttr: replaceAttr}
}

func (h *prettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.minLevel && h.next.Enabled(ctx, max(level, slog.LevelDebug))
}

func (h *prettyHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler signature
	out := slog.NewRecord(r.Time, max(r.Level, slog.LevelDebug), r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replaceAttr(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.replaceAttr(h.groups, a)
	}

	clone := *h
	clone.next = h.next.WithAttrs(masked)

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.next = h.next.WithGroup(name)
	clone.groups = append(append([]string(nil), h.groups...), name)

	return &clone
}
