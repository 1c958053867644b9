package log

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/reqctx"
)

const redacted = "[REDACTED]"

// sensitiveKeys never reach the output with their value. Matching is on the
// attribute key, case-insensitively.
var sensitiveKeys = map[string]struct{}{
	"otp":              {},
	"code":             {},
	"password":         {},
	"new_password":     {},
	"confirm_password": {},
	"token":            {},
}

// ContextHandler wraps an slog.Handler. It copies request_id and user_id from
// the record's context onto every record and masks credential attributes.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redact(a))
		return true
	})

	if id := reqctx.RequestID(ctx); id != "" {
		out.AddAttrs(slog.String("request_id", id))
	}
	if id, ok := reqctx.UserID(ctx); ok {
		out.AddAttrs(slog.Uint64("user_id", uint64(id)))
	}
	return h.inner.Handle(ctx, out)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = redact(a)
	}
	return &ContextHandler{inner: h.inner.WithAttrs(masked)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}

func redact(a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redacted)
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]any, len(group))
		for i, g := range group {
			masked[i] = redact(g)
		}
		return slog.Group(a.Key, masked...)
	}
	return a
}
