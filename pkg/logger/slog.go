package logger

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// Slog expone el logger para librerías que sólo aceptan *slog.Logger (ptah).
func (l *Logger) Slog() *slog.Logger {
	return slog.New(&slogHandler{zl: l.zl})
}

// slogHandler reenvía los registros de slog a zerolog.
type slogHandler struct {
	zl    zerolog.Logger
	group string
}

func (h *slogHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return zerologLevel(lvl) >= h.zl.GetLevel()
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	ev := h.zl.WithLevel(zerologLevel(r.Level))
	r.Attrs(func(a slog.Attr) bool {
		ev = ev.Interface(h.key(a.Key), a.Value.Resolve().Any())
		return true
	})
	ev.Msg(r.Message)
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	ctx := h.zl.With()
	for _, a := range attrs {
		ctx = ctx.Interface(h.key(a.Key), a.Value.Resolve().Any())
	}
	return &slogHandler{zl: ctx.Logger(), group: h.group}
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &slogHandler{zl: h.zl, group: h.key(name)}
}

func (h *slogHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	case l >= slog.LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
