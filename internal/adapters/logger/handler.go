package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

// PrettyHandler renders each record as a single colored line. Attribute keys
// are qualified with the full open group path, the same nesting the JSON
// handler would express structurally.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []string
	groups []string
}

// NewPrettyHandler creates a PrettyHandler writing to w. A nil writer falls
// back to stderr, nil options select the info level.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether records at the given level are emitted.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders the record, its bound attributes, and the record attributes
// as one line.
//
//nolint:gocritic // slog.Handler fixes the Record-by-value signature
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	parts := make([]string, 0, 1+len(h.attrs)+r.NumAttrs())
	parts = append(parts, decorate(r.Level, r.Message))
	parts = append(parts, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, h.formatAttr(attr))
		return true
	})

	line := h.out.String(strings.Join(parts, " ")).Foreground(levelColor(r.Level))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a handler carrying attrs on every line, qualified by the
// groups open at this point.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]string, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, h.formatAttr(attr))
	}
	return &clone
}

// WithGroup opens a group that qualifies every subsequent attribute key. The
// empty name leaves the handler unchanged, as the slog contract asks.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &clone
}

// formatAttr renders one attribute as key=value with the open group path
// prefixed.
func (h *PrettyHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	return key + "=" + attr.Value.String()
}

// decorate prefixes the message with the level marker.
func decorate(level slog.Level, msg string) string {
	switch level {
	case slog.LevelWarn:
		return style.Warning + " " + msg
	case slog.LevelError:
		return style.Cross + " " + msg
	default:
		return msg
	}
}

// levelColor maps a level to its line color.
func levelColor(level slog.Level) termenv.Color {
	switch level {
	case slog.LevelWarn:
		return termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return termenv.RGBColor(string(style.Red))
	default:
		return termenv.RGBColor(string(style.Slate))
	}
}
