package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	slate  = lipgloss.Color("#667085")
	red    = lipgloss.Color("#D93025")
	yellow = lipgloss.Color("#F59E0B")
)

const (
	crossIcon   = "✗"
	warningIcon = "!"
	debugIcon   = "·"
)

// colorProfile returns Ascii when NO_COLOR is set and the terminal's profile
// otherwise.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// PrettyHandler is a slog.Handler producing human-readable, colored lines.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   termenv.NewOutput(w, termenv.WithProfile(colorProfile()), termenv.WithTTY(true)),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record as one styled line. Errors and warnings get an
// icon, debug lines a dot; attributes follow the message as key=value.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	color := slate

	switch {
	case r.Level >= slog.LevelError:
		msg = crossIcon + " " + msg
		color = red
	case r.Level >= slog.LevelWarn:
		msg = warningIcon + " " + msg
		color = yellow
	case r.Level < slog.LevelInfo:
		msg = debugIcon + " " + msg
	}

	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrParts = append(attrParts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, formatAttr(h.group, attr))
		return true
	})
	if len(attrParts) > 0 {
		msg += " " + strings.Join(attrParts, " ")
	}

	styled := h.out.String(msg).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append(make([]slog.Attr, 0, len(h.attrs)+len(attrs)), h.attrs...), attrs...)
	return &next
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = name
	return &next
}

// formatAttr formats a single attribute, prefixing the key with the group.
// Values holding blanks are quoted so paths with spaces stay readable.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	value := attr.Value.String()
	if strings.ContainsAny(value, " \t\n\"") {
		value = strconv.Quote(value)
	}
	return key + "=" + value
}
