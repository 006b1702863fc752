package logging

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
)

// journalIdentifier tags every journal entry.
const journalIdentifier = "mediacaps"

// JournalHandler writes records to the systemd journal. Attribute keys are
// upper-cased and group names are joined with underscores, so a "platform"
// attribute under the "session" group becomes SESSION_PLATFORM.
type JournalHandler struct {
	level  slog.Leveler
	prefix string
	fields map[string]string
}

// NewJournalHandler creates a journal handler at the given level.
func NewJournalHandler(level slog.Leveler) *JournalHandler {
	return &JournalHandler{level: level, fields: map[string]string{}}
}

// Enabled implements slog.Handler.
func (h *JournalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *JournalHandler) Handle(_ context.Context, r slog.Record) error {
	vars := journalFields(h.fields, h.prefix, r)
	return journal.Send(r.Message, journalPriority(r.Level), vars)
}

// WithAttrs implements slog.Handler.
func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make(map[string]string, len(h.fields)+len(attrs))
	for k, v := range h.fields {
		fields[k] = v
	}
	for _, a := range attrs {
		flattenAttr(fields, h.prefix, a)
	}
	return &JournalHandler{level: h.level, prefix: h.prefix, fields: fields}
}

// WithGroup implements slog.Handler.
func (h *JournalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &JournalHandler{level: h.level, prefix: h.prefix + fieldKey(name) + "_", fields: h.fields}
}

// journalFields builds the journal variables for one record.
func journalFields(base map[string]string, prefix string, r slog.Record) map[string]string {
	vars := make(map[string]string, len(base)+r.NumAttrs()+1)
	for k, v := range base {
		vars[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		flattenAttr(vars, prefix, a)
		return true
	})
	vars["SYSLOG_IDENTIFIER"] = journalIdentifier
	return vars
}

func flattenAttr(vars map[string]string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := prefix + fieldKey(a.Key)

	switch a.Value.Kind() {
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			flattenAttr(vars, key+"_", ga)
		}
	case slog.KindInt64:
		vars[key] = strconv.FormatInt(a.Value.Int64(), 10)
	case slog.KindUint64:
		vars[key] = strconv.FormatUint(a.Value.Uint64(), 10)
	case slog.KindFloat64:
		vars[key] = strconv.FormatFloat(a.Value.Float64(), 'f', -1, 64)
	case slog.KindBool:
		vars[key] = strconv.FormatBool(a.Value.Bool())
	case slog.KindTime:
		vars[key] = a.Value.Time().Format(time.RFC3339Nano)
	default:
		vars[key] = a.Value.String()
	}
}

// fieldKey maps an attribute key onto the journal field alphabet.
func fieldKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}

func journalPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// IsJournalAvailable reports whether the systemd journal socket is reachable.
func IsJournalAvailable() bool {
	return journal.Enabled()
}

// fanout passes each record to every handler that accepts its level.
type fanout []slog.Handler

// NewMultiHandler combines handlers into one.
func NewMultiHandler(handlers ...slog.Handler) slog.Handler {
	return fanout(handlers)
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}
