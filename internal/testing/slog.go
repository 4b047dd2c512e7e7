package testing

import (
	"context"
	"log/slog"
	"sync"
)

type (
	// LogRecorder is an slog.Handler that keeps every record it handles, so
	// that tests can inspect what was logged
	LogRecorder struct {
		*recorded
		attrs []slog.Attr
	}

	// LogEntry is a handled record, with its attributes flattened
	LogEntry struct {
		Level   slog.Level
		Message string
		Attrs   map[string]slog.Value
	}

	recorded struct {
		entries []LogEntry
		mu      sync.Mutex
	}
)

// NewLogRecorder returns a LogRecorder that accepts every level
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{recorded: &recorded{}}
}

// Logger returns an slog.Logger that reports to this LogRecorder
func (h *LogRecorder) Logger() *slog.Logger {
	return slog.New(h)
}

// Entries returns a copy of everything recorded so far
func (h *LogRecorder) Entries() []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LogEntry{}, h.entries...)
}

// Messages returns the message of every recorded entry, in order
func (h *LogRecorder) Messages() []string {
	entries := h.Entries()
	res := make([]string, len(entries))
	for i, e := range entries {
		res[i] = e.Message
	}
	return res
}

func (h *LogRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	e := LogEntry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   map[string]slog.Value{},
	}
	for _, a := range h.attrs {
		e.Attrs[a.Key] = a.Value
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	return nil
}

func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogRecorder{
		recorded: h.recorded,
		attrs:    append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *LogRecorder) WithGroup(string) slog.Handler {
	return h
}
