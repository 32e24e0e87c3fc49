// Package logger implements ports.Logger over log/slog, rendering through
// the termenv pretty handler by default and a JSON handler on demand.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/kiln/internal/core/ports"
)

// messager matches the Message() method of zerr.Error: one link's own text
// without the rest of the chain. Errors without it render through Error().
type messager interface {
	Message() string
}

// metadataer matches the Metadata() method of zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain prepared for formatting.
type ErrorEntry struct {
	// Message is the link's own message, without the rest of the chain.
	Message string
	// Metadata holds the link's structured fields. It is nil for standard
	// errors that carry none.
	Metadata map[string]any
}

// Logger is the process logger. The mutex guards the handler swaps that
// SetJSON and SetOutput perform mid-run.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New returns a pretty-mode Logger writing to stderr.
func New() ports.Logger {
	handler := NewPrettyHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{
		logger: slog.New(handler),
		output: os.Stderr,
	}
}

// SetOutput repoints the logger at w, keeping the current format. A nil w
// falls back to stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = NewPrettyHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	l.logger = slog.New(handler)
}

// SetJSON switches between the JSON and pretty handlers, keeping the current
// output destination.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable

	w := l.output
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	if enable {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = NewPrettyHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	l.logger = slog.New(handler)
}

// Info reports routine progress.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn reports a degraded but continuing condition.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error renders err's chain. A nil err logs nothing.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	entries := collectErrorEntries(err)
	if len(entries) == 0 {
		return
	}

	l.logger.Error(formatErrorEntries(entries))
}

// collectErrorEntries traverses the error chain and extracts one entry per
// link. zerr errors contribute their own message and metadata; the first
// standard error contributes its full Error() string and stops the walk.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)

		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the chain hierarchically: the main error first,
// then its causes under a "Caused by:" header. Each link's metadata follows
// the link, sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			// The head sits on the "Error: " line; continuation lines and
			// metadata align under it.
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = append(lines, metadataLines(entry.Metadata, "       ")...)
			continue
		}

		if i == 1 {
			// The first cause opens the block.
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, "    → "+msgLines[0])
		// Continuation lines and metadata align under the arrow.
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = append(lines, metadataLines(entry.Metadata, "      ")...)
	}

	return strings.Join(lines, "\n")
}

// metadataLines renders metadata fields as indented "key: value" lines in
// alphabetical key order.
func metadataLines(metadata map[string]any, indent string) []string {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, metadata[k]))
	}
	return lines
}
