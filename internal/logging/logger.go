// Package logging provides leveled logging and conversion tracing for chromaroot.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A ConversionLog for JSONL conversion traces (.chromaroot/conversions.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nvandessel/chromaroot/internal/constants"
)

// LevelTrace is a custom slog level below Debug for per-channel detail.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Conversion is one traced color computation.
type Conversion struct {
	Time   time.Time `json:"time"`
	Op     string    `json:"op"`
	Input  string    `json:"input"`
	Output string    `json:"output,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// ConversionLog appends Conversion records to a JSONL file.
// It is safe for concurrent use. A nil ConversionLog is safe to use;
// all methods are no-ops on nil receiver.
type ConversionLog struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// NewConversionLog opens dir/conversions.jsonl for append.
// At "info" level (the default) it returns nil and creates nothing.
// Returns nil if the file cannot be opened.
func NewConversionLog(dir string, level string) *ConversionLog {
	if ParseLevel(level) == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, constants.ConversionLogName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &ConversionLog{file: f, now: time.Now}
}

// Record writes one conversion. err may be nil.
func (cl *ConversionLog) Record(op, input, output string, err error) {
	if cl == nil || cl.file == nil {
		return
	}

	entry := Conversion{
		Time:   cl.now().UTC(),
		Op:     op,
		Input:  input,
		Output: output,
	}
	if err != nil {
		entry.Error = err.Error()
		entry.Output = ""
	}

	data, mErr := json.Marshal(entry)
	if mErr != nil {
		return
	}
	data = append(data, '\n')

	cl.mu.Lock()
	defer cl.mu.Unlock()
	_, _ = cl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (cl *ConversionLog) Close() {
	if cl == nil || cl.file == nil {
		return
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.file.Close()
	cl.file = nil
}
