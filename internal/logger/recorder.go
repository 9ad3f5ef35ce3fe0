package logger

import (
	"sync"

	"github.com/flexgp/flexgp/types"
)

// Entry is one captured log call.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// Recorder captures log calls in memory for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Compile-time assertion that Recorder implements Logger.
var _ types.Logger = (*Recorder)(nil)

// NewRecorder creates an empty recording logger.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Debug records a debug-level entry.
func (r *Recorder) Debug(msg string, keysAndValues ...any) { r.add("DEBUG", msg, keysAndValues) }

// Info records an info-level entry.
func (r *Recorder) Info(msg string, keysAndValues ...any) { r.add("INFO", msg, keysAndValues) }

// Warn records a warn-level entry.
func (r *Recorder) Warn(msg string, keysAndValues ...any) { r.add("WARN", msg, keysAndValues) }

// Error records an error-level entry.
func (r *Recorder) Error(msg string, keysAndValues ...any) { r.add("ERROR", msg, keysAndValues) }

// Fatal records a fatal-level entry. It does not exit the process.
func (r *Recorder) Fatal(msg string, keysAndValues ...any) { r.add("FATAL", msg, keysAndValues) }

// Entries returns a copy of the captured entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Entry(nil), r.entries...)
}

// Messages returns the messages logged at level.
func (r *Recorder) Messages(level string) []string {
	var msgs []string
	for _, e := range r.Entries() {
		if e.Level == level {
			msgs = append(msgs, e.Msg)
		}
	}

	return msgs
}

func (r *Recorder) add(level, msg string, keysAndValues []any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: keysAndValues})
}
