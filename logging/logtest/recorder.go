// Package logtest provides a logger that records entries for assertions.
package logtest

import (
	"context"
	"sync"

	"github.com/rgonek/md-wysiwyg/logging"
)

// Entry is one recorded log call.
type Entry struct {
	Level   string
	Message string
	Args    []any
	Fields  map[string]any
}

// Recorder is a logging.Logger that keeps every entry in memory. Child
// loggers created by WithFields share the parent's entries.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]any
}

var (
	_ logging.Logger       = (*Recorder)(nil)
	_ logging.FieldsLogger = (*Recorder)(nil)
)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (r *Recorder) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{Level: level, Message: msg, Args: args, Fields: r.fields})
}

func (r *Recorder) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *Recorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *Recorder) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *Recorder) WithContext(context.Context) logging.Logger {
	return r
}

func (r *Recorder) WithFields(fields map[string]any) logging.Logger {
	merged := make(map[string]any, len(r.fields)+len(fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Recorder{mu: r.mu, entries: r.entries, fields: merged}
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), (*r.entries)...)
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	entries := r.Entries()
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Message
	}
	return out
}

// Count returns how many entries carry msg.
func (r *Recorder) Count(msg string) int {
	count := 0
	for _, entry := range r.Entries() {
		if entry.Message == msg {
			count++
		}
	}
	return count
}
