// Package eventlog provides a bounded in-memory sink for JSON log entries as
// written by zerolog, for display in the playground.
package eventlog

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// DefaultCapacity is the number of entries a Writer retains by default.
const DefaultCapacity = 1024

// Entry is a single log entry.
type Entry = map[string]any

// Writer is an in-memory log reader and writer retaining the most recent
// entries.
type Writer struct {
	mtx      sync.Mutex
	entries  []Entry
	capacity int
}

// NewWriter returns a writer retaining up to capacity entries (or
// DefaultCapacity, if capacity is not positive).
func NewWriter(capacity int) *Writer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Writer{capacity: capacity}
}

// Write appends a log entry to the log, dropping the oldest entry if the
// writer is full.
func (w *Writer) Write(p []byte) (int, error) {
	entry := Entry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	if len(w.entries) >= w.capacity {
		copy(w.entries, w.entries[1:])
		w.entries = w.entries[:len(w.entries)-1]
	}
	w.entries = append(w.entries, entry)
	return len(p), nil
}

// Get returns a copy of the retained log, oldest entry first.
func (w *Writer) Get() []Entry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return append([]Entry(nil), w.entries...)
}

// Tail returns a copy of the n most recent entries, oldest first.
func (w *Writer) Tail(n int) []Entry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if n <= 0 {
		return nil
	}
	start := max(0, len(w.entries)-n)
	return append([]Entry(nil), w.entries[start:]...)
}

// Len returns the number of retained entries.
func (w *Writer) Len() int {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return len(w.entries)
}

// Reader allows reading access to a log.
type Reader interface {
	Get() []Entry
	Tail(n int) []Entry
}

// Format renders an entry as a single line of the form
// 'level message key=value ...', with fields sorted by key.
func Format(e Entry) string {
	level, _ := e["level"].(string)
	message, _ := e["message"].(string)
	line := fmt.Sprintf("%-5s %s", level, message)
	for _, k := range slices.Sorted(maps.Keys(e)) {
		switch k {
		case "level", "message", "time", "caller":
			continue
		}
		line += fmt.Sprintf(" %s=%v", k, e[k])
	}
	return line
}
