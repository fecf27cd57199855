package logic

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrorEntry is one remembered failure
type ErrorEntry struct {
	ID        uuid.UUID
	Operation Operation
	Message   string
	At        time.Time
}

// ErrorHistory keeps the most recent distinct failure messages, newest first
type ErrorHistory struct {
	mu       sync.Mutex
	capacity int
	entries  []ErrorEntry
	now      func() time.Time
}

// HistoryOption configures an ErrorHistory
type HistoryOption func(*ErrorHistory)

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) HistoryOption {
	return func(h *ErrorHistory) { h.now = now }
}

// NewErrorHistory creates a history holding at most capacity entries
func NewErrorHistory(capacity int, opts ...HistoryOption) *ErrorHistory {
	h := &ErrorHistory{capacity: max(1, capacity), now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Add records msg unless it is blank or already present. The oldest entry is
// evicted once the history is full.
func (h *ErrorHistory) Add(op Operation, msg string) (ErrorEntry, bool) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ErrorEntry{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if e.Message == msg {
			return e, false
		}
	}

	entry := ErrorEntry{ID: uuid.New(), Operation: op, Message: msg, At: h.now()}
	h.entries = append([]ErrorEntry{entry}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
	return entry, true
}

// Entries returns a copy of the history, newest first
func (h *ErrorHistory) Entries() []ErrorEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ErrorEntry(nil), h.entries...)
}

// Len returns the number of entries
func (h *ErrorHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Dismiss removes a single entry
func (h *ErrorHistory) Dismiss(id uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, e := range h.entries {
		if e.ID == id {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every entry
func (h *ErrorHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
