package logic

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Search filters a loaded collection in memory by a case-insensitive
// substring match over a fixed set of fields. It never touches the network.
type Search[T any] struct {
	fields func(T) []string

	mu    sync.RWMutex
	query string
}

// NewSearch creates a search over the strings returned by fields
func NewSearch[T any](fields func(T) []string) *Search[T] {
	return &Search[T]{fields: fields}
}

// SetQuery replaces the search term
func (s *Search[T]) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
}

// Query returns the raw search term
func (s *Search[T]) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Active reports whether the term contains anything but whitespace
func (s *Search[T]) Active() bool { return strings.TrimSpace(s.Query()) != "" }

// Clear empties the search term
func (s *Search[T]) Clear() { s.SetQuery("") }

// Apply returns the items matching the current term, or items unchanged when
// the term is blank
func (s *Search[T]) Apply(items []T) []T {
	q := s.Query()
	if strings.TrimSpace(q) == "" {
		return items
	}
	return Match(items, q, s.fields)
}

// Match keeps the items whose fields contain q, ignoring case
func Match[T any](items []T, q string, fields func(T) []string) []T {
	lower := cases.Lower(language.Spanish)
	needle := lower.String(q)

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(lower.String(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
