package logic

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FieldAll is the filter field meaning "no filter"
const FieldAll = "all"

// FilterField is one server-side filter option of an entity
type FilterField struct {
	Name  string   // path segment, e.g. "documento"
	Label string   // shown in the filter bar
	Path  []string // fixed route that takes no value, e.g. ["disponibles"]
}

// NeedsValue reports whether the field requires user input
func (f FilterField) NeedsValue() bool {
	return f.Name != FieldAll && len(f.Path) == 0
}

// Fetcher is the part of a store the filter drives
type Fetcher interface {
	FetchAll(ctx context.Context) error
	FetchFiltered(ctx context.Context, field, value string) error
	FetchPath(ctx context.Context, segments ...string) error
}

// ServerFilter asks the backend for a subset of a collection and remembers
// the last request so it can be replayed
type ServerFilter struct {
	mu     sync.Mutex
	store  Fetcher
	fields []FilterField
	active bool
	field  FilterField
	value  string
}

// NewServerFilter creates a filter over the given fields. An "all" field is
// prepended when missing.
func NewServerFilter(store Fetcher, fields []FilterField) *ServerFilter {
	if len(fields) == 0 || fields[0].Name != FieldAll {
		fields = append([]FilterField{{Name: FieldAll, Label: "Todos"}}, fields...)
	}
	return &ServerFilter{store: store, fields: fields, field: fields[0]}
}

// Fields lists the available filter options, "all" first
func (f *ServerFilter) Fields() []FilterField {
	return append([]FilterField(nil), f.fields...)
}

// Lookup finds a field by name
func (f *ServerFilter) Lookup(name string) (FilterField, bool) {
	for _, field := range f.fields {
		if field.Name == name {
			return field, true
		}
	}
	return FilterField{}, false
}

// Active reports whether the collection currently holds a filtered subset
func (f *ServerFilter) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Field returns the active field, "all" when inactive
func (f *ServerFilter) Field() FilterField {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.field
}

// Value returns the active filter value
func (f *ServerFilter) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Describe renders the active filter as "Label: value"
func (f *ServerFilter) Describe() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.active {
		return ""
	}
	if len(f.field.Path) > 0 {
		return f.field.Label
	}
	return f.field.Label + ": " + f.value
}

// Submit applies field=value. The "all" field, or a blank value for a field
// that needs one, clears the filter.
func (f *ServerFilter) Submit(ctx context.Context, name, value string) error {
	field, ok := f.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown filter field %q", name)
	}
	value = strings.TrimSpace(value)

	if field.Name == FieldAll || (field.NeedsValue() && value == "") {
		return f.Clear(ctx)
	}

	f.mu.Lock()
	f.active = true
	f.field = field
	f.value = value
	if !field.NeedsValue() {
		f.value = ""
	}
	f.mu.Unlock()

	return f.run(ctx, field, value)
}

// Retry replays the last request, filtered or not
func (f *ServerFilter) Retry(ctx context.Context) error {
	f.mu.Lock()
	active, field, value := f.active, f.field, f.value
	f.mu.Unlock()

	if !active {
		return f.store.FetchAll(ctx)
	}
	return f.run(ctx, field, value)
}

// Clear drops the filter and reloads the full collection
func (f *ServerFilter) Clear(ctx context.Context) error {
	f.Reset()
	return f.store.FetchAll(ctx)
}

// Reset drops the filter state without fetching
func (f *ServerFilter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = false
	f.field = f.fields[0]
	f.value = ""
}

func (f *ServerFilter) run(ctx context.Context, field FilterField, value string) error {
	if len(field.Path) > 0 {
		return f.store.FetchPath(ctx, field.Path...)
	}
	return f.store.FetchFiltered(ctx, field.Name, value)
}
