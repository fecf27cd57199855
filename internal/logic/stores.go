package logic

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rentaldash/internal/api"
	"rentaldash/internal/domain"
)

// Noun holds the Spanish names of an entity for user-facing messages
type Noun struct {
	Singular string // "cliente"
	Plural   string // "clientes"
}

// EntityStore caches one backend collection: the result of the last fetch,
// patched in place by successful mutations. Calls are serialized so results
// land in issue order.
type EntityStore[T Entity] struct {
	name     string
	noun     Noun
	backend  Backend[T]
	notifier Notifier
	log      *zap.Logger
	sem      *semaphore.Weighted

	mu      sync.RWMutex
	items   []T
	err     error
	errMsg  string
	pending int
	version uint64
}

// NewEntityStore creates a store for the named collection
func NewEntityStore[T Entity](name string, noun Noun, backend Backend[T], notifier Notifier, log *zap.Logger) *EntityStore[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &EntityStore[T]{
		name:     name,
		noun:     noun,
		backend:  backend,
		notifier: notifier,
		log:      log.Named("store").With(zap.String("entity", name)),
		sem:      semaphore.NewWeighted(1),
		items:    []T{},
	}
}

// Name returns the collection name
func (s *EntityStore[T]) Name() string { return s.name }

// Noun returns the entity's display names
func (s *EntityStore[T]) Noun() Noun { return s.noun }

// Items returns a copy of the current collection
func (s *EntityStore[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the cached record with the given id
func (s *EntityStore[T]) Find(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Loading reports whether any call is running or queued
func (s *EntityStore[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// Err returns the failure of the last fetch, nil after a successful one
func (s *EntityStore[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ErrMessage is the user-facing text of Err
func (s *EntityStore[T]) ErrMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Version increases every time the collection changes
func (s *EntityStore[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// FetchAll replaces the collection with the full backend list
func (s *EntityStore[T]) FetchAll(ctx context.Context) error {
	return s.fetch(ctx, OpFetch)
}

// FetchFiltered replaces the collection with /{field}/{value}. An empty value
// or the "all" field fetches everything.
func (s *EntityStore[T]) FetchFiltered(ctx context.Context, field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" || field == FieldAll {
		return s.FetchAll(ctx)
	}
	return s.fetch(ctx, OpFilter, field, value)
}

// FetchPath replaces the collection with a fixed sub-collection such as "disponibles"
func (s *EntityStore[T]) FetchPath(ctx context.Context, segments ...string) error {
	return s.fetch(ctx, OpFilter, segments...)
}

func (s *EntityStore[T]) fetch(ctx context.Context, op Operation, segments ...string) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	items, err := s.backend.Get(ctx, segments...)
	if err != nil {
		msg := api.Message(err)
		if op == OpFilter {
			msg = fmt.Sprintf("Error al filtrar los %s: %s", s.noun.Plural, msg)
		}
		s.log.Warn("fetch failed", zap.Strings("segments", segments), zap.Error(err))

		s.mu.Lock()
		s.err = err
		s.errMsg = msg
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.items = items
	s.err = nil
	s.errMsg = ""
	s.version++
	s.mu.Unlock()

	s.log.Debug("collection loaded", zap.Int("count", len(items)))
	s.publish(domain.EntityChangedEvent{Entity: s.name, Kind: domain.ChangeLoaded})
	return nil
}

// Create posts body and appends the stored record
func (s *EntityStore[T]) Create(ctx context.Context, body any) (T, error) {
	return s.mutate(ctx, OpCreate, func(ctx context.Context) (T, error) {
		return s.backend.Create(ctx, body)
	})
}

// Update puts body for id and replaces the cached record
func (s *EntityStore[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	return s.mutate(ctx, OpUpdate, func(ctx context.Context) (T, error) {
		return s.backend.Update(ctx, id, body)
	})
}

// Replace runs a call returning an updated record, such as a state transition,
// and replaces the cached record by id
func (s *EntityStore[T]) Replace(ctx context.Context, op Operation, call func(context.Context) (T, error)) (T, error) {
	return s.mutate(ctx, op, call)
}

// Delete removes id from the backend and from the collection
func (s *EntityStore[T]) Delete(ctx context.Context, id int64) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := s.backend.Delete(ctx, id); err != nil {
		s.fail(OpDelete, err)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.Key() != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.version++
	s.mu.Unlock()

	s.succeed(OpDelete, id)
	return nil
}

func (s *EntityStore[T]) mutate(ctx context.Context, op Operation, call func(context.Context) (T, error)) (T, error) {
	var zero T
	release, err := s.acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer release()

	record, err := call(ctx)
	if err != nil {
		s.fail(op, err)
		return zero, err
	}

	s.mu.Lock()
	if op == OpCreate {
		s.items = append(s.items[:len(s.items):len(s.items)], record)
	} else {
		next := make([]T, len(s.items))
		copy(next, s.items)
		for i := range next {
			if next[i].Key() == record.Key() {
				next[i] = record
			}
		}
		s.items = next
	}
	s.version++
	s.mu.Unlock()

	s.succeed(op, record.Key())
	return record, nil
}

// acquire waits for this store's turn. Loading is true from the moment a call is queued.
func (s *EntityStore[T]) acquire(ctx context.Context) (func(), error) {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()

	done := func() {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		done()
		return nil, err
	}
	return func() {
		s.sem.Release(1)
		done()
	}, nil
}

func (s *EntityStore[T]) succeed(op Operation, id int64) {
	title := cases.Title(language.Spanish).String(s.noun.Singular)
	s.log.Info("mutation succeeded", zap.String("op", string(op)), zap.Int64("id", id))
	s.publish(domain.AlertEvent{
		Level:   domain.AlertSuccess,
		Message: fmt.Sprintf("%s %s con éxito", title, op.Participle()),
	})
	s.publish(domain.EntityChangedEvent{Entity: s.name, Kind: changeKind(op), ID: id})
}

func (s *EntityStore[T]) fail(op Operation, err error) {
	s.log.Warn("mutation failed", zap.String("op", string(op)), zap.Error(err))
	s.publish(domain.AlertEvent{
		Level:   domain.AlertError,
		Message: FailureMessage(op, s.noun, err),
	})
}

func (s *EntityStore[T]) publish(e domain.DomainEvent) {
	if s.notifier != nil {
		s.notifier.Publish(e)
	}
}

// FailureMessage formats "Error al <verbo> el <entidad>: <detalle>"
func FailureMessage(op Operation, noun Noun, err error) string {
	return fmt.Sprintf("Error al %s el %s: %s", op.Verb(), noun.Singular, api.Message(err))
}

func changeKind(op Operation) domain.ChangeKind {
	switch op {
	case OpCreate:
		return domain.ChangeCreated
	case OpDelete:
		return domain.ChangeDeleted
	default:
		return domain.ChangeUpdated
	}
}
