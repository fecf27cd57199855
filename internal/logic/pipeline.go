package logic

import (
	"context"
)

// Pipeline composes a store with its local search, server filter and
// paginator: store -> (search | filter) -> paginator. Search and server
// filtering are never active at the same time.
type Pipeline[T Entity] struct {
	store  *EntityStore[T]
	search *Search[T]
	filter *ServerFilter
	pager  *Paginator
}

// NewPipeline wires the list stages for one entity type
func NewPipeline[T Entity](store *EntityStore[T], searchFields func(T) []string, filterFields []FilterField, pageSize int) *Pipeline[T] {
	return &Pipeline[T]{
		store:  store,
		search: NewSearch(searchFields),
		filter: NewServerFilter(store, filterFields),
		pager:  NewPaginator(pageSize),
	}
}

func (p *Pipeline[T]) Store() *EntityStore[T] { return p.store }
func (p *Pipeline[T]) Search() *Search[T]     { return p.search }
func (p *Pipeline[T]) Filter() *ServerFilter  { return p.filter }
func (p *Pipeline[T]) Pager() *Paginator      { return p.pager }

// Visible is the authoritative collection: the store's items with the search applied
func (p *Pipeline[T]) Visible() []T {
	return p.search.Apply(p.store.Items())
}

// Page returns the visible items on the current page, clamping the page first
func (p *Pipeline[T]) Page() []T {
	return Paginate(p.pager, p.Visible())
}

// SetQuery updates the local search. When it activates a search while a
// server filter holds a subset, the filter state is dropped and the caller
// must reload the full collection; the return value reports that case.
func (p *Pipeline[T]) SetQuery(q string) (reload bool) {
	p.search.SetQuery(q)
	if p.search.Active() && p.filter.Active() {
		p.filter.Reset()
		return true
	}
	return false
}

// ApplyFilter clears the local search and submits a server filter
func (p *Pipeline[T]) ApplyFilter(ctx context.Context, field, value string) error {
	p.search.Clear()
	return p.filter.Submit(ctx, field, value)
}

// ClearFilter drops the server filter and reloads everything
func (p *Pipeline[T]) ClearFilter(ctx context.Context) error {
	return p.filter.Clear(ctx)
}

// Reload replays the last fetch, filtered or not
func (p *Pipeline[T]) Reload(ctx context.Context) error {
	return p.filter.Retry(ctx)
}
