// Package sections binds one list pipeline per entity to what the screen
// needs: table columns, detail lines, forms and reports.
package sections

import (
	"context"
	"strconv"

	"rentaldash/internal/domain"
	"rentaldash/internal/forms"
	"rentaldash/internal/logic"
	"rentaldash/internal/reports"
)

// Column is one table column of a section
type Column[T any] struct {
	Title string
	Value func(T) string
}

// Detail is one label/value line of the detail view
type Detail struct {
	Label string
	Value string
}

// Definition configures a List for one entity type
type Definition[T logic.Entity] struct {
	Title        string
	SearchFields func(T) []string
	FilterFields []logic.FilterField
	Columns      []Column[T]
	Details      func(T) []Detail
	NewForm      func() *forms.Form
	Values       func(T) map[string]string
	Payload      func(*forms.Form) (any, error)
	Status       func(T) (domain.RentalStatus, bool)
	ClientID     func(T) int64
}

// Section is the entity-independent view of a List used by the UI and CLI
type Section interface {
	Name() string
	Title() string
	Noun() logic.Noun

	Headers() []string
	Rows() [][]string
	Len() int
	Count() int
	Pager() *logic.Paginator

	Loading() bool
	Loaded() bool
	ErrMessage() string

	Query() string
	SetQuery(q string) (reload bool)
	Filter() *logic.ServerFilter

	Load(ctx context.Context) error
	FetchAll(ctx context.Context) error
	ApplyFilter(ctx context.Context, field, value string) error
	ClearFilter(ctx context.Context) error

	IDAt(i int) (int64, bool)
	Details(i int) []Detail
	StatusAt(i int) (domain.RentalStatus, bool)

	NewForm() *forms.Form
	EditForm(i int) (*forms.Form, int64, bool)
	Payload(f *forms.Form) (any, error)
	Save(ctx context.Context, body any, id int64) error
	Delete(ctx context.Context, id int64) error

	Reports() []reports.Report
	ReportClientID(i int) int64
}

// List is a Section over a concrete entity type
type List[T logic.Entity] struct {
	def  Definition[T]
	pipe *logic.Pipeline[T]
}

// NewList wraps a store in a pipeline configured by def
func NewList[T logic.Entity](store *logic.EntityStore[T], def Definition[T], pageSize int) *List[T] {
	return &List[T]{
		def:  def,
		pipe: logic.NewPipeline(store, def.SearchFields, def.FilterFields, pageSize),
	}
}

func (l *List[T]) Name() string     { return l.pipe.Store().Name() }
func (l *List[T]) Title() string    { return l.def.Title }
func (l *List[T]) Noun() logic.Noun { return l.pipe.Store().Noun() }

// Pipeline exposes the underlying stages
func (l *List[T]) Pipeline() *logic.Pipeline[T] { return l.pipe }

// Store is the backing collection
func (l *List[T]) Store() *logic.EntityStore[T] { return l.pipe.Store() }

func (l *List[T]) Headers() []string {
	out := make([]string, len(l.def.Columns))
	for i, c := range l.def.Columns {
		out[i] = c.Title
	}
	return out
}

// Rows renders the current page
func (l *List[T]) Rows() [][]string {
	page := l.pipe.Page()
	rows := make([][]string, len(page))
	for i, item := range page {
		row := make([]string, len(l.def.Columns))
		for j, c := range l.def.Columns {
			row[j] = c.Value(item)
		}
		rows[i] = row
	}
	return rows
}

// Len is the number of rows on the current page
func (l *List[T]) Len() int { return len(l.pipe.Page()) }

// Count is the number of items across all pages
func (l *List[T]) Count() int { return len(l.pipe.Visible()) }

func (l *List[T]) Pager() *logic.Paginator { return l.pipe.Pager() }

func (l *List[T]) Loading() bool { return l.pipe.Store().Loading() }

// Loaded reports whether a fetch has completed, successfully or not
func (l *List[T]) Loaded() bool {
	s := l.pipe.Store()
	return s.Version() > 0 || s.Err() != nil
}

func (l *List[T]) ErrMessage() string { return l.pipe.Store().ErrMessage() }

func (l *List[T]) Query() string { return l.pipe.Search().Query() }

func (l *List[T]) SetQuery(q string) bool { return l.pipe.SetQuery(q) }

func (l *List[T]) Filter() *logic.ServerFilter { return l.pipe.Filter() }

// Load replays the last fetch
func (l *List[T]) Load(ctx context.Context) error { return l.pipe.Reload(ctx) }

func (l *List[T]) FetchAll(ctx context.Context) error { return l.pipe.Store().FetchAll(ctx) }

func (l *List[T]) ApplyFilter(ctx context.Context, field, value string) error {
	return l.pipe.ApplyFilter(ctx, field, value)
}

func (l *List[T]) ClearFilter(ctx context.Context) error { return l.pipe.ClearFilter(ctx) }

// At returns the item at row i of the current page
func (l *List[T]) At(i int) (T, bool) {
	page := l.pipe.Page()
	if i < 0 || i >= len(page) {
		var zero T
		return zero, false
	}
	return page[i], true
}

func (l *List[T]) IDAt(i int) (int64, bool) {
	item, ok := l.At(i)
	if !ok {
		return 0, false
	}
	return item.Key(), true
}

func (l *List[T]) Details(i int) []Detail {
	item, ok := l.At(i)
	if !ok || l.def.Details == nil {
		return nil
	}
	return l.def.Details(item)
}

func (l *List[T]) StatusAt(i int) (domain.RentalStatus, bool) {
	item, ok := l.At(i)
	if !ok || l.def.Status == nil {
		return "", false
	}
	return l.def.Status(item)
}

func (l *List[T]) NewForm() *forms.Form { return l.def.NewForm() }

// EditForm returns a draft loaded from row i and the record id
func (l *List[T]) EditForm(i int) (*forms.Form, int64, bool) {
	item, ok := l.At(i)
	if !ok {
		return nil, 0, false
	}
	f := l.def.NewForm()
	f.Load(l.def.Values(item))
	return f, item.Key(), true
}

// Payload validates the draft and converts it to a request body. Validation
// failures return forms.ErrInvalid. Call it from the goroutine that owns f.
func (l *List[T]) Payload(f *forms.Form) (any, error) {
	return l.def.Payload(f)
}

// Save creates body, or updates id when non-zero
func (l *List[T]) Save(ctx context.Context, body any, id int64) error {
	var err error
	if id == 0 {
		_, err = l.pipe.Store().Create(ctx, body)
	} else {
		_, err = l.pipe.Store().Update(ctx, id, body)
	}
	return err
}

func (l *List[T]) Delete(ctx context.Context, id int64) error {
	return l.pipe.Store().Delete(ctx, id)
}

func (l *List[T]) Reports() []reports.Report {
	return reports.ForEntity(l.Name())
}

// ReportClientID is the client whose history applies to row i, 0 when none
func (l *List[T]) ReportClientID(i int) int64 {
	item, ok := l.At(i)
	if !ok || l.def.ClientID == nil {
		return 0
	}
	return l.def.ClientID(item)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
