package logic

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"rentaldash/internal/domain"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Get(ctx context.Context, segments ...string) ([]domain.Client, error) {
	args := m.Called(segments)
	items, _ := args.Get(0).([]domain.Client)
	return items, args.Error(1)
}

func (m *mockBackend) Create(ctx context.Context, body any) (domain.Client, error) {
	args := m.Called(body)
	return args.Get(0).(domain.Client), args.Error(1)
}

func (m *mockBackend) Update(ctx context.Context, id int64, body any) (domain.Client, error) {
	args := m.Called(id, body)
	return args.Get(0).(domain.Client), args.Error(1)
}

func (m *mockBackend) Delete(ctx context.Context, id int64) error {
	return m.Called(id).Error(0)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (n *recordingNotifier) Publish(e domain.DomainEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) alerts() []domain.AlertEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []domain.AlertEvent
	for _, e := range n.events {
		if a, ok := e.(domain.AlertEvent); ok {
			out = append(out, a)
		}
	}
	return out
}

type fetchCall struct {
	kind string
	args []string
}

type recordingFetcher struct {
	calls []fetchCall
	err   error
}

func (f *recordingFetcher) FetchAll(ctx context.Context) error {
	f.calls = append(f.calls, fetchCall{kind: "all"})
	return f.err
}

func (f *recordingFetcher) FetchFiltered(ctx context.Context, field, value string) error {
	f.calls = append(f.calls, fetchCall{kind: "filtered", args: []string{field, value}})
	return f.err
}

func (f *recordingFetcher) FetchPath(ctx context.Context, segments ...string) error {
	f.calls = append(f.calls, fetchCall{kind: "path", args: segments})
	return f.err
}

var clientNoun = Noun{Singular: "cliente", Plural: "clientes"}

func makeClients(n int) []domain.Client {
	out := make([]domain.Client, n)
	for i := range out {
		out[i] = domain.Client{
			ID:        int64(i + 1),
			FirstName: fmt.Sprintf("Nombre%02d", i+1),
			LastName:  "Pérez",
			Document:  fmt.Sprintf("DOC-%03d", i+1),
			Email:     fmt.Sprintf("c%02d@mail.com", i+1),
		}
	}
	return out
}

func clientFields(c domain.Client) []string {
	return []string{c.FirstName + " " + c.LastName, c.Document, c.Email}
}
