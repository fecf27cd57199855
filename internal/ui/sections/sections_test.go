package sections

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldash/internal/domain"
	"rentaldash/internal/forms"
	"rentaldash/internal/logic"
)

type memoryBackend[T logic.Entity] struct {
	mu      sync.Mutex
	items   []T
	created []any
}

func (b *memoryBackend[T]) Get(ctx context.Context, segments ...string) ([]T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]T(nil), b.items...), nil
}

func (b *memoryBackend[T]) Create(ctx context.Context, body any) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, body)
	var zero T
	return zero, nil
}

func (b *memoryBackend[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	var zero T
	return zero, errors.New("not supported")
}

func (b *memoryBackend[T]) Delete(ctx context.Context, id int64) error { return nil }

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (n *recordingNotifier) Publish(e domain.DomainEvent) {
	if a, ok := e.(domain.AlertEvent); ok {
		n.mu.Lock()
		n.alerts = append(n.alerts, a.Message)
		n.mu.Unlock()
	}
}

type fakeTransitions struct {
	calls []string
}

func (f *fakeTransitions) ActivateRental(ctx context.Context, id int64) (domain.Rental, error) {
	f.calls = append(f.calls, "activar")
	return domain.Rental{ID: id, Status: domain.StatusActive}, nil
}

func (f *fakeTransitions) CompleteRental(ctx context.Context, id int64, returned domain.Date) (domain.Rental, error) {
	f.calls = append(f.calls, "completar "+returned.String())
	return domain.Rental{ID: id, Status: domain.StatusCompleted, ReturnedAt: &returned}, nil
}

func (f *fakeTransitions) CancelRental(ctx context.Context, id int64) (domain.Rental, error) {
	f.calls = append(f.calls, "cancelar")
	return domain.Rental{ID: id, Status: domain.StatusCancelled}, nil
}

type fakeCandidates struct{}

func (fakeCandidates) Clients(context.Context) ([]domain.Client, error) {
	return []domain.Client{{ID: 1, FirstName: "Ana", LastName: "Ruiz", Document: "77"}}, nil
}

func (fakeCandidates) AvailableVehicles(context.Context) ([]domain.Vehicle, error) {
	return []domain.Vehicle{
		{ID: 5, Brand: "Fiat", Model: "Uno", Plate: "AA1", DailyRate: 10, Available: true},
		{ID: 6, Brand: "Ford", Model: "Ka", Plate: "BB2", Available: false},
	}, nil
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newRentals(t *testing.T, items ...domain.Rental) (*Rentals, *fakeTransitions, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	store := logic.NewEntityStore[domain.Rental]("alquileres", RentalNoun, &memoryBackend[domain.Rental]{items: items}, n, nil)
	require.NoError(t, store.FetchAll(context.Background()))
	tr := &fakeTransitions{}
	r := NewRentalsWith(store, tr, fakeCandidates{}, 8, func() domain.Date { return mustDate(t, "2024-06-10") })
	return r, tr, n
}

func TestTransitionsRejectWrongStateLocally(t *testing.T) {
	r, tr, _ := newRentals(t, domain.Rental{ID: 1, Status: domain.StatusActive})
	ctx := context.Background()

	assert.ErrorIs(t, r.Activate(ctx, 1), domain.ErrInvalidTransition)
	assert.ErrorIs(t, r.Cancel(ctx, 1), domain.ErrInvalidTransition)
	assert.Empty(t, tr.calls)
}

func TestCompleteChecksReturnDate(t *testing.T) {
	start := mustDate(t, "2024-06-01")
	r, tr, n := newRentals(t, domain.Rental{ID: 3, Status: domain.StatusActive, StartDate: start})
	ctx := context.Background()

	assert.ErrorIs(t, r.Complete(ctx, 3, mustDate(t, "2024-05-30")), domain.ErrInvalidTransition)
	assert.ErrorIs(t, r.Complete(ctx, 3, mustDate(t, "2024-06-11")), domain.ErrInvalidTransition)
	assert.Empty(t, tr.calls)

	require.NoError(t, r.Complete(ctx, 3, mustDate(t, "2024-06-10")))
	assert.Equal(t, []string{"completar 2024-06-10"}, tr.calls)
	got, ok := r.Store().Find(3)
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Contains(t, n.alerts, "Alquiler completado con éxito")
}

func TestActivateThenCancelIsRejected(t *testing.T) {
	r, tr, _ := newRentals(t, domain.Rental{ID: 2, Status: domain.StatusPending})
	ctx := context.Background()

	require.NoError(t, r.Activate(ctx, 2))
	assert.ErrorIs(t, r.Cancel(ctx, 2), domain.ErrInvalidTransition)
	assert.Equal(t, []string{"activar"}, tr.calls)
}

func TestLoadChoicesKeepsEditedVehicle(t *testing.T) {
	r, _, _ := newRentals(t, domain.Rental{ID: 4, VehicleID: 6, VehicleDetail: "Ford Ka (BB2)", Status: domain.StatusPending})

	choices, err := r.LoadChoices(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, choices.Clients, 1)
	require.Len(t, choices.Vehicles, 1)
	assert.Equal(t, "5", choices.Vehicles[0].Value)

	choices, err = r.LoadChoices(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, choices.Vehicles, 2)
	assert.Equal(t, forms.Choice{Value: "6", Label: "Ford Ka (BB2)"}, choices.Vehicles[1])
}

func TestListRowsAndInvalidSave(t *testing.T) {
	backend := &memoryBackend[domain.Client]{items: []domain.Client{
		{ID: 1, FirstName: "Ana", LastName: "Ruiz", Document: "77", Email: "ana@x.com"},
		{ID: 2, FirstName: "Luis", LastName: "Paz", Document: "88", Email: "luis@x.com"},
	}}
	store := logic.NewEntityStore[domain.Client]("clientes", ClientNoun, backend, nil, nil)
	list := NewList(store, ClientDefinition(), 8)
	ctx := context.Background()
	require.NoError(t, list.FetchAll(ctx))

	assert.Equal(t, []string{"ID", "Nombre", "Documento", "Email", "Teléfono"}, list.Headers())
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, "Ana Ruiz", list.Rows()[0][1])

	list.SetQuery("luis")
	assert.Equal(t, 1, list.Count())
	id, ok := list.IDAt(0)
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	_, err := list.Payload(list.NewForm())
	assert.ErrorIs(t, err, forms.ErrInvalid)
	assert.Empty(t, backend.created)

	f := list.NewForm()
	f.Load(map[string]string{
		"nombre": "Eva", "apellido": "Gil", "documento": "40123456", "email": "eva@example.com",
		"telefono": "555", "fechaNacimiento": "1990-04-12", "direccion": "Calle 1",
	})
	body, err := list.Payload(f)
	require.NoError(t, err)
	require.NoError(t, list.Save(ctx, body, 0))
	require.Len(t, backend.created, 1)
	assert.Equal(t, "Eva", backend.created[0].(domain.ClientForm).FirstName)
}
