package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldash/internal/domain"
)

type fakeSource struct {
	historyFor int64
	failIncome bool
}

func (f *fakeSource) TopClients(context.Context) ([]domain.Client, error) {
	n := 7
	return []domain.Client{{ID: 1, FirstName: "Ana", LastName: "García", Document: "123", Email: "ana@x.com", RentalCount: &n}}, nil
}

func (f *fakeSource) IdleVehicles(context.Context) ([]domain.Vehicle, error) {
	return []domain.Vehicle{{ID: 3, Brand: "Fiat", Model: "Uno", Plate: "AB123", Type: domain.VehicleHatchback, DailyRate: 20}}, nil
}

func (f *fakeSource) AverageDurationByType(context.Context) ([]domain.VehicleTypeAverage, error) {
	return []domain.VehicleTypeAverage{{VehicleType: domain.VehicleSUV, AverageDays: 4.25}}, nil
}

func (f *fakeSource) OverdueRentals(context.Context) ([]domain.Rental, error) {
	return []domain.Rental{{ID: 9, ClientName: "Ana García", Status: domain.StatusActive, TotalCost: 150}}, nil
}

func (f *fakeSource) MonthlyIncome(context.Context) ([]domain.MonthlyIncome, error) {
	if f.failIncome {
		return nil, errors.New("boom")
	}
	return []domain.MonthlyIncome{{Year: 2024, Month: 3, VehicleType: "SEDAN", Total: 1234.5}}, nil
}

func (f *fakeSource) ClientHistory(_ context.Context, id int64) ([]domain.Rental, error) {
	f.historyFor = id
	return []domain.Rental{{ID: 2, ClientID: id, Status: domain.StatusCompleted}}, nil
}

func (f *fakeSource) Rentals(context.Context) ([]domain.Rental, error) {
	day := func(s string) domain.Date {
		d, _ := domain.ParseDate(s)
		return d
	}
	return []domain.Rental{
		{ID: 4, VehicleDetail: "Ford Ranger", ClientName: "Luis Paz", StartDate: day("2024-06-02"), EndDate: day("2024-06-04"), Status: domain.StatusPending},
		{ID: 2, VehicleDetail: "Fiat Uno", ClientName: "Ana García", StartDate: day("2024-05-20"), EndDate: day("2024-05-20"), Status: domain.StatusCompleted},
		{ID: 3, VehicleDetail: "Fiat Cronos", ClientName: "Ana García", StartDate: day("2024-05-28"), EndDate: day("2024-06-01"), Status: domain.StatusActive},
	}, nil
}

func TestRunFormatsRows(t *testing.T) {
	src := &fakeSource{}

	r, ok := Lookup("monthly-income")
	require.True(t, ok)
	table, err := r.Run(context.Background(), src, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mes", "Tipo", "Ingresos"}, table.Headers)
	assert.Equal(t, [][]string{{"2024-03", "SEDAN", "$1234.50"}}, table.Rows)

	r, _ = Lookup("top-clients")
	table, err = r.Run(context.Background(), src, 0)
	require.NoError(t, err)
	assert.Equal(t, "7", table.Rows[0][4])
}

func TestAgendaGroupsByMonth(t *testing.T) {
	r, ok := Lookup("rental-agenda")
	require.True(t, ok)

	table, err := r.Run(context.Background(), &fakeSource{}, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"2024-05", "2024-05-20", "2024-05-20", "1", "Fiat Uno", "Ana García", "Completado"},
		{"", "2024-05-28", "2024-06-01", "5", "Fiat Cronos", "Ana García", "Activo"},
		{"2024-06", "2024-06-02", "2024-06-04", "3", "Ford Ranger", "Luis Paz", "Pendiente"},
	}, table.Rows)
}

func TestClientHistoryNeedsClient(t *testing.T) {
	src := &fakeSource{}
	r, _ := Lookup("client-history")

	_, err := r.Run(context.Background(), src, 0)
	assert.Error(t, err)

	table, err := r.Run(context.Background(), src, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), src.historyFor)
	assert.Equal(t, "Historial de alquileres del cliente #42", table.Title)
	assert.Equal(t, "Completado", table.Rows[0][5])
}

func TestForEntity(t *testing.T) {
	names := func(list []Report) []string {
		var out []string
		for _, r := range list {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"top-clients", "client-history"}, names(ForEntity("clientes")))
	assert.Equal(t, []string{"idle-vehicles", "average-duration"}, names(ForEntity("vehiculos")))
	assert.Equal(t, []string{"overdue-rentals", "monthly-income", "rental-agenda", "client-history"}, names(ForEntity("alquileres")))
}

func TestRunAllKeepsOrderAndErrors(t *testing.T) {
	src := &fakeSource{failIncome: true}

	results := RunAll(context.Background(), src, ForEntity("alquileres"), 0)

	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "Alquileres vencidos", results[0].Table.Title)
	assert.Error(t, results[1].Err)
	assert.Len(t, results[2].Table.Rows, 3)
	// skipped without a client id
	assert.NoError(t, results[3].Err)
	assert.Empty(t, results[3].Table.Rows)
}
