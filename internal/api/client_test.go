package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldash/internal/domain"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

type callLog struct {
	mu    sync.Mutex
	calls []recorded
}

func (l *callLog) all() []recorded {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recorded(nil), l.calls...)
}

func newTestServer(t *testing.T, status int, response string) (*Client, *callLog) {
	t.Helper()
	log := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		log.mu.Lock()
		log.calls = append(log.calls, recorded{r.Method, r.URL.EscapedPath(), r.URL.RawQuery, string(body)})
		log.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second, nil), log
}

func TestListDecodesCollection(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `[{"id":1,"nombre":"Ana","apellido":"Ruiz"},{"id":2,"nombre":"Luis"}]`)

	clients, err := c.ClientsResource().List(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana Ruiz", clients[0].FullName())
	assert.Equal(t, []recorded{{http.MethodGet, "/api/clientes", "", ""}}, calls.all())
}

func TestListByWrapsSingleRecord(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"id":5,"marca":"Toyota","matricula":"ABC 123"}`)

	vehicles, err := c.VehiclesResource().ListBy(context.Background(), "matricula", "ABC 123")
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, int64(5), vehicles[0].ID)
	assert.Equal(t, "/api/vehiculos/matricula/ABC%20123", calls.all()[0].path)
}

func TestListByNullIsEmpty(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `null`)

	rentals, err := c.RentalsResource().ListBy(context.Background(), "estado", "ACTIVO")
	require.NoError(t, err)
	assert.Empty(t, rentals)
}

func TestMutationsUseExpectedVerbs(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"id":9,"nombre":"Eva"}`)
	ctx := context.Background()
	res := c.ClientsResource()

	created, err := res.Create(ctx, domain.ClientForm{FirstName: "Eva"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	_, err = res.Update(ctx, 9, domain.ClientForm{FirstName: "Eva"})
	require.NoError(t, err)
	require.NoError(t, res.Delete(ctx, 9))

	require.Len(t, calls.all(), 3)
	assert.Equal(t, http.MethodPost, calls.all()[0].method)
	assert.Equal(t, "/api/clientes", calls.all()[0].path)
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls.all()[0].body), &sent))
	assert.Equal(t, "Eva", sent["nombre"])

	assert.Equal(t, http.MethodPut, calls.all()[1].method)
	assert.Equal(t, "/api/clientes/9", calls.all()[1].path)
	assert.Equal(t, http.MethodDelete, calls.all()[2].method)
	assert.Equal(t, "/api/clientes/9", calls.all()[2].path)
}

func TestRentalTransitions(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"id":3,"estado":"COMPLETADO","fechaDevolucion":"2024-06-02"}`)
	ctx := context.Background()

	_, err := c.ActivateRental(ctx, 3)
	require.NoError(t, err)
	returned, _ := domain.ParseDate("2024-06-02")
	done, err := c.CompleteRental(ctx, 3, returned)
	require.NoError(t, err)
	require.NotNil(t, done.ReturnedAt)
	assert.Equal(t, "2024-06-02", done.ReturnedAt.String())
	_, err = c.CancelRental(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, recorded{http.MethodPatch, "/api/alquileres/3/activar", "", ""}, calls.all()[0])
	assert.Equal(t, recorded{http.MethodPatch, "/api/alquileres/3/completar", "fechaDevolucion=2024-06-02", ""}, calls.all()[1])
	assert.Equal(t, recorded{http.MethodPatch, "/api/alquileres/3/cancelar", "", ""}, calls.all()[2])
}

func TestReportEndpoints(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `[]`)
	ctx := context.Background()

	_, err := c.TopClients(ctx)
	require.NoError(t, err)
	_, err = c.IdleVehicles(ctx)
	require.NoError(t, err)
	_, err = c.AverageDurationByType(ctx)
	require.NoError(t, err)
	_, err = c.OverdueRentals(ctx)
	require.NoError(t, err)
	_, err = c.MonthlyIncome(ctx)
	require.NoError(t, err)
	_, err = c.ClientHistory(ctx, 4)
	require.NoError(t, err)
	_, err = c.Rentals(ctx)
	require.NoError(t, err)
	_, err = c.AvailableVehicles(ctx)
	require.NoError(t, err)

	var paths []string
	for _, call := range calls.all() {
		paths = append(paths, call.path)
	}
	assert.Equal(t, []string{
		"/api/clientes/mas-alquileres",
		"/api/vehiculos/sin-alquileres-ultimos-30-dias",
		"/api/vehiculos/promedio-duracion-por-tipo",
		"/api/alquileres/vencidos",
		"/api/alquileres/ingresos-por-mes-y-tipo-vehiculo",
		"/api/alquileres/historial-cliente/4",
		"/api/alquileres",
		"/api/vehiculos/disponibles",
	}, paths)
}

func TestErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 400, `{"message":"Documento duplicado","error":"Bad Request"}`, "Documento duplicado"},
		{"error field", 409, `{"error":"Conflicto de fechas"}`, "Conflicto de fechas"},
		{"json string body", 400, `"Vehículo no disponible"`, "Vehículo no disponible"},
		{"plain text body", 500, `Internal failure`, "Internal failure"},
		{"object without text", 500, `{"status":500}`, "request failed with status code 500"},
		{"empty body", 404, ``, "request failed with status code 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, tt.status, tt.body)

			_, err := c.ClientsResource().List(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.want, Message(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestMessageFallbacks(t *testing.T) {
	assert.Equal(t, FallbackMessage, Message(nil))
	assert.Equal(t, "connection refused", Message(errors.New("connection refused")))
	assert.Equal(t, FallbackMessage, Message(errors.New("  ")))
	assert.Equal(t, 0, StatusCode(errors.New("boom")))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second, nil).ClientsResource().List(context.Background())
	require.Error(t, err)
	assert.NotEqual(t, FallbackMessage, Message(err))
	assert.Equal(t, 0, StatusCode(err))
}
