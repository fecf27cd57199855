//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeBackend serves the rental REST API from memory
type fakeBackend struct {
	mu       sync.Mutex
	server   *httptest.Server
	data     map[string][]map[string]any
	nextID   int64
	requests []string
}

// NewFakeBackend starts a backend seeded with a few records
func NewFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		nextID: 100,
		data: map[string][]map[string]any{
			"clientes": {
				{"id": 1, "nombre": "Ana", "apellido": "Ruiz", "documento": "30111222", "email": "ana@example.com", "telefono": "555-0101"},
				{"id": 2, "nombre": "Luis", "apellido": "Paz", "documento": "28999000", "email": "luis@example.com", "telefono": "555-0102"},
			},
			"vehiculos": {
				{"id": 5, "marca": "Fiat", "modelo": "Cronos", "matricula": "AB123CD", "anio": 2021, "tipo": "SEDAN", "precioPorDia": 45.5, "disponible": true},
				{"id": 6, "marca": "Ford", "modelo": "Ranger", "matricula": "EF456GH", "anio": 2019, "tipo": "PICKUP", "precioPorDia": 80, "disponible": false},
			},
			"alquileres": {
				{"id": 9, "clienteId": 2, "nombreCliente": "Luis Paz", "vehiculoId": 6, "detalleVehiculo": "Ford Ranger (EF456GH)",
					"fechaInicio": "2024-05-01", "fechaFin": "2024-05-10", "estado": "ACTIVO", "costoTotal": 720},
			},
		},
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

// URL is the backend root to pass as --api-url
func (b *fakeBackend) URL() string { return b.server.URL }

// Requests lists "METHOD /path" for every call received
func (b *fakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Saw reports whether a request matching "METHOD /path" was received
func (b *fakeBackend) Saw(req string) bool {
	for _, r := range b.Requests() {
		if r == req {
			return true
		}
	}
	return false
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/"), "/")
	records, ok := b.data[parts[0]]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Recurso no encontrado"})
		return
	}

	switch {
	case r.Method == http.MethodGet && len(parts) == 1:
		writeJSON(w, http.StatusOK, records)

	case r.Method == http.MethodGet && len(parts) == 2 && parts[1] == "disponibles":
		writeJSON(w, http.StatusOK, b.where(records, "disponible", "true"))

	case r.Method == http.MethodGet && len(parts) == 3:
		writeJSON(w, http.StatusOK, b.where(records, parts[1], parts[2]))

	case r.Method == http.MethodPost && len(parts) == 1:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Cuerpo inválido"})
			return
		}
		b.nextID++
		body["id"] = b.nextID
		b.data[parts[0]] = append(records, body)
		writeJSON(w, http.StatusCreated, body)

	case r.Method == http.MethodDelete && len(parts) == 2:
		id, _ := strconv.ParseInt(parts[1], 10, 64)
		kept := records[:0:0]
		for _, rec := range records {
			if toInt(rec["id"]) != id {
				kept = append(kept, rec)
			}
		}
		b.data[parts[0]] = kept
		w.WriteHeader(http.StatusNoContent)

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Operación no soportada"})
	}
}

func (b *fakeBackend) where(records []map[string]any, field, value string) []map[string]any {
	out := []map[string]any{}
	for _, rec := range records {
		if strings.EqualFold(stringify(rec[field]), value) {
			out = append(out, rec)
		}
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

func toInt(v any) int64 {
	id, _ := strconv.ParseInt(stringify(v), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
