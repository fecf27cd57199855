package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"rentaldash/internal/domain"
)

// Collection names as they appear in backend paths
const (
	Clients  = "clientes"
	Vehicles = "vehiculos"
	Rentals  = "alquileres"
)

// Client talks to the rental backend under /api
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a backend client. A zero timeout leaves requests bounded only by their context.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.Named("api"),
	}
}

// BaseURL returns the backend root this client was built with
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/api/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Resource is the CRUD surface of one backend collection
type Resource[T any] struct {
	client *Client
	name   string
}

// NewResource binds a collection name to its element type
func NewResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{client: c, name: name}
}

// Name returns the collection path segment
func (r *Resource[T]) Name() string { return r.name }

// List fetches the whole collection
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.Get(ctx)
}

// ListBy fetches /{field}/{value}. Some filter endpoints answer with a single
// record, which is returned as a one-element slice.
func (r *Resource[T]) ListBy(ctx context.Context, field, value string) ([]T, error) {
	return r.Get(ctx, field, value)
}

// Get fetches a list at a sub-path of the collection, e.g. Get(ctx, "disponibles")
func (r *Resource[T]) Get(ctx context.Context, segments ...string) ([]T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, r.path(segments...), nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// Create posts body and returns the stored record
func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPost, r.path(), nil, body, &out)
	return out, err
}

// Update replaces record id with body and returns the stored record
func (r *Resource[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPut, r.path(strconv.FormatInt(id, 10)), nil, body, &out)
	return out, err
}

// Delete removes record id
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, r.path(strconv.FormatInt(id, 10)), nil, nil, nil)
}

// Patch calls an action endpoint /{id}/{action} that returns the updated record
func (r *Resource[T]) Patch(ctx context.Context, id int64, action string, query url.Values) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPatch, r.path(strconv.FormatInt(id, 10), action), query, nil, &out)
	return out, err
}

func (r *Resource[T]) path(segments ...string) string {
	parts := []string{r.name}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return []T{item}, nil
}

// ClientsResource is the clientes collection
func (c *Client) ClientsResource() *Resource[domain.Client] {
	return NewResource[domain.Client](c, Clients)
}

// VehiclesResource is the vehiculos collection
func (c *Client) VehiclesResource() *Resource[domain.Vehicle] {
	return NewResource[domain.Vehicle](c, Vehicles)
}

// RentalsResource is the alquileres collection
func (c *Client) RentalsResource() *Resource[domain.Rental] {
	return NewResource[domain.Rental](c, Rentals)
}

// AvailableVehicles lists vehicles the backend marks as rentable
func (c *Client) AvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return c.VehiclesResource().Get(ctx, "disponibles")
}

// ActivateRental moves a pending rental to ACTIVO
func (c *Client) ActivateRental(ctx context.Context, id int64) (domain.Rental, error) {
	return c.RentalsResource().Patch(ctx, id, "activar", nil)
}

// CompleteRental closes an active rental on the given return date
func (c *Client) CompleteRental(ctx context.Context, id int64, returned domain.Date) (domain.Rental, error) {
	q := url.Values{}
	q.Set("fechaDevolucion", returned.String())
	return c.RentalsResource().Patch(ctx, id, "completar", q)
}

// CancelRental cancels a pending rental
func (c *Client) CancelRental(ctx context.Context, id int64) (domain.Rental, error) {
	return c.RentalsResource().Patch(ctx, id, "cancelar", nil)
}
