package api

import (
	"context"
	"net/http"
	"strconv"

	"rentaldash/internal/domain"
)

// TopClients lists clients ordered by rental count
func (c *Client) TopClients(ctx context.Context) ([]domain.Client, error) {
	return c.ClientsResource().Get(ctx, "mas-alquileres")
}

// IdleVehicles lists vehicles with no rentals in the last 30 days
func (c *Client) IdleVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return c.VehiclesResource().Get(ctx, "sin-alquileres-ultimos-30-dias")
}

// AverageDurationByType reports mean rental length per vehicle type
func (c *Client) AverageDurationByType(ctx context.Context) ([]domain.VehicleTypeAverage, error) {
	var out []domain.VehicleTypeAverage
	err := c.do(ctx, http.MethodGet, Vehicles+"/promedio-duracion-por-tipo", nil, nil, &out)
	return out, err
}

// OverdueRentals lists active rentals past their end date
func (c *Client) OverdueRentals(ctx context.Context) ([]domain.Rental, error) {
	return c.RentalsResource().Get(ctx, "vencidos")
}

// Rentals lists every rental, for the agenda report
func (c *Client) Rentals(ctx context.Context) ([]domain.Rental, error) {
	return c.RentalsResource().List(ctx)
}

// MonthlyIncome reports income grouped by month and vehicle type
func (c *Client) MonthlyIncome(ctx context.Context) ([]domain.MonthlyIncome, error) {
	var out []domain.MonthlyIncome
	err := c.do(ctx, http.MethodGet, Rentals+"/ingresos-por-mes-y-tipo-vehiculo", nil, nil, &out)
	return out, err
}

// ClientHistory lists every rental of one client
func (c *Client) ClientHistory(ctx context.Context, clientID int64) ([]domain.Rental, error) {
	return c.RentalsResource().Get(ctx, "historial-cliente", strconv.FormatInt(clientID, 10))
}
