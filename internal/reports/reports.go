// Package reports turns the backend's aggregate endpoints into printable tables.
package reports

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"rentaldash/internal/domain"
)

// Source is the part of the API client that serves reports
type Source interface {
	TopClients(ctx context.Context) ([]domain.Client, error)
	IdleVehicles(ctx context.Context) ([]domain.Vehicle, error)
	AverageDurationByType(ctx context.Context) ([]domain.VehicleTypeAverage, error)
	OverdueRentals(ctx context.Context) ([]domain.Rental, error)
	MonthlyIncome(ctx context.Context) ([]domain.MonthlyIncome, error)
	ClientHistory(ctx context.Context, clientID int64) ([]domain.Rental, error)
	Rentals(ctx context.Context) ([]domain.Rental, error)
}

// Table is the result of one report
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Result pairs a report with its outcome
type Result struct {
	Report Report
	Table  Table
	Err    error
}

// Report is one named aggregate view
type Report struct {
	Name        string
	Title       string
	Entity      string // collection the report belongs to
	NeedsClient bool
	run         func(ctx context.Context, src Source, clientID int64) ([][]string, []string, error)
}

// Run fetches the report. clientID is only used by reports that need one.
func (r Report) Run(ctx context.Context, src Source, clientID int64) (Table, error) {
	if r.NeedsClient && clientID <= 0 {
		return Table{}, fmt.Errorf("report %s needs a client id", r.Name)
	}
	rows, headers, err := r.run(ctx, src, clientID)
	if err != nil {
		return Table{}, fmt.Errorf("report %s: %w", r.Name, err)
	}
	title := r.Title
	if r.NeedsClient {
		title = fmt.Sprintf("%s #%d", r.Title, clientID)
	}
	return Table{Title: title, Headers: headers, Rows: rows}, nil
}

var catalog = []Report{
	{Name: "top-clients", Title: "Clientes con más alquileres", Entity: "clientes", run: topClients},
	{Name: "client-history", Title: "Historial de alquileres del cliente", Entity: "clientes", NeedsClient: true, run: clientHistory},
	{Name: "idle-vehicles", Title: "Vehículos sin alquileres en los últimos 30 días", Entity: "vehiculos", run: idleVehicles},
	{Name: "average-duration", Title: "Duración promedio de alquiler por tipo", Entity: "vehiculos", run: averageDuration},
	{Name: "overdue-rentals", Title: "Alquileres vencidos", Entity: "alquileres", run: overdueRentals},
	{Name: "monthly-income", Title: "Ingresos por mes y tipo de vehículo", Entity: "alquileres", run: monthlyIncome},
	{Name: "rental-agenda", Title: "Agenda de alquileres", Entity: "alquileres", run: rentalAgenda},
}

// All lists every report in display order
func All() []Report {
	return append([]Report(nil), catalog...)
}

// Lookup finds a report by name
func Lookup(name string) (Report, bool) {
	for _, r := range catalog {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}

// ForEntity lists the reports shown from a collection's section. Rentals also
// get the history of the selected rental's client.
func ForEntity(entity string) []Report {
	var out []Report
	for _, r := range catalog {
		if r.Entity == entity {
			out = append(out, r)
		}
	}
	if entity == "alquileres" {
		if r, ok := Lookup("client-history"); ok {
			out = append(out, r)
		}
	}
	return out
}

// RunAll runs reports concurrently. Results keep the input order; reports
// that need a client are skipped when clientID is not set.
func RunAll(ctx context.Context, src Source, list []Report, clientID int64) []Result {
	results := make([]Result, len(list))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i, r := range list {
		results[i].Report = r
		if r.NeedsClient && clientID <= 0 {
			continue
		}
		g.Go(func() error {
			t, err := r.Run(ctx, src, clientID)
			results[i].Table = t
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func topClients(ctx context.Context, src Source, _ int64) ([][]string, []string, error) {
	clients, err := src.TopClients(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		count := "-"
		if c.RentalCount != nil {
			count = strconv.Itoa(*c.RentalCount)
		}
		rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.FullName(), c.Document, c.Email, count})
	}
	return rows, []string{"ID", "Nombre", "Documento", "Email", "Alquileres"}, nil
}

func clientHistory(ctx context.Context, src Source, clientID int64) ([][]string, []string, error) {
	rentals, err := src.ClientHistory(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	return rentalRows(rentals), rentalHeaders, nil
}

func idleVehicles(ctx context.Context, src Source, _ int64) ([][]string, []string, error) {
	vehicles, err := src.IdleVehicles(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, []string{
			strconv.FormatInt(v.ID, 10), v.Brand + " " + v.Model, v.Plate, string(v.Type), Money(v.DailyRate),
		})
	}
	return rows, []string{"ID", "Vehículo", "Matrícula", "Tipo", "Precio/día"}, nil
}

func averageDuration(ctx context.Context, src Source, _ int64) ([][]string, []string, error) {
	averages, err := src.AverageDurationByType(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(averages))
	for _, a := range averages {
		rows = append(rows, []string{string(a.VehicleType), fmt.Sprintf("%.1f", a.AverageDays)})
	}
	return rows, []string{"Tipo", "Días promedio"}, nil
}

func overdueRentals(ctx context.Context, src Source, _ int64) ([][]string, []string, error) {
	rentals, err := src.OverdueRentals(ctx)
	if err != nil {
		return nil, nil, err
	}
	return rentalRows(rentals), rentalHeaders, nil
}

func monthlyIncome(ctx context.Context, src Source, _ int64) ([][]string, []string, error) {
	income, err := src.MonthlyIncome(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(income))
	for _, m := range income {
		rows = append(rows, []string{fmt.Sprintf("%04d-%02d", m.Year, m.Month), m.VehicleType, Money(m.Total)})
	}
	return rows, []string{"Mes", "Tipo", "Ingresos"}, nil
}

// rentalAgenda lists every rental by start date, one month block after another
func rentalAgenda(ctx context.Context, src Source, _ int64) ([][]string, []string, error) {
	rentals, err := src.Rentals(ctx)
	if err != nil {
		return nil, nil, err
	}
	slices.SortStableFunc(rentals, func(a, b domain.Rental) int {
		if c := a.StartDate.Compare(b.StartDate.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	rows := make([][]string, 0, len(rentals))
	month := ""
	for _, r := range rentals {
		label := ""
		if m := r.StartDate.Format("2006-01"); m != month && !r.StartDate.IsZero() {
			month, label = m, m
		}
		days := "-"
		if !r.StartDate.IsZero() && !r.EndDate.IsZero() {
			days = strconv.Itoa(int(r.EndDate.Sub(r.StartDate.Time).Hours()/24) + 1)
		}
		rows = append(rows, []string{
			label, r.StartDate.String(), r.EndDate.String(), days,
			r.VehicleDetail, r.ClientName, r.Status.Label(),
		})
	}
	return rows, []string{"Mes", "Inicio", "Fin", "Días", "Vehículo", "Cliente", "Estado"}, nil
}

var rentalHeaders = []string{"ID", "Cliente", "Vehículo", "Inicio", "Fin", "Estado", "Total"}

func rentalRows(rentals []domain.Rental) [][]string {
	rows := make([][]string, 0, len(rentals))
	for _, r := range rentals {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10), r.ClientName, r.VehicleDetail,
			r.StartDate.String(), r.EndDate.String(), r.Status.Label(), Money(r.TotalCost),
		})
	}
	return rows
}

// Money formats an amount with two decimals
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
