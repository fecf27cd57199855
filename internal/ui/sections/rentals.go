package sections

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rentaldash/internal/api"
	"rentaldash/internal/domain"
	"rentaldash/internal/forms"
	"rentaldash/internal/logic"
)

// Transitioner runs rental state changes against the backend
type Transitioner interface {
	ActivateRental(ctx context.Context, id int64) (domain.Rental, error)
	CompleteRental(ctx context.Context, id int64, returned domain.Date) (domain.Rental, error)
	CancelRental(ctx context.Context, id int64) (domain.Rental, error)
}

// CandidateSource lists the records a rental form can pick from
type CandidateSource interface {
	Clients(ctx context.Context) ([]domain.Client, error)
	AvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

// Rentals is the rentals section plus lifecycle transitions and the
// picker options of its form
type Rentals struct {
	*List[domain.Rental]
	transitions Transitioner
	candidates  CandidateSource
	today       func() domain.Date
}

// NewRentals builds the rentals section over the API
func NewRentals(c *api.Client, n logic.Notifier, log *zap.Logger, pageSize int) *Rentals {
	store := logic.NewEntityStore[domain.Rental](api.Rentals, RentalNoun, c.RentalsResource(), n, log)
	return &Rentals{
		List:        NewList(store, RentalDefinition(), pageSize),
		transitions: c,
		candidates:  apiCandidates{c},
		today:       today,
	}
}

// NewRentalsWith builds a rentals section from explicit collaborators
func NewRentalsWith(store *logic.EntityStore[domain.Rental], t Transitioner, cs CandidateSource, pageSize int, now func() domain.Date) *Rentals {
	if now == nil {
		now = today
	}
	return &Rentals{
		List:        NewList(store, RentalDefinition(), pageSize),
		transitions: t,
		candidates:  cs,
		today:       now,
	}
}

func today() domain.Date { return domain.Today() }

// Today is the date transitions are checked against
func (r *Rentals) Today() domain.Date { return r.today() }

// Activate moves a pending rental to ACTIVO
func (r *Rentals) Activate(ctx context.Context, id int64) error {
	rental, err := r.lookup(id)
	if err != nil {
		return err
	}
	if err := domain.CanActivate(rental.Status); err != nil {
		return err
	}
	_, err = r.Store().Replace(ctx, logic.OpActivate, func(ctx context.Context) (domain.Rental, error) {
		return r.transitions.ActivateRental(ctx, id)
	})
	return err
}

// Complete closes an active rental with the given return date
func (r *Rentals) Complete(ctx context.Context, id int64, returned domain.Date) error {
	rental, err := r.lookup(id)
	if err != nil {
		return err
	}
	if err := domain.CanComplete(rental.Status); err != nil {
		return err
	}
	if err := domain.ValidateReturnDate(rental, returned, r.today()); err != nil {
		return err
	}
	_, err = r.Store().Replace(ctx, logic.OpComplete, func(ctx context.Context) (domain.Rental, error) {
		return r.transitions.CompleteRental(ctx, id, returned)
	})
	return err
}

// Cancel drops a pending rental
func (r *Rentals) Cancel(ctx context.Context, id int64) error {
	rental, err := r.lookup(id)
	if err != nil {
		return err
	}
	if err := domain.CanCancel(rental.Status); err != nil {
		return err
	}
	_, err = r.Store().Replace(ctx, logic.OpCancel, func(ctx context.Context) (domain.Rental, error) {
		return r.transitions.CancelRental(ctx, id)
	})
	return err
}

func (r *Rentals) lookup(id int64) (domain.Rental, error) {
	rental, ok := r.Store().Find(id)
	if !ok {
		return domain.Rental{}, fmt.Errorf("rental %d not loaded", id)
	}
	return rental, nil
}

// Choices holds the picker options of the rental form
type Choices struct {
	Clients  []forms.Choice
	Vehicles []forms.Choice
}

// LoadChoices fetches clients and available vehicles in parallel. When
// editing, the rental's current vehicle stays selectable.
func (r *Rentals) LoadChoices(ctx context.Context, editing int64) (Choices, error) {
	var (
		clients  []domain.Client
		vehicles []domain.Vehicle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = r.candidates.Clients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = r.candidates.AvailableVehicles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Choices{}, err
	}

	out := Choices{
		Clients:  forms.ClientChoices(clients),
		Vehicles: forms.VehicleChoices(vehicles),
	}
	if editing != 0 {
		if rental, ok := r.Store().Find(editing); ok {
			current := strconv.FormatInt(rental.VehicleID, 10)
			if !hasValue(out.Vehicles, current) {
				out.Vehicles = append(out.Vehicles, forms.Choice{Value: current, Label: rental.VehicleDetail})
			}
		}
	}
	return out, nil
}

// ApplyChoices installs loaded options on a rental draft
func ApplyChoices(f *forms.Form, c Choices) {
	f.SetChoices("clienteId", c.Clients)
	f.SetChoices("vehiculoId", c.Vehicles)
}

func hasValue(choices []forms.Choice, v string) bool {
	for _, c := range choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

type apiCandidates struct{ c *api.Client }

func (a apiCandidates) Clients(ctx context.Context) ([]domain.Client, error) {
	return a.c.ClientsResource().List(ctx)
}

func (a apiCandidates) AvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return a.c.AvailableVehicles(ctx)
}
