package sections

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"rentaldash/internal/api"
	"rentaldash/internal/domain"
	"rentaldash/internal/forms"
	"rentaldash/internal/logic"
	"rentaldash/internal/reports"
)

var (
	ClientNoun  = logic.Noun{Singular: "cliente", Plural: "clientes"}
	VehicleNoun = logic.Noun{Singular: "vehículo", Plural: "vehículos"}
	RentalNoun  = logic.Noun{Singular: "alquiler", Plural: "alquileres"}
)

// ClientDefinition configures the clients section
func ClientDefinition() Definition[domain.Client] {
	return Definition[domain.Client]{
		Title: "Clientes",
		SearchFields: func(c domain.Client) []string {
			return []string{c.FirstName + " " + c.LastName, c.Document, c.Email}
		},
		FilterFields: []logic.FilterField{
			{Name: "nombre", Label: "Nombre"},
			{Name: "documento", Label: "Documento"},
			{Name: "email", Label: "Email"},
		},
		Columns: []Column[domain.Client]{
			{Title: "ID", Value: func(c domain.Client) string { return itoa(c.ID) }},
			{Title: "Nombre", Value: domain.Client.FullName},
			{Title: "Documento", Value: func(c domain.Client) string { return c.Document }},
			{Title: "Email", Value: func(c domain.Client) string { return c.Email }},
			{Title: "Teléfono", Value: func(c domain.Client) string { return c.Phone }},
		},
		Details: func(c domain.Client) []Detail {
			return []Detail{
				{"ID", itoa(c.ID)},
				{"Nombre", c.FirstName},
				{"Apellido", c.LastName},
				{"Documento", c.Document},
				{"Email", c.Email},
				{"Teléfono", c.Phone},
				{"Fecha de nacimiento", c.BirthDate.String()},
				{"Dirección", c.Address},
				{"Fecha de registro", c.RegisteredAt.String()},
			}
		},
		NewForm: forms.NewClientForm,
		Values:  forms.ClientValues,
		Payload: func(f *forms.Form) (any, error) { return forms.ClientPayload(f) },
		ClientID: func(c domain.Client) int64 {
			return c.ID
		},
	}
}

// VehicleDefinition configures the vehicles section
func VehicleDefinition() Definition[domain.Vehicle] {
	return Definition[domain.Vehicle]{
		Title: "Vehículos",
		SearchFields: func(v domain.Vehicle) []string {
			return []string{v.Brand + " " + v.Model, v.Plate, string(v.Type), v.Color}
		},
		FilterFields: []logic.FilterField{
			{Name: "marca", Label: "Marca"},
			{Name: "matricula", Label: "Matrícula"},
			{Name: "tipo", Label: "Tipo"},
			{Name: "disponible", Label: "Disponibles", Path: []string{"disponibles"}},
		},
		Columns: []Column[domain.Vehicle]{
			{Title: "ID", Value: func(v domain.Vehicle) string { return itoa(v.ID) }},
			{Title: "Vehículo", Value: func(v domain.Vehicle) string { return v.Brand + " " + v.Model }},
			{Title: "Matrícula", Value: func(v domain.Vehicle) string { return v.Plate }},
			{Title: "Año", Value: func(v domain.Vehicle) string { return strconv.Itoa(v.Year) }},
			{Title: "Tipo", Value: func(v domain.Vehicle) string { return string(v.Type) }},
			{Title: "Precio/día", Value: func(v domain.Vehicle) string { return reports.Money(v.DailyRate) }},
			{Title: "Disponible", Value: func(v domain.Vehicle) string { return yesNo(v.Available) }},
		},
		Details: func(v domain.Vehicle) []Detail {
			return []Detail{
				{"ID", itoa(v.ID)},
				{"Marca", v.Brand},
				{"Modelo", v.Model},
				{"Matrícula", v.Plate},
				{"Año", strconv.Itoa(v.Year)},
				{"Tipo", string(v.Type)},
				{"Color", v.Color},
				{"Precio por día", reports.Money(v.DailyRate)},
				{"Disponible", yesNo(v.Available)},
				{"Descripción", v.Description},
			}
		},
		NewForm: forms.NewVehicleForm,
		Values:  forms.VehicleValues,
		Payload: func(f *forms.Form) (any, error) { return forms.VehiclePayload(f) },
	}
}

// RentalDefinition configures the rentals section
func RentalDefinition() Definition[domain.Rental] {
	return Definition[domain.Rental]{
		Title: "Alquileres",
		SearchFields: func(r domain.Rental) []string {
			return []string{r.ClientName, r.VehicleDetail, string(r.Status)}
		},
		FilterFields: []logic.FilterField{
			{Name: "cliente", Label: "Cliente"},
			{Name: "vehiculo", Label: "Vehículo"},
			{Name: "estado", Label: "Estado"},
		},
		Columns: []Column[domain.Rental]{
			{Title: "ID", Value: func(r domain.Rental) string { return itoa(r.ID) }},
			{Title: "Cliente", Value: func(r domain.Rental) string { return r.ClientName }},
			{Title: "Vehículo", Value: func(r domain.Rental) string { return r.VehicleDetail }},
			{Title: "Inicio", Value: func(r domain.Rental) string { return r.StartDate.String() }},
			{Title: "Fin", Value: func(r domain.Rental) string { return r.EndDate.String() }},
			{Title: "Estado", Value: func(r domain.Rental) string { return r.Status.Label() }},
			{Title: "Total", Value: func(r domain.Rental) string { return reports.Money(r.TotalCost) }},
		},
		Details: func(r domain.Rental) []Detail {
			returned := "-"
			if r.ReturnedAt != nil && !r.ReturnedAt.IsZero() {
				returned = r.ReturnedAt.String()
			}
			return []Detail{
				{"ID", itoa(r.ID)},
				{"Cliente", fmt.Sprintf("%s (#%d)", r.ClientName, r.ClientID)},
				{"Vehículo", fmt.Sprintf("%s (#%d)", r.VehicleDetail, r.VehicleID)},
				{"Fecha de inicio", r.StartDate.String()},
				{"Fecha de fin", r.EndDate.String()},
				{"Fecha de creación", r.CreatedAt.String()},
				{"Fecha de devolución", returned},
				{"Costo total", reports.Money(r.TotalCost)},
				{"Estado", r.Status.Label()},
				{"Observaciones", r.Notes},
			}
		},
		NewForm: forms.NewRentalForm,
		Values:  forms.RentalValues,
		Payload: func(f *forms.Form) (any, error) { return forms.RentalPayload(f) },
		Status: func(r domain.Rental) (domain.RentalStatus, bool) {
			return r.Status, true
		},
		ClientID: func(r domain.Rental) int64 {
			return r.ClientID
		},
	}
}

// NewClients builds the clients section over the API
func NewClients(c *api.Client, n logic.Notifier, log *zap.Logger, pageSize int) *List[domain.Client] {
	store := logic.NewEntityStore[domain.Client](api.Clients, ClientNoun, c.ClientsResource(), n, log)
	return NewList(store, ClientDefinition(), pageSize)
}

// NewVehicles builds the vehicles section over the API
func NewVehicles(c *api.Client, n logic.Notifier, log *zap.Logger, pageSize int) *List[domain.Vehicle] {
	store := logic.NewEntityStore[domain.Vehicle](api.Vehicles, VehicleNoun, c.VehiclesResource(), n, log)
	return NewList(store, VehicleDefinition(), pageSize)
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
