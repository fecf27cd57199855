package forms

import (
	"fmt"
	"strconv"
	"strings"

	"rentaldash/internal/domain"
)

// RentalSchema is the rule table of the rental form. Client and vehicle
// options are filled in with SetChoices once their collections load.
func RentalSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: "clienteId", Label: "Cliente", Kind: KindChoice, Rules: []Rule{
				{Tag: "gt=0", Message: "El cliente es obligatorio", Numeric: true},
			}},
			{Name: "vehiculoId", Label: "Vehículo", Kind: KindChoice, Rules: []Rule{
				{Tag: "gt=0", Message: "El vehículo es obligatorio", Numeric: true},
			}, Restrict: "El vehículo seleccionado no está disponible"},
			{Name: "fechaInicio", Label: "Fecha de inicio", Kind: KindDate, Rules: []Rule{
				required("La fecha de inicio es obligatoria"),
				{Tag: "datetime=" + domain.DateLayout, Message: "Fecha inválida (AAAA-MM-DD)"},
			}},
			{Name: "fechaFin", Label: "Fecha de fin", Kind: KindDate, Rules: []Rule{
				required("La fecha de fin es obligatoria"),
				{Tag: "datetime=" + domain.DateLayout, Message: "Fecha inválida (AAAA-MM-DD)"},
			}},
			{Name: "observaciones", Label: "Observaciones"},
		},
		Cross: []CrossRule{endAfterStart},
	}
}

func endAfterStart(values map[string]string) map[string]string {
	start, okStart := values["fechaInicio"]
	end, okEnd := values["fechaFin"]
	if !okStart || !okEnd || start == "" || end == "" {
		return nil
	}
	s, err1 := domain.ParseDate(start)
	e, err2 := domain.ParseDate(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	if !e.After(s) {
		return map[string]string{"fechaFin": "La fecha de fin debe ser posterior a la fecha de inicio"}
	}
	return nil
}

// NewRentalForm returns an empty rental draft
func NewRentalForm() *Form { return New(RentalSchema()) }

// RentalValues flattens a rental for editing
func RentalValues(r domain.Rental) map[string]string {
	return map[string]string{
		"clienteId":     strconv.FormatInt(r.ClientID, 10),
		"vehiculoId":    strconv.FormatInt(r.VehicleID, 10),
		"fechaInicio":   r.StartDate.String(),
		"fechaFin":      r.EndDate.String(),
		"observaciones": r.Notes,
	}
}

// ClientChoices builds the client picker options
func ClientChoices(clients []domain.Client) []Choice {
	out := make([]Choice, 0, len(clients))
	for _, c := range clients {
		out = append(out, Choice{Value: strconv.FormatInt(c.ID, 10), Label: c.FullName() + " - " + c.Document})
	}
	return out
}

// VehicleChoices builds the vehicle picker options from available vehicles only
func VehicleChoices(vehicles []domain.Vehicle) []Choice {
	out := make([]Choice, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.Available {
			continue
		}
		out = append(out, Choice{
			Value: strconv.FormatInt(v.ID, 10),
			Label: fmt.Sprintf("%s - %.2f/día", v.Label(), v.DailyRate),
		})
	}
	return out
}

// RentalPayload validates the draft and converts it to a request body
func RentalPayload(f *Form) (domain.RentalForm, error) {
	if !f.Validate() {
		return domain.RentalForm{}, ErrInvalid
	}
	clientID, err := strconv.ParseInt(strings.TrimSpace(f.Value("clienteId")), 10, 64)
	if err != nil {
		return domain.RentalForm{}, fmt.Errorf("clienteId: %w", err)
	}
	vehicleID, err := strconv.ParseInt(strings.TrimSpace(f.Value("vehiculoId")), 10, 64)
	if err != nil {
		return domain.RentalForm{}, fmt.Errorf("vehiculoId: %w", err)
	}
	start, err := domain.ParseDate(f.Value("fechaInicio"))
	if err != nil {
		return domain.RentalForm{}, fmt.Errorf("fechaInicio: %w", err)
	}
	end, err := domain.ParseDate(f.Value("fechaFin"))
	if err != nil {
		return domain.RentalForm{}, fmt.Errorf("fechaFin: %w", err)
	}
	return domain.RentalForm{
		ClientID:  clientID,
		VehicleID: vehicleID,
		StartDate: start,
		EndDate:   end,
		Notes:     strings.TrimSpace(f.Value("observaciones")),
	}, nil
}
