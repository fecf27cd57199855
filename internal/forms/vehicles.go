package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rentaldash/internal/domain"
)

// VehicleSchema is the rule table of the vehicle form. The year range ends
// one year after now.
func VehicleSchema(now time.Time) Schema {
	types := make([]Choice, 0, len(domain.VehicleTypes))
	names := make([]string, 0, len(domain.VehicleTypes))
	for _, t := range domain.VehicleTypes {
		types = append(types, Choice{Value: string(t), Label: string(t)})
		names = append(names, string(t))
	}

	return Schema{Fields: []Field{
		{Name: "marca", Label: "Marca", Rules: []Rule{required("La marca es obligatoria")}},
		{Name: "modelo", Label: "Modelo", Rules: []Rule{required("El modelo es obligatorio")}},
		{Name: "matricula", Label: "Matrícula", Rules: []Rule{required("La matrícula es obligatoria")}},
		{Name: "anio", Label: "Año", Kind: KindNumber, Default: strconv.Itoa(now.Year()), Rules: []Rule{
			required("El año es obligatorio"),
			{Tag: "number", Message: "Año inválido"},
			{Tag: fmt.Sprintf("gte=1900,lte=%d", now.Year()+1), Message: "Año inválido", Numeric: true},
		}},
		{Name: "tipo", Label: "Tipo", Kind: KindChoice, Default: string(domain.VehicleSedan), Choices: types, Rules: []Rule{
			{Tag: "required,oneof=" + strings.Join(names, " "), Message: "El tipo de vehículo es obligatorio"},
		}},
		{Name: "color", Label: "Color", Rules: []Rule{required("El color es obligatorio")}},
		{Name: "precioPorDia", Label: "Precio por día", Kind: KindNumber, Default: "0", Rules: []Rule{
			{Tag: "gt=0", Message: "El precio por día debe ser mayor a 0", Numeric: true},
		}},
		{Name: "disponible", Label: "Disponible", Kind: KindBool, Default: "true", Rules: []Rule{
			{Tag: "boolean", Message: "Valor inválido"},
		}},
		{Name: "descripcion", Label: "Descripción", Rules: []Rule{required("La descripción es obligatoria")}},
	}}
}

// NewVehicleForm returns a vehicle draft with this year's defaults
func NewVehicleForm() *Form { return New(VehicleSchema(time.Now())) }

// VehicleValues flattens a vehicle for editing
func VehicleValues(v domain.Vehicle) map[string]string {
	return map[string]string{
		"marca":        v.Brand,
		"modelo":       v.Model,
		"matricula":    v.Plate,
		"anio":         strconv.Itoa(v.Year),
		"tipo":         string(v.Type),
		"color":        v.Color,
		"precioPorDia": strconv.FormatFloat(v.DailyRate, 'f', -1, 64),
		"disponible":   strconv.FormatBool(v.Available),
		"descripcion":  v.Description,
	}
}

// VehiclePayload validates the draft and converts it to a request body
func VehiclePayload(f *Form) (domain.VehicleForm, error) {
	if !f.Validate() {
		return domain.VehicleForm{}, ErrInvalid
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.Value("anio")))
	if err != nil {
		return domain.VehicleForm{}, fmt.Errorf("anio: %w", err)
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(f.Value("precioPorDia")), 64)
	if err != nil {
		return domain.VehicleForm{}, fmt.Errorf("precioPorDia: %w", err)
	}
	available, err := strconv.ParseBool(strings.TrimSpace(f.Value("disponible")))
	if err != nil {
		return domain.VehicleForm{}, fmt.Errorf("disponible: %w", err)
	}
	return domain.VehicleForm{
		Brand:       strings.TrimSpace(f.Value("marca")),
		Model:       strings.TrimSpace(f.Value("modelo")),
		Plate:       strings.TrimSpace(f.Value("matricula")),
		Year:        year,
		Type:        domain.VehicleType(strings.TrimSpace(f.Value("tipo"))),
		Color:       strings.TrimSpace(f.Value("color")),
		DailyRate:   rate,
		Available:   available,
		Description: strings.TrimSpace(f.Value("descripcion")),
	}, nil
}
