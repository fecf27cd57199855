package forms

import (
	"fmt"
	"strings"

	"rentaldash/internal/domain"
)

// ClientSchema is the rule table of the client form
func ClientSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "nombre", Label: "Nombre", Rules: []Rule{required("El nombre es obligatorio")}},
		{Name: "apellido", Label: "Apellido", Rules: []Rule{required("El apellido es obligatorio")}},
		{Name: "documento", Label: "Documento", Rules: []Rule{required("El documento es obligatorio")}},
		{Name: "email", Label: "Email", Rules: []Rule{
			required("El email es obligatorio"),
			{Tag: "looseemail", Message: "Email inválido"},
		}},
		{Name: "telefono", Label: "Teléfono", Rules: []Rule{required("El teléfono es obligatorio")}},
		{Name: "fechaNacimiento", Label: "Fecha de nacimiento", Kind: KindDate, Rules: []Rule{
			required("La fecha de nacimiento es obligatoria"),
			{Tag: "datetime=" + domain.DateLayout, Message: "Fecha inválida (AAAA-MM-DD)"},
		}},
		{Name: "direccion", Label: "Dirección", Rules: []Rule{required("La dirección es obligatoria")}},
	}}
}

// NewClientForm returns an empty client draft
func NewClientForm() *Form { return New(ClientSchema()) }

// ClientValues flattens a client for editing
func ClientValues(c domain.Client) map[string]string {
	return map[string]string{
		"nombre":          c.FirstName,
		"apellido":        c.LastName,
		"documento":       c.Document,
		"email":           c.Email,
		"telefono":        c.Phone,
		"fechaNacimiento": c.BirthDate.String(),
		"direccion":       c.Address,
	}
}

// ClientPayload validates the draft and converts it to a request body
func ClientPayload(f *Form) (domain.ClientForm, error) {
	if !f.Validate() {
		return domain.ClientForm{}, ErrInvalid
	}
	birth, err := domain.ParseDate(f.Value("fechaNacimiento"))
	if err != nil {
		return domain.ClientForm{}, fmt.Errorf("fechaNacimiento: %w", err)
	}
	return domain.ClientForm{
		FirstName: strings.TrimSpace(f.Value("nombre")),
		LastName:  strings.TrimSpace(f.Value("apellido")),
		Document:  strings.TrimSpace(f.Value("documento")),
		Email:     strings.TrimSpace(f.Value("email")),
		Phone:     strings.TrimSpace(f.Value("telefono")),
		BirthDate: birth,
		Address:   strings.TrimSpace(f.Value("direccion")),
	}, nil
}
