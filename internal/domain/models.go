package domain

import "strings"

// Client represents a rental customer
type Client struct {
	ID           int64  `json:"id,omitempty"`
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellido"`
	Document     string `json:"documento"`
	Email        string `json:"email"`
	Phone        string `json:"telefono"`
	BirthDate    Date   `json:"fechaNacimiento"`
	Address      string `json:"direccion"`
	RegisteredAt Date   `json:"fechaRegistro"`
	RentalCount  *int   `json:"cantidadAlquileres,omitempty"` // only set by the top-clients report
}

func (c Client) Key() int64 { return c.ID }

// FullName joins first and last name
func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// VehicleType is the fleet category of a vehicle
type VehicleType string

const (
	VehicleSedan     VehicleType = "SEDAN"
	VehicleSUV       VehicleType = "SUV"
	VehicleHatchback VehicleType = "HATCHBACK"
	VehiclePickup    VehicleType = "PICKUP"
	VehicleSport     VehicleType = "DEPORTIVO"
	VehicleMinivan   VehicleType = "MINIVAN"
	VehicleOther     VehicleType = "OTRO"
)

// VehicleTypes lists every category in display order
var VehicleTypes = []VehicleType{
	VehicleSedan, VehicleSUV, VehicleHatchback, VehiclePickup,
	VehicleSport, VehicleMinivan, VehicleOther,
}

// Vehicle represents a fleet vehicle
type Vehicle struct {
	ID          int64       `json:"id,omitempty"`
	Brand       string      `json:"marca"`
	Model       string      `json:"modelo"`
	Plate       string      `json:"matricula"`
	Year        int         `json:"anio"`
	Type        VehicleType `json:"tipo"`
	Color       string      `json:"color"`
	DailyRate   float64     `json:"precioPorDia"`
	Available   bool        `json:"disponible"`
	Description string      `json:"descripcion"`
	AverageDays *float64    `json:"promedioDias,omitempty"`
}

func (v Vehicle) Key() int64 { return v.ID }

// Label is the short "brand model (plate)" form used in pickers
func (v Vehicle) Label() string {
	return strings.TrimSpace(v.Brand+" "+v.Model) + " (" + v.Plate + ")"
}

// Rental is a contract binding one client to one vehicle for a date range
type Rental struct {
	ID            int64        `json:"id,omitempty"`
	ClientID      int64        `json:"clienteId"`
	ClientName    string       `json:"nombreCliente"`
	VehicleID     int64        `json:"vehiculoId"`
	VehicleDetail string       `json:"detalleVehiculo"`
	StartDate     Date         `json:"fechaInicio"`
	EndDate       Date         `json:"fechaFin"`
	CreatedAt     Date         `json:"fechaCreacion"`
	ReturnedAt    *Date        `json:"fechaDevolucion"`
	TotalCost     float64      `json:"costoTotal"`
	Status        RentalStatus `json:"estado"`
	Notes         string       `json:"observaciones"`
}

func (r Rental) Key() int64 { return r.ID }

// ClientForm is the request body for creating or updating a client
type ClientForm struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Document  string `json:"documento"`
	Email     string `json:"email"`
	Phone     string `json:"telefono"`
	BirthDate Date   `json:"fechaNacimiento"`
	Address   string `json:"direccion"`
}

// VehicleForm is the request body for creating or updating a vehicle
type VehicleForm struct {
	Brand       string      `json:"marca"`
	Model       string      `json:"modelo"`
	Plate       string      `json:"matricula"`
	Year        int         `json:"anio"`
	Type        VehicleType `json:"tipo"`
	Color       string      `json:"color"`
	DailyRate   float64     `json:"precioPorDia"`
	Available   bool        `json:"disponible"`
	Description string      `json:"descripcion"`
}

// RentalForm is the request body for creating or updating a rental
type RentalForm struct {
	ClientID  int64  `json:"clienteId"`
	VehicleID int64  `json:"vehiculoId"`
	StartDate Date   `json:"fechaInicio"`
	EndDate   Date   `json:"fechaFin"`
	Notes     string `json:"observaciones"`
}

// MonthlyIncome is one row of the income-by-month-and-type report
type MonthlyIncome struct {
	Year        int     `json:"anio"`
	Month       int     `json:"mes"`
	VehicleType string  `json:"tipoVehiculo"`
	Total       float64 `json:"ingresoTotal"`
}

// VehicleTypeAverage is one row of the average-rental-duration report
type VehicleTypeAverage struct {
	VehicleType VehicleType `json:"tipoVehiculo"`
	AverageDays float64     `json:"promedioDias"`
}
