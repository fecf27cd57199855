package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventAlert         EventType = "Alert"
	EventEntityChanged EventType = "EntityChanged"
	EventError         EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AlertLevel distinguishes success and failure notifications
type AlertLevel int

const (
	AlertSuccess AlertLevel = iota
	AlertError
)

// AlertEvent is a transient notification shown to the user
type AlertEvent struct {
	Level   AlertLevel
	Message string
}

func (e AlertEvent) Type() EventType { return EventAlert }

// ChangeKind describes how a collection was changed
type ChangeKind string

const (
	ChangeLoaded  ChangeKind = "loaded"
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// EntityChangedEvent is emitted when a store's collection changes
type EntityChangedEvent struct {
	Entity string // "clientes", "vehiculos", "alquileres"
	Kind   ChangeKind
	ID     int64
}

func (e EntityChangedEvent) Type() EventType { return EventEntityChanged }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Operation string
	Message   string
	Err       error
}

func (e ErrorEvent) Type() EventType { return EventError }
