package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a rental is asked to move to a state
// its current state cannot reach
var ErrInvalidTransition = errors.New("transición no válida")

// RentalStatus is the lifecycle state of a rental
type RentalStatus string

const (
	StatusPending   RentalStatus = "PENDIENTE"
	StatusActive    RentalStatus = "ACTIVO"
	StatusCompleted RentalStatus = "COMPLETADO"
	StatusCancelled RentalStatus = "CANCELADO"
)

// RentalStatuses lists every state in lifecycle order
var RentalStatuses = []RentalStatus{StatusPending, StatusActive, StatusCompleted, StatusCancelled}

// Label returns the human-readable status name
func (s RentalStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusActive:
		return "Activo"
	case StatusCompleted:
		return "Completado"
	case StatusCancelled:
		return "Cancelado"
	case "":
		return "Desconocido"
	default:
		return string(s)
	}
}

// Terminal reports whether no further transition is possible
func (s RentalStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanActivate checks PENDIENTE -> ACTIVO
func CanActivate(current RentalStatus) error {
	if current != StatusPending {
		return fmt.Errorf("%w: no se puede activar un alquiler %s", ErrInvalidTransition, current.Label())
	}
	return nil
}

// CanComplete checks ACTIVO -> COMPLETADO
func CanComplete(current RentalStatus) error {
	if current != StatusActive {
		return fmt.Errorf("%w: no se puede completar un alquiler %s", ErrInvalidTransition, current.Label())
	}
	return nil
}

// CanCancel checks PENDIENTE -> CANCELADO
func CanCancel(current RentalStatus) error {
	if current != StatusPending {
		return fmt.Errorf("%w: no se puede cancelar un alquiler %s", ErrInvalidTransition, current.Label())
	}
	return nil
}

// ValidateReturnDate checks that a completion date lies within [start, today]
func ValidateReturnDate(r Rental, returned, today Date) error {
	if returned.IsZero() {
		return fmt.Errorf("%w: la fecha de devolución es obligatoria", ErrInvalidTransition)
	}
	if !r.StartDate.IsZero() && returned.Before(r.StartDate) {
		return fmt.Errorf("%w: la fecha de devolución %s es anterior al inicio %s", ErrInvalidTransition, returned, r.StartDate)
	}
	if returned.After(today) {
		return fmt.Errorf("%w: la fecha de devolución %s es posterior a hoy", ErrInvalidTransition, returned)
	}
	return nil
}
