package logic

import (
	"context"

	"rentaldash/internal/domain"
)

// Entity is any record with a numeric backend id
type Entity interface {
	Key() int64
}

// Backend is the remote collection a store mirrors. *api.Resource satisfies it.
type Backend[T Entity] interface {
	Get(ctx context.Context, segments ...string) ([]T, error)
	Create(ctx context.Context, body any) (T, error)
	Update(ctx context.Context, id int64, body any) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier receives transient notifications. eventbus.EventBus satisfies it.
type Notifier interface {
	Publish(event domain.DomainEvent)
}

// Operation names a store call for messages and error history
type Operation string

const (
	OpFetch    Operation = "fetch"
	OpFilter   Operation = "filter"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpActivate Operation = "activate"
	OpComplete Operation = "complete"
	OpCancel   Operation = "cancel"
)

var (
	verbs = map[Operation]string{
		OpFetch: "cargar", OpFilter: "filtrar", OpCreate: "crear", OpUpdate: "actualizar",
		OpDelete: "eliminar", OpActivate: "activar", OpComplete: "completar", OpCancel: "cancelar",
	}
	participles = map[Operation]string{
		OpCreate: "creado", OpUpdate: "actualizado", OpDelete: "eliminado",
		OpActivate: "activado", OpComplete: "completado", OpCancel: "cancelado",
	}
)

// Verb is the Spanish infinitive used in failure messages
func (o Operation) Verb() string {
	if v, ok := verbs[o]; ok {
		return v
	}
	return string(o)
}

// Participle is the Spanish past participle used in success messages
func (o Operation) Participle() string {
	if p, ok := participles[o]; ok {
		return p
	}
	return string(o)
}
