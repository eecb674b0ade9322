package bookings

import (
	"context"
	"time"
)

// Filter acota el listado de una organización. Campos vacíos no filtran.
type Filter struct {
	Status Status
	From   *time.Time
	To     *time.Time
}

// Repository devuelve ErrNotFound si la fila no existe.
type Repository interface {
	Create(ctx context.Context, b Booking) error
	Update(ctx context.Context, b Booking) error
	GetByID(ctx context.Context, id string) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListByOrganization(ctx context.Context, orgID string, f Filter) ([]Booking, error)
	ListByPet(ctx context.Context, petID string) ([]Booking, error)
	// ListUnreminded: confirmados que empiezan en [from, to) y sin reminded_at.
	ListUnreminded(ctx context.Context, from, to time.Time) ([]Booking, error)
	// MarkReminded marca solo si sigue confirmado y sin aviso previo.
	// false => el turno cambió entre el listado y la marca.
	MarkReminded(ctx context.Context, id string, at time.Time) (bool, error)
}
