package bookings

import "context"

// Repository expone vistas disjuntas de la misma tabla: por solicitante
// y por vet asignado. Un booking ajeno y uno inexistente son la misma
// ausencia: las implementaciones devuelven ErrNotFound en ambos casos y
// propagan cualquier otro error.
type Repository interface {
	Create(ctx context.Context, b Booking) error
	Update(ctx context.Context, b Booking) error
	Delete(ctx context.Context, id string) error

	GetForUser(ctx context.Context, bookingID, userID string) (Booking, error)
	GetForVet(ctx context.Context, bookingID, vetID string) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListByVet(ctx context.Context, vetID string) ([]Booking, error)
}
