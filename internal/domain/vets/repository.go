package vets

import (
	"context"

	"pet-clinic-bookings/internal/domain/users"
)

// Repository: los perfiles son directorio público (GetByID sin scope,
// ListActive filtra is_active). WorkingHours y TimeOff se leen por id
// sin scope; la comparación de ownership ocurre en el service, porque
// solo se mutan a través de los endpoints "me". Las implementaciones
// devuelven ErrNotFound en ausencia; cualquier otro error se propaga.
type Repository interface {
	GetByID(ctx context.Context, id string) (Vet, error)
	GetByUserID(ctx context.Context, userID string) (Vet, error)
	ListActive(ctx context.Context) ([]Vet, error)
	Update(ctx context.Context, v Vet) error

	CreateWorkingHours(ctx context.Context, wh WorkingHours) error
	ListWorkingHoursByVet(ctx context.Context, vetID string) ([]WorkingHours, error)
	GetWorkingHoursByID(ctx context.Context, id string) (WorkingHours, error)
	DeleteWorkingHours(ctx context.Context, id string) error

	CreateTimeOff(ctx context.Context, to TimeOff) error
	ListTimeOffByVet(ctx context.Context, vetID string) ([]TimeOff, error)
	GetTimeOffByID(ctx context.Context, id string) (TimeOff, error)
	DeleteTimeOff(ctx context.Context, id string) error
}

// RegistrationRepository crea la cuenta y el perfil en UNA operación.
// En postgres ambas escrituras van dentro de la misma transacción; una
// falla intermedia no puede dejar un usuario vet huérfano sin perfil.
type RegistrationRepository interface {
	CreateWithUser(ctx context.Context, u users.User, v Vet) error
}
