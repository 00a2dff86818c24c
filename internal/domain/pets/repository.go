package pets

import "context"

// Repository es deliberadamente scoped: toda lectura de mascota pasa por
// el owner. Una mascota ajena y una inexistente son indistinguibles.
// Las implementaciones devuelven ErrNotFound para fila inexistente o
// fuera del scope del owner; cualquier otro error se propaga.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	GetForOwner(ctx context.Context, petID, ownerUserID string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
