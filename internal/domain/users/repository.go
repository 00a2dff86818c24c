package users

import "context"

// Las implementaciones devuelven ErrNotFound cuando la fila no existe;
// cualquier otro error es una falla de storage y se propaga.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
