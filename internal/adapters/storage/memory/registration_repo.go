package memory

import (
	"context"

	"pet-clinic-bookings/internal/domain/users"
	"pet-clinic-bookings/internal/domain/vets"
)

// RegistrationRepo emula la transacción de postgres: si la segunda
// escritura falla, deshace la primera antes de soltar los locks.
type RegistrationRepo struct {
	users *UserRepo
	vets  *VetRepo
}

func NewRegistrationRepo(userRepo *UserRepo, vetRepo *VetRepo) *RegistrationRepo {
	return &RegistrationRepo{users: userRepo, vets: vetRepo}
}

func (r *RegistrationRepo) CreateWithUser(ctx context.Context, u users.User, v vets.Vet) error {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	r.vets.mu.Lock()
	defer r.vets.mu.Unlock()

	if err := r.users.createLocked(u); err != nil {
		return err
	}
	if err := r.vets.createLocked(v); err != nil {
		r.users.deleteLocked(u.ID)
		return err
	}
	return nil
}
