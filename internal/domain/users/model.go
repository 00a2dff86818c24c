package users

import (
	"time"

	"pet-clinic-bookings/internal/ports/auth"
)

// User es la cuenta de autenticación. Un usuario con rol vet tiene
// además un perfil profesional en el módulo vets (1:1 por user_id).
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         auth.Role
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
