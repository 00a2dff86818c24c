package pets

import "time"

// Pet representa el perfil básico de una mascota registrada en el sistema.
// Siempre pertenece a exactamente un usuario owner. Species y sex son
// texto libre, sin enumeración.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string // dog, cat, etc.
	Breed   string
	Sex     string // male, female, unknown

	DateOfBirth *time.Time
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
