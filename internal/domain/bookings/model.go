package bookings

import "time"

// Status es el estado clínico del booking. El ciclo esperado es
// pending → {confirmed, cancelled} → {completed, no_show, cancelled},
// pero no se valida el grafo: el vet asignado puede fijar cualquier
// valor enumerado.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Booking enlaza un usuario solicitante, una mascota suya y un vet
// activo, con un rango start < end.
type Booking struct {
	ID     string
	UserID string
	PetID  string
	VetID  string

	StartAt time.Time
	EndAt   time.Time

	Status Status
	Reason string

	CreatedAt time.Time
	UpdatedAt time.Time
}
