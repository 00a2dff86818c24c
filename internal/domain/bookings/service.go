package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidRange  = errors.New("start_at must be before end_at")
	ErrInvalidStatus = errors.New("invalid booking status")
	ErrNotFound      = errors.New("not found")
)

// PetDirectory y VetDirectory los implementan los services de pets y
// vets; interfaces chicas acá para no acoplar imports entre módulos.
type PetDirectory interface {
	OwnerHasPet(ctx context.Context, petID, ownerUserID string) (bool, error)
}

type VetDirectory interface {
	ActiveVet(ctx context.Context, vetID string) (bool, error)
}

type Service struct {
	repo Repository
	pets PetDirectory
	vets VetDirectory
	now  func() time.Time
}

func NewService(repo Repository, pets PetDirectory, vets VetDirectory) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		vets: vets,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID   string
	VetID   string
	StartAt time.Time
	EndAt   time.Time
	Reason  string
}

// Create valida rango, ownership de la mascota y actividad del vet.
// No hay chequeo de solapamiento contra horarios ni ausencias.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Booking, error) {
	petID := strings.TrimSpace(in.PetID)
	vetID := strings.TrimSpace(in.VetID)

	if strings.TrimSpace(userID) == "" || petID == "" || vetID == "" {
		return Booking{}, ErrInvalidInput
	}
	if in.StartAt.IsZero() || in.EndAt.IsZero() {
		return Booking{}, ErrInvalidInput
	}
	if !in.StartAt.Before(in.EndAt) {
		return Booking{}, ErrInvalidRange
	}

	ownsPet, err := s.pets.OwnerHasPet(ctx, petID, userID)
	if err != nil {
		return Booking{}, err
	}
	if !ownsPet {
		return Booking{}, ErrNotFound
	}

	activeVet, err := s.vets.ActiveVet(ctx, vetID)
	if err != nil {
		return Booking{}, err
	}
	if !activeVet {
		return Booking{}, ErrNotFound
	}

	now := s.now()
	b := Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		VetID:     vetID,
		StartAt:   in.StartAt,
		EndAt:     in.EndAt,
		Status:    StatusPending,
		Reason:    strings.TrimSpace(in.Reason),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// GetForUser propaga tal cual: el repo devuelve ErrNotFound tanto para
// booking inexistente como ajeno; otra cosa es falla de storage y debe
// llegar al 500 del handler.
func (s *Service) GetForUser(ctx context.Context, bookingID, userID string) (Booking, error) {
	return s.repo.GetForUser(ctx, bookingID, userID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetForVet(ctx context.Context, bookingID, vetID string) (Booking, error) {
	return s.repo.GetForVet(ctx, bookingID, vetID)
}

func (s *Service) ListForVet(ctx context.Context, vetID string) ([]Booking, error) {
	return s.repo.ListByVet(ctx, vetID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	PetID   *string
	VetID   *string
	StartAt *time.Time
	EndAt   *time.Time
	Reason  *string
}

// UpdateForUser aplica solo los campos enviados. El rango se revalida
// con los valores efectivos (parchado-o-existente); pet y vet se
// revalidan solo si vienen en el patch.
func (s *Service) UpdateForUser(ctx context.Context, bookingID, userID string, in UpdateInput) (Booking, error) {
	b, err := s.GetForUser(ctx, bookingID, userID)
	if err != nil {
		return Booking{}, err
	}

	if in.PetID != nil {
		petID := strings.TrimSpace(*in.PetID)
		ownsPet, err := s.pets.OwnerHasPet(ctx, petID, userID)
		if err != nil {
			return Booking{}, err
		}
		if !ownsPet {
			return Booking{}, ErrNotFound
		}
		b.PetID = petID
	}

	if in.VetID != nil {
		vetID := strings.TrimSpace(*in.VetID)
		activeVet, err := s.vets.ActiveVet(ctx, vetID)
		if err != nil {
			return Booking{}, err
		}
		if !activeVet {
			return Booking{}, ErrNotFound
		}
		b.VetID = vetID
	}

	nextStart := b.StartAt
	nextEnd := b.EndAt
	if in.StartAt != nil {
		nextStart = *in.StartAt
	}
	if in.EndAt != nil {
		nextEnd = *in.EndAt
	}
	if !nextStart.Before(nextEnd) {
		return Booking{}, ErrInvalidRange
	}
	b.StartAt = nextStart
	b.EndAt = nextEnd

	if in.Reason != nil {
		b.Reason = strings.TrimSpace(*in.Reason)
	}

	b.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// UpdateStatusForVet sobreescribe el estado sin validar transiciones;
// solo exige que el valor sea enumerado y que el booking esté asignado
// al vet que llama (scope del fetch).
func (s *Service) UpdateStatusForVet(ctx context.Context, bookingID, vetID string, status Status) (Booking, error) {
	if !ValidStatus(status) {
		return Booking{}, ErrInvalidStatus
	}

	b, err := s.GetForVet(ctx, bookingID, vetID)
	if err != nil {
		return Booking{}, err
	}

	b.Status = status
	b.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// DeleteForUser es hard delete, sin auditoría.
func (s *Service) DeleteForUser(ctx context.Context, bookingID, userID string) error {
	b, err := s.GetForUser(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, b.ID)
}
