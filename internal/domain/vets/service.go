package vets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-clinic-bookings/internal/domain/users"
	"pet-clinic-bookings/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidRange = errors.New("start must be before end")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo     Repository
	reg      RegistrationRepository
	userRepo users.Repository
	now      func() time.Time
}

func NewService(repo Repository, reg RegistrationRepository, userRepo users.Repository) *Service {
	return &Service{
		repo:     repo,
		reg:      reg,
		userRepo: userRepo,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string

	Specialty     Specialty
	Bio           string
	Phone         string
	ClinicName    string
	ClinicAddress string
	City          string
	StateRegion   string
	PostalCode    string
	Country       string
}

// Register crea cuenta vet + perfil profesional de forma atómica.
func (s *Service) Register(ctx context.Context, in RegisterInput) (users.User, Vet, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)

	if email == "" || !strings.Contains(email, "@") {
		return users.User{}, Vet{}, ErrInvalidInput
	}
	if fullName == "" || in.Password == "" {
		return users.User{}, Vet{}, ErrInvalidInput
	}

	specialty := in.Specialty
	if specialty == "" {
		specialty = SpecialtyGeneralPractice
	}
	if !ValidSpecialty(specialty) {
		return users.User{}, Vet{}, ErrInvalidInput
	}

	// Pre-chequeo de duplicado; el índice único de la DB resuelve carreras.
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return users.User{}, Vet{}, users.ErrEmailTaken
	} else if !errors.Is(err, users.ErrNotFound) {
		return users.User{}, Vet{}, err
	}

	hash, err := users.HashPassword(in.Password)
	if err != nil {
		return users.User{}, Vet{}, err
	}

	now := s.now()
	u := users.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         auth.RoleVet,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	v := Vet{
		ID:            uuid.NewString(),
		UserID:        u.ID,
		FullName:      fullName,
		Email:         email,
		Phone:         strings.TrimSpace(in.Phone),
		Specialty:     specialty,
		Bio:           strings.TrimSpace(in.Bio),
		ClinicName:    strings.TrimSpace(in.ClinicName),
		ClinicAddress: strings.TrimSpace(in.ClinicAddress),
		City:          strings.TrimSpace(in.City),
		StateRegion:   strings.TrimSpace(in.StateRegion),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Country:       strings.TrimSpace(in.Country),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.reg.CreateWithUser(ctx, u, v); err != nil {
		return users.User{}, Vet{}, err
	}
	return u, v, nil
}

func (s *Service) ListActive(ctx context.Context) ([]Vet, error) {
	return s.repo.ListActive(ctx)
}

// GetByID propaga tal cual: el repo devuelve ErrNotFound en ausencia y
// cualquier otro error es una falla de storage que debe llegar al 500.
func (s *Service) GetByID(ctx context.Context, id string) (Vet, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserID resuelve el perfil del vet actual. Si un usuario con rol
// vet no tiene perfil enlazado (anomalía de integridad) es not-found.
func (s *Service) GetByUserID(ctx context.Context, userID string) (Vet, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// ActiveVet lo consume el módulo bookings. Vet inexistente cuenta como
// inactivo; una falla de storage se propaga.
func (s *Service) ActiveVet(ctx context.Context, vetID string) (bool, error) {
	v, err := s.repo.GetByID(ctx, vetID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v.IsActive, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	FullName      *string
	Phone         *string
	Specialty     *Specialty
	Bio           *string
	ClinicName    *string
	ClinicAddress *string
	City          *string
	StateRegion   *string
	PostalCode    *string
	Country       *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateInput) (Vet, error) {
	v, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return Vet{}, err
	}

	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return Vet{}, ErrInvalidInput
		}
		v.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		v.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Specialty != nil {
		if !ValidSpecialty(*in.Specialty) {
			return Vet{}, ErrInvalidInput
		}
		v.Specialty = *in.Specialty
	}
	if in.Bio != nil {
		v.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.ClinicName != nil {
		v.ClinicName = strings.TrimSpace(*in.ClinicName)
	}
	if in.ClinicAddress != nil {
		v.ClinicAddress = strings.TrimSpace(*in.ClinicAddress)
	}
	if in.City != nil {
		v.City = strings.TrimSpace(*in.City)
	}
	if in.StateRegion != nil {
		v.StateRegion = strings.TrimSpace(*in.StateRegion)
	}
	if in.PostalCode != nil {
		v.PostalCode = strings.TrimSpace(*in.PostalCode)
	}
	if in.Country != nil {
		v.Country = strings.TrimSpace(*in.Country)
	}

	v.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, v); err != nil {
		return Vet{}, err
	}
	return v, nil
}

type WorkingHoursInput struct {
	Day       Day
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

func (s *Service) AddWorkingHours(ctx context.Context, vetID string, in WorkingHoursInput) (WorkingHours, error) {
	if !ValidDay(in.Day) {
		return WorkingHours{}, ErrInvalidInput
	}

	start, err := time.Parse("15:04", strings.TrimSpace(in.StartTime))
	if err != nil {
		return WorkingHours{}, ErrInvalidInput
	}
	end, err := time.Parse("15:04", strings.TrimSpace(in.EndTime))
	if err != nil {
		return WorkingHours{}, ErrInvalidInput
	}
	if !start.Before(end) {
		return WorkingHours{}, ErrInvalidRange
	}

	now := s.now()
	wh := WorkingHours{
		ID:        uuid.NewString(),
		VetID:     vetID,
		Day:       in.Day,
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateWorkingHours(ctx, wh); err != nil {
		return WorkingHours{}, err
	}
	return wh, nil
}

func (s *Service) ListWorkingHours(ctx context.Context, vetID string) ([]WorkingHours, error) {
	return s.repo.ListWorkingHoursByVet(ctx, vetID)
}

// DeleteWorkingHours: el fetch por id no tiene scope; el ownership se
// chequea acá. Una regla ajena es not-found, nunca forbidden.
func (s *Service) DeleteWorkingHours(ctx context.Context, vetID, workingHoursID string) error {
	wh, err := s.repo.GetWorkingHoursByID(ctx, workingHoursID)
	if err != nil {
		return err
	}
	if wh.VetID != vetID {
		return ErrNotFound
	}
	return s.repo.DeleteWorkingHours(ctx, wh.ID)
}

type TimeOffInput struct {
	StartAt time.Time
	EndAt   time.Time
	Reason  string
}

func (s *Service) AddTimeOff(ctx context.Context, vetID string, in TimeOffInput) (TimeOff, error) {
	if in.StartAt.IsZero() || in.EndAt.IsZero() {
		return TimeOff{}, ErrInvalidInput
	}
	if !in.StartAt.Before(in.EndAt) {
		return TimeOff{}, ErrInvalidRange
	}

	now := s.now()
	to := TimeOff{
		ID:        uuid.NewString(),
		VetID:     vetID,
		StartAt:   in.StartAt,
		EndAt:     in.EndAt,
		Reason:    strings.TrimSpace(in.Reason),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateTimeOff(ctx, to); err != nil {
		return TimeOff{}, err
	}
	return to, nil
}

func (s *Service) ListTimeOff(ctx context.Context, vetID string) ([]TimeOff, error) {
	return s.repo.ListTimeOffByVet(ctx, vetID)
}

func (s *Service) DeleteTimeOff(ctx context.Context, vetID, timeOffID string) error {
	to, err := s.repo.GetTimeOffByID(ctx, timeOffID)
	if err != nil {
		return err
	}
	if to.VetID != vetID {
		return ErrNotFound
	}
	return s.repo.DeleteTimeOff(ctx, to.ID)
}
