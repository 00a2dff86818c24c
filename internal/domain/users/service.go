package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-clinic-bookings/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     auth.Role
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)

	if email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidInput
	}
	if fullName == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}

	role := in.Role
	if role == "" {
		role = auth.RoleOwner
	}
	if !auth.ValidRole(role) {
		return User{}, ErrInvalidInput
	}

	// Pre-chequeo de duplicado; el índice único de la DB resuelve carreras.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      auth.Role
}

// Login verifica credenciales y emite un token. Email inexistente y
// password incorrecta devuelven el mismo error, sin distinguirlos.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(ctx, u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      u.Role,
	}, nil
}

// GetByID propaga tal cual: el repo devuelve ErrNotFound en ausencia y
// cualquier otro error es una falla de storage que debe llegar al 500.
func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// IdentityByID implementa auth.IdentityStore para el Guard.
func (s *Service) IdentityByID(ctx context.Context, userID string) (auth.Identity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.Identity{}, auth.ErrUnknownIdentity
		}
		return auth.Identity{}, err
	}
	return auth.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}, nil
}
