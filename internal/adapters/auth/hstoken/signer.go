package hstoken

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-clinic-bookings/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 30 * time.Minute

var (
	ErrSecretEmpty  = errors.New("signing secret is empty")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Signer implementa auth.TokenIssuer y auth.AuthVerifier con JWT HS256.
// Payload: {sub, exp}. TTL fijo de 30 minutos.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrSecretEmpty
	}
	return &Signer{
		secret: secret,
		ttl:    TokenTTL,
		now:    time.Now,
	}, nil
}

func (s *Signer) Issue(ctx context.Context, subjectID string) (string, time.Time, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return "", time.Time{}, ErrInvalidToken
	}

	expiresAt := s.now().Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *Signer) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	rc, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || strings.TrimSpace(rc.Subject) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{UserID: strings.TrimSpace(rc.Subject)}, nil
}
