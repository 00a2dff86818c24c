package auth

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownIdentity indica que el subject del token no referencia un
// usuario existente. Cualquier otro error del store es una falla de
// infraestructura y no debe tratarse como identidad inválida.
var ErrUnknownIdentity = errors.New("unknown identity")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token para un subject. El TTL lo decide la implementación.
type TokenIssuer interface {
	Issue(ctx context.Context, subjectID string) (token string, expiresAt time.Time, err error)
}

// IdentityStore resuelve el subject de un token a un usuario vivo.
// Devuelve ErrUnknownIdentity si el usuario ya no existe; el guard lo
// trata como no autenticado.
type IdentityStore interface {
	IdentityByID(ctx context.Context, userID string) (Identity, error)
}
