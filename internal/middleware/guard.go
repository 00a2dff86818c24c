package middleware

import (
	"errors"
	"net/http"
	"strings"

	"pet-clinic-bookings/internal/ports/auth"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Guard resuelve el usuario actual desde los claims del contexto y
// aplica chequeos de rol. Un token que referencia un usuario borrado
// cuenta como no autenticado, no como not-found; una falla del store
// se propaga tal cual para que el handler responda 500.
type Guard struct {
	ids auth.IdentityStore
}

func NewGuard(ids auth.IdentityStore) *Guard {
	return &Guard{ids: ids}
}

func (g *Guard) CurrentUser(r *http.Request) (auth.Identity, error) {
	claims, ok := GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return auth.Identity{}, ErrUnauthenticated
	}

	id, err := g.ids.IdentityByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownIdentity) {
			return auth.Identity{}, ErrUnauthenticated
		}
		return auth.Identity{}, err
	}
	return id, nil
}

func (g *Guard) RequireRole(r *http.Request, role auth.Role) (auth.Identity, error) {
	id, err := g.CurrentUser(r)
	if err != nil {
		return auth.Identity{}, err
	}
	if id.Role != role {
		return auth.Identity{}, ErrForbidden
	}
	return id, nil
}

func (g *Guard) RequireOwner(r *http.Request) (auth.Identity, error) {
	return g.RequireRole(r, auth.RoleOwner)
}

func (g *Guard) RequireVet(r *http.Request) (auth.Identity, error) {
	return g.RequireRole(r, auth.RoleVet)
}
