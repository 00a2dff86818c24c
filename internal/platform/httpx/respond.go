package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-clinic-bookings/internal/middleware"
)

// WriteJSON era un helper duplicado por módulo; al repetirse en cuatro
// módulos lo extraemos acá.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteGuardError mapea los errores del Guard: rol incorrecto => 403,
// identidad ausente o token inválido => 401, falla del store => 500.
func WriteGuardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, middleware.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, middleware.ErrUnauthenticated):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
