package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-clinic-bookings/internal/middleware"
	"pet-clinic-bookings/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// Todas las rutas de pets son owner-only (el rol vet recibe 403).
func RegisterRoutes(r chi.Router, svc *Service, g *middleware.Guard) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, g))
		pr.Get("/", listPetsHandler(svc, g))
		pr.Get("/{petID}", getPetHandler(svc, g))
		pr.Patch("/{petID}", updatePetHandler(svc, g))
		pr.Delete("/{petID}", deletePetHandler(svc, g))
	})
}

type createPetRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Sex         string `json:"sex"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD opcional
	Notes       string `json:"notes"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string `json:"name"`
	Species     *string `json:"species"`
	Breed       *string `json:"breed"`
	Sex         *string `json:"sex"`
	DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD; null limpia el campo
	Notes       *string `json:"notes"`
}

type petResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	Sex         string     `json:"sex"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func createPetHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.RequireOwner(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var dob *time.Time
		if strings.TrimSpace(req.DateOfBirth) != "" {
			t, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			dob = &t
		}

		p, err := svc.Create(r.Context(), user.UserID, CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Sex:         req.Sex,
			DateOfBirth: dob,
			Notes:       req.Notes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.RequireOwner(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		items, err := svc.ListByOwner(r.Context(), user.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.RequireOwner(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		p, err := svc.GetForOwner(r.Context(), chi.URLParam(r, "petID"), user.UserID)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.RequireOwner(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		// Decodificamos a map primero para detectar si date_of_birth
		// estuvo presente (null limpia, ausente no toca).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		dob := PatchDate{}
		if v, exists := raw["date_of_birth"]; exists {
			dob.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "date_of_birth must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "date_of_birth must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				dob.Value = &t
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), user.UserID, UpdateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Sex:         req.Sex,
			DateOfBirth: dob,
			Notes:       req.Notes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.RequireOwner(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), user.UserID); err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Sex:         p.Sex,
		DateOfBirth: p.DateOfBirth,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
