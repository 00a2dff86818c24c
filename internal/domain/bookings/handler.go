package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-clinic-bookings/internal/domain/pets"
	"pet-clinic-bookings/internal/domain/users"
	"pet-clinic-bookings/internal/domain/vets"
	"pet-clinic-bookings/internal/middleware"
	"pet-clinic-bookings/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, usersSvc *users.Service, vetsSvc *vets.Service, g *middleware.Guard) {
	r.Route("/bookings", func(br chi.Router) {
		br.Get("/", listBookingsHandler(svc, g))
		br.Post("/", createBookingHandler(svc, g))

		// Vista del vet asignado ("/vet" estático antes de "/{bookingID}")
		br.Get("/vet", listVetBookingsHandler(svc, vetsSvc, g))
		br.Get("/vet/{bookingID}", vetBookingDetailHandler(svc, petsSvc, usersSvc, vetsSvc, g))
		br.Patch("/vet/{bookingID}", updateVetBookingStatusHandler(svc, vetsSvc, g))

		br.Get("/{bookingID}", getBookingHandler(svc, g))
		br.Patch("/{bookingID}", updateBookingHandler(svc, g))
		br.Delete("/{bookingID}", deleteBookingHandler(svc, g))
	})
}

type createBookingRequest struct {
	PetID   string    `json:"pet_id"`
	VetID   string    `json:"vet_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reason  string    `json:"reason"`
}

type updateBookingRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	PetID   *string    `json:"pet_id"`
	VetID   *string    `json:"vet_id"`
	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
	Reason  *string    `json:"reason"`
}

type vetStatusUpdateRequest struct {
	BookingStatus string `json:"booking_status"`
}

type bookingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	PetID         string    `json:"pet_id"`
	VetID         string    `json:"vet_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	BookingStatus string    `json:"booking_status"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type petSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Species     string  `json:"species"`
	Breed       string  `json:"breed"`
	DateOfBirth *string `json:"date_of_birth"`
	Sex         string  `json:"sex"`
	Notes       string  `json:"notes"`
}

type ownerSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type vetBookingDetailResponse struct {
	bookingResponse
	Pet   *petSummary   `json:"pet"`
	Owner *ownerSummary `json:"owner"`
}

func createBookingHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.CurrentUser(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		var req createBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), user.UserID, CreateInput{
			PetID:   req.PetID,
			VetID:   req.VetID,
			StartAt: req.StartAt,
			EndAt:   req.EndAt,
			Reason:  req.Reason,
		})
		if err != nil {
			writeBookingError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

func listBookingsHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.CurrentUser(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		items, err := svc.ListForUser(r.Context(), user.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]bookingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBookingResponse(b))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getBookingHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.CurrentUser(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		b, err := svc.GetForUser(r.Context(), chi.URLParam(r, "bookingID"), user.UserID)
		if err != nil {
			writeBookingError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func updateBookingHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.CurrentUser(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		var req updateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.UpdateForUser(r.Context(), chi.URLParam(r, "bookingID"), user.UserID, UpdateInput{
			PetID:   req.PetID,
			VetID:   req.VetID,
			StartAt: req.StartAt,
			EndAt:   req.EndAt,
			Reason:  req.Reason,
		})
		if err != nil {
			writeBookingError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func deleteBookingHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.CurrentUser(r)
		if err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		if err := svc.DeleteForUser(r.Context(), chi.URLParam(r, "bookingID"), user.UserID); err != nil {
			writeBookingError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// currentVet resuelve guard (rol vet) + perfil enlazado.
func currentVet(vetsSvc *vets.Service, g *middleware.Guard, w http.ResponseWriter, r *http.Request) (vets.Vet, bool) {
	user, err := g.RequireVet(r)
	if err != nil {
		httpx.WriteGuardError(w, err)
		return vets.Vet{}, false
	}

	v, err := vetsSvc.GetByUserID(r.Context(), user.UserID)
	switch {
	case err == nil:
		return v, true
	case errors.Is(err, vets.ErrNotFound):
		http.Error(w, "vet profile not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return vets.Vet{}, false
}

func listVetBookingsHandler(svc *Service, vetsSvc *vets.Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVet(vetsSvc, g, w, r)
		if !ok {
			return
		}

		items, err := svc.ListForVet(r.Context(), v.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]bookingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBookingResponse(b))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func vetBookingDetailHandler(svc *Service, petsSvc *pets.Service, usersSvc *users.Service, vetsSvc *vets.Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVet(vetsSvc, g, w, r)
		if !ok {
			return
		}

		b, err := svc.GetForVet(r.Context(), chi.URLParam(r, "bookingID"), v.ID)
		if err != nil {
			writeBookingError(w, err)
			return
		}

		out := vetBookingDetailResponse{bookingResponse: toBookingResponse(b)}

		// El scope del booking ya autoriza al vet a ver estos resúmenes.
		if p, err := petsSvc.GetByID(r.Context(), b.PetID); err == nil {
			var dob *string
			if p.DateOfBirth != nil {
				s := p.DateOfBirth.Format("2006-01-02")
				dob = &s
			}
			out.Pet = &petSummary{
				ID:          p.ID,
				Name:        p.Name,
				Species:     p.Species,
				Breed:       p.Breed,
				DateOfBirth: dob,
				Sex:         p.Sex,
				Notes:       p.Notes,
			}
		}
		if u, err := usersSvc.GetByID(r.Context(), b.UserID); err == nil {
			out.Owner = &ownerSummary{
				ID:       u.ID,
				FullName: u.FullName,
				Email:    u.Email,
			}
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func updateVetBookingStatusHandler(svc *Service, vetsSvc *vets.Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVet(vetsSvc, g, w, r)
		if !ok {
			return
		}

		var req vetStatusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.UpdateStatusForVet(r.Context(), chi.URLParam(r, "bookingID"), v.ID, Status(req.BookingStatus))
		if err != nil {
			writeBookingError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func writeBookingError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput, ErrInvalidRange, ErrInvalidStatus:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrNotFound:
		// cubre booking ajeno, pet ajeno y vet inactivo por igual
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		PetID:         b.PetID,
		VetID:         b.VetID,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		BookingStatus: string(b.Status),
		Reason:        b.Reason,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
