package vets

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-clinic-bookings/internal/domain/users"
	"pet-clinic-bookings/internal/middleware"
	"pet-clinic-bookings/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, g *middleware.Guard) {
	r.Route("/vets", func(vr chi.Router) {
		vr.Post("/register", registerVetHandler(svc))
		vr.Get("/", listVetsHandler(svc, g))

		// Perfil propio (rol vet)
		vr.Get("/me", myProfileHandler(svc, g))
		vr.Patch("/me", updateMyProfileHandler(svc, g))

		vr.Route("/me/working-hours", func(wr chi.Router) {
			wr.Get("/", listWorkingHoursHandler(svc, g))
			wr.Post("/", addWorkingHoursHandler(svc, g))
			wr.Delete("/{workingHoursID}", deleteWorkingHoursHandler(svc, g))
		})

		vr.Route("/me/time-off", func(tr chi.Router) {
			tr.Get("/", listTimeOffHandler(svc, g))
			tr.Post("/", addTimeOffHandler(svc, g))
			tr.Delete("/{timeOffID}", deleteTimeOffHandler(svc, g))
		})

		// Directorio público (con bearer, cualquier rol)
		vr.Get("/{vetID}", getVetHandler(svc, g))
	})
}

type registerVetRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`

	Specialty     string `json:"specialty"`
	Bio           string `json:"bio"`
	Phone         string `json:"phone"`
	ClinicName    string `json:"clinic_name"`
	ClinicAddress string `json:"clinic_address"`
	City          string `json:"city"`
	StateRegion   string `json:"state_region"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

type registerVetResponse struct {
	UserID string `json:"user_id"`
	VetID  string `json:"vet_id"`
}

type updateVetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	FullName      *string `json:"full_name"`
	Phone         *string `json:"phone"`
	Specialty     *string `json:"specialty"`
	Bio           *string `json:"bio"`
	ClinicName    *string `json:"clinic_name"`
	ClinicAddress *string `json:"clinic_address"`
	City          *string `json:"city"`
	StateRegion   *string `json:"state_region"`
	PostalCode    *string `json:"postal_code"`
	Country       *string `json:"country"`
}

type vetResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Specialty     string    `json:"specialty"`
	Bio           string    `json:"bio"`
	ClinicName    string    `json:"clinic_name"`
	ClinicAddress string    `json:"clinic_address"`
	City          string    `json:"city"`
	StateRegion   string    `json:"state_region"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type workingHoursRequest struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

type workingHoursResponse struct {
	ID        string    `json:"id"`
	VetID     string    `json:"vet_id"`
	Day       string    `json:"day"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type timeOffRequest struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Reason  string    `json:"reason"`
}

type timeOffResponse struct {
	ID        string    `json:"id"`
	VetID     string    `json:"vet_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func registerVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, v, err := svc.Register(r.Context(), RegisterInput{
			Email:         req.Email,
			FullName:      req.FullName,
			Password:      req.Password,
			Specialty:     Specialty(req.Specialty),
			Bio:           req.Bio,
			Phone:         req.Phone,
			ClinicName:    req.ClinicName,
			ClinicAddress: req.ClinicAddress,
			City:          req.City,
			StateRegion:   req.StateRegion,
			PostalCode:    req.PostalCode,
			Country:       req.Country,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case users.ErrEmailTaken:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, registerVetResponse{
			UserID: u.ID,
			VetID:  v.ID,
		})
	}
}

func listVetsHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := g.CurrentUser(r); err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		items, err := svc.ListActive(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getVetHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := g.CurrentUser(r); err != nil {
			httpx.WriteGuardError(w, err)
			return
		}

		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "vet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVetResponse(v))
	}
}

// currentVetProfile resuelve guard (rol vet) + perfil enlazado.
func currentVetProfile(svc *Service, g *middleware.Guard, w http.ResponseWriter, r *http.Request) (Vet, bool) {
	user, err := g.RequireVet(r)
	if err != nil {
		httpx.WriteGuardError(w, err)
		return Vet{}, false
	}

	v, err := svc.GetByUserID(r.Context(), user.UserID)
	switch {
	case err == nil:
		return v, true
	case err == ErrNotFound:
		http.Error(w, "vet profile not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return Vet{}, false
}

func myProfileHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func updateMyProfileHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}

		var req updateVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var specialty *Specialty
		if req.Specialty != nil {
			s := Specialty(*req.Specialty)
			specialty = &s
		}

		updated, err := svc.UpdateProfile(r.Context(), v.UserID, UpdateInput{
			FullName:      req.FullName,
			Phone:         req.Phone,
			Specialty:     specialty,
			Bio:           req.Bio,
			ClinicName:    req.ClinicName,
			ClinicAddress: req.ClinicAddress,
			City:          req.City,
			StateRegion:   req.StateRegion,
			PostalCode:    req.PostalCode,
			Country:       req.Country,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "vet profile not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toVetResponse(updated))
	}
}

func listWorkingHoursHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}

		items, err := svc.ListWorkingHours(r.Context(), v.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]workingHoursResponse, 0, len(items))
		for _, wh := range items {
			out = append(out, toWorkingHoursResponse(wh))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func addWorkingHoursHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}

		var req workingHoursRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		wh, err := svc.AddWorkingHours(r.Context(), v.ID, WorkingHoursInput{
			Day:       Day(req.Day),
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput, ErrInvalidRange:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toWorkingHoursResponse(wh))
	}
}

func deleteWorkingHoursHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}

		if err := svc.DeleteWorkingHours(r.Context(), v.ID, chi.URLParam(r, "workingHoursID")); err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "working hours not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listTimeOffHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}

		items, err := svc.ListTimeOff(r.Context(), v.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]timeOffResponse, 0, len(items))
		for _, to := range items {
			out = append(out, toTimeOffResponse(to))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func addTimeOffHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}

		var req timeOffRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		to, err := svc.AddTimeOff(r.Context(), v.ID, TimeOffInput{
			StartAt: req.StartAt,
			EndAt:   req.EndAt,
			Reason:  req.Reason,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput, ErrInvalidRange:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toTimeOffResponse(to))
	}
}

func deleteTimeOffHandler(svc *Service, g *middleware.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := currentVetProfile(svc, g, w, r)
		if !ok {
			return
		}

		if err := svc.DeleteTimeOff(r.Context(), v.ID, chi.URLParam(r, "timeOffID")); err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "time off not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toVetResponse(v Vet) vetResponse {
	return vetResponse{
		ID:            v.ID,
		UserID:        v.UserID,
		FullName:      v.FullName,
		Email:         v.Email,
		Phone:         v.Phone,
		Specialty:     string(v.Specialty),
		Bio:           v.Bio,
		ClinicName:    v.ClinicName,
		ClinicAddress: v.ClinicAddress,
		City:          v.City,
		StateRegion:   v.StateRegion,
		PostalCode:    v.PostalCode,
		Country:       v.Country,
		IsActive:      v.IsActive,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toWorkingHoursResponse(wh WorkingHours) workingHoursResponse {
	return workingHoursResponse{
		ID:        wh.ID,
		VetID:     wh.VetID,
		Day:       string(wh.Day),
		StartTime: wh.StartTime,
		EndTime:   wh.EndTime,
		IsActive:  wh.IsActive,
		CreatedAt: wh.CreatedAt,
		UpdatedAt: wh.UpdatedAt,
	}
}

func toTimeOffResponse(to TimeOff) timeOffResponse {
	return timeOffResponse{
		ID:        to.ID,
		VetID:     to.VetID,
		StartAt:   to.StartAt,
		EndAt:     to.EndAt,
		Reason:    to.Reason,
		CreatedAt: to.CreatedAt,
		UpdatedAt: to.UpdatedAt,
	}
}
