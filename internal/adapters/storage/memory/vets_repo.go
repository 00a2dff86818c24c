package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-clinic-bookings/internal/domain/vets"
)

type VetRepo struct {
	mu        sync.RWMutex
	byID      map[string]vets.Vet
	byUserID  map[string]string // user id => vet id
	hoursByID map[string]vets.WorkingHours
	offByID   map[string]vets.TimeOff
}

func NewVetRepo() *VetRepo {
	return &VetRepo{
		byID:      make(map[string]vets.Vet),
		byUserID:  make(map[string]string),
		hoursByID: make(map[string]vets.WorkingHours),
		offByID:   make(map[string]vets.TimeOff),
	}
}

func (r *VetRepo) createLocked(v vets.Vet) error {
	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vet id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vet already exists")
	}
	if _, exists := r.byUserID[v.UserID]; exists {
		return errors.New("vet profile already exists for user")
	}
	r.byID[v.ID] = v
	r.byUserID[v.UserID] = v.ID
	return nil
}

func (r *VetRepo) GetByID(ctx context.Context, id string) (vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vets.Vet{}, vets.ErrNotFound
	}
	return v, nil
}

func (r *VetRepo) GetByUserID(ctx context.Context, userID string) (vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserID[userID]
	if !ok {
		return vets.Vet{}, vets.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *VetRepo) ListActive(ctx context.Context) ([]vets.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vets.Vet, 0)
	for _, v := range r.byID {
		if v.IsActive {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *VetRepo) Update(ctx context.Context, v vets.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return vets.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *VetRepo) CreateWorkingHours(ctx context.Context, wh vets.WorkingHours) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(wh.ID) == "" {
		return errors.New("working hours id required")
	}
	r.hoursByID[wh.ID] = wh
	return nil
}

func (r *VetRepo) ListWorkingHoursByVet(ctx context.Context, vetID string) ([]vets.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vets.WorkingHours, 0)
	for _, wh := range r.hoursByID {
		if wh.VetID == vetID {
			out = append(out, wh)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *VetRepo) GetWorkingHoursByID(ctx context.Context, id string) (vets.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wh, ok := r.hoursByID[id]
	if !ok {
		return vets.WorkingHours{}, vets.ErrNotFound
	}
	return wh, nil
}

func (r *VetRepo) DeleteWorkingHours(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hoursByID[id]; !ok {
		return vets.ErrNotFound
	}
	delete(r.hoursByID, id)
	return nil
}

func (r *VetRepo) CreateTimeOff(ctx context.Context, to vets.TimeOff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(to.ID) == "" {
		return errors.New("time off id required")
	}
	r.offByID[to.ID] = to
	return nil
}

func (r *VetRepo) ListTimeOffByVet(ctx context.Context, vetID string) ([]vets.TimeOff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vets.TimeOff, 0)
	for _, to := range r.offByID {
		if to.VetID == vetID {
			out = append(out, to)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *VetRepo) GetTimeOffByID(ctx context.Context, id string) (vets.TimeOff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	to, ok := r.offByID[id]
	if !ok {
		return vets.TimeOff{}, vets.ErrNotFound
	}
	return to, nil
}

func (r *VetRepo) DeleteTimeOff(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offByID[id]; !ok {
		return vets.ErrNotFound
	}
	delete(r.offByID, id)
	return nil
}
