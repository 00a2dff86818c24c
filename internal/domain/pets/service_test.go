package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetForOwner(ctx context.Context, petID, ownerUserID string) (Pet, error) {
	p, ok := r.byID[petID]
	if !ok || p.OwnerUserID != ownerUserID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_TrimsAndStamps(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:    "  Rex ",
		Species: "dog",
		Breed:   "mestizo",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Name != "Rex" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.OwnerUserID != "owner-1" {
		t.Fatalf("expected owner set, got %q", p.OwnerUserID)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RequiresNameAndSpecies(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Species: "dog"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without species, got %v", err)
	}
}

func TestService_GetForOwner_ForeignPetIsNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Species: "dog"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// otro owner pidiendo la misma mascota: misma ausencia que inexistente
	if _, err := svc.GetForOwner(context.Background(), p.ID, "owner-2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign pet, got %v", err)
	}
	if _, err := svc.GetForOwner(context.Background(), "no-existe", "owner-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing pet, got %v", err)
	}
}

func TestService_Update_PatchSemantics(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(5 * time.Minute)
	svc.now = func() time.Time { return now1 }

	dob := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:        "Rex",
		Species:     "dog",
		Breed:       "mestizo",
		DateOfBirth: &dob,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	name := "Rexo"
	updated, err := svc.Update(context.Background(), p.ID, "owner-1", UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "Rexo" {
		t.Fatalf("expected name patched, got %q", updated.Name)
	}
	// campos no enviados quedan intactos
	if updated.Breed != "mestizo" || updated.DateOfBirth == nil {
		t.Fatalf("expected untouched fields to survive patch: %+v", updated)
	}
	if updated.UpdatedAt != now2 || updated.CreatedAt != now1 {
		t.Fatalf("expected only UpdatedAt to move")
	}
}

func TestService_Update_NullDateClears(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	dob := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:        "Rex",
		Species:     "dog",
		DateOfBirth: &dob,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Present sin Value => enviar null => limpiar
	updated, err := svc.Update(context.Background(), p.ID, "owner-1", UpdateInput{
		DateOfBirth: PatchDate{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.DateOfBirth != nil {
		t.Fatalf("expected date_of_birth cleared, got %v", updated.DateOfBirth)
	}
}

func TestService_Update_EmptyNameRejected(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Species: "dog"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	empty := "  "
	if _, err := svc.Update(context.Background(), p.ID, "owner-1", UpdateInput{Name: &empty}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestService_Delete_ScopedToOwner(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Species: "dog"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID, "owner-2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound deleting foreign pet, got %v", err)
	}
	if _, ok := repo.byID[p.ID]; !ok {
		t.Fatalf("foreign delete must not remove the pet")
	}

	if err := svc.Delete(context.Background(), p.ID, "owner-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.byID[p.ID]; ok {
		t.Fatalf("expected pet removed")
	}
}

func TestService_OwnerHasPet(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Species: "dog"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	ok, err := svc.OwnerHasPet(context.Background(), p.ID, "owner-1")
	if err != nil || !ok {
		t.Fatalf("expected owner to have pet, ok=%v err=%v", ok, err)
	}
	ok, err = svc.OwnerHasPet(context.Background(), p.ID, "owner-2")
	if err != nil || ok {
		t.Fatalf("expected foreign owner not to have pet, ok=%v err=%v", ok, err)
	}
}

// faultRepo simula una falla de storage en la lectura scoped.
type faultRepo struct {
	*testRepo
	err error
}

func (r *faultRepo) GetForOwner(ctx context.Context, petID, ownerUserID string) (Pet, error) {
	return Pet{}, r.err
}

func TestService_StorageFaultIsNotNotFound(t *testing.T) {
	boom := errors.New("connection reset by peer")
	svc := NewService(&faultRepo{testRepo: newTestRepo(), err: boom})

	if _, err := svc.GetForOwner(context.Background(), "p-1", "owner-1"); !errors.Is(err, boom) {
		t.Fatalf("GetForOwner: expected storage error, got %v", err)
	}

	ok, err := svc.OwnerHasPet(context.Background(), "p-1", "owner-1")
	if !errors.Is(err, boom) {
		t.Fatalf("OwnerHasPet: expected storage error, got %v", err)
	}
	if ok {
		t.Fatalf("OwnerHasPet must not report ownership on storage fault")
	}
}
