package bookings

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
	byID map[string]Booking
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Booking{}}
}

func (r *testRepo) Create(ctx context.Context, b Booking) error {
	if b.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) Update(ctx context.Context, b Booking) error {
	if _, ok := r.byID[b.ID]; !ok {
		return ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetForUser(ctx context.Context, bookingID, userID string) (Booking, error) {
	b, ok := r.byID[bookingID]
	if !ok || b.UserID != userID {
		return Booking{}, ErrNotFound
	}
	return b, nil
}

func (r *testRepo) GetForVet(ctx context.Context, bookingID, vetID string) (Booking, error) {
	b, ok := r.byID[bookingID]
	if !ok || b.VetID != vetID {
		return Booking{}, ErrNotFound
	}
	return b, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	out := make([]Booking, 0)
	for _, b := range r.byID {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *testRepo) ListByVet(ctx context.Context, vetID string) ([]Booking, error) {
	out := make([]Booking, 0)
	for _, b := range r.byID {
		if b.VetID == vetID {
			out = append(out, b)
		}
	}
	return out, nil
}

// testPetDir: mapa (petID, ownerUserID) => existe
type testPetDir struct {
	owned map[string]string // petID => ownerUserID
}

func (d *testPetDir) OwnerHasPet(ctx context.Context, petID, ownerUserID string) (bool, error) {
	owner, ok := d.owned[petID]
	return ok && owner == ownerUserID, nil
}

type testVetDir struct {
	active map[string]bool // vetID => is_active
}

func (d *testVetDir) ActiveVet(ctx context.Context, vetID string) (bool, error) {
	return d.active[vetID], nil
}

func newTestService() (*Service, *testRepo, *testPetDir, *testVetDir) {
	repo := newTestRepo()
	petDir := &testPetDir{owned: map[string]string{"pet-1": "owner-1"}}
	vetDir := &testVetDir{active: map[string]bool{"vet-1": true}}
	return NewService(repo, petDir, vetDir), repo, petDir, vetDir
}

func validCreate() CreateInput {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return CreateInput{
		PetID:   "pet-1",
		VetID:   "vet-1",
		StartAt: start,
		EndAt:   start.Add(30 * time.Minute),
		Reason:  "control anual",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_StartsPending(t *testing.T) {
	svc, _, _, _ := newTestService()

	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", b.Status)
	}
	if b.UserID != "owner-1" || b.PetID != "pet-1" || b.VetID != "vet-1" {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if b.CreatedAt != now || b.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_InvalidRange(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := validCreate()
	in.EndAt = in.StartAt
	if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for empty window, got %v", err)
	}

	in = validCreate()
	in.StartAt, in.EndAt = in.EndAt, in.StartAt
	if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for inverted window, got %v", err)
	}
}

func TestService_Create_ForeignPetIsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	// pet-1 es de owner-1; owner-2 no puede reservar con ella
	if _, err := svc.Create(context.Background(), "owner-2", validCreate()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign pet, got %v", err)
	}

	in := validCreate()
	in.PetID = "no-existe"
	if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing pet, got %v", err)
	}
}

func TestService_Create_InactiveVetIsNotFound(t *testing.T) {
	svc, _, _, vetDir := newTestService()

	vetDir.active["vet-1"] = false
	if _, err := svc.Create(context.Background(), "owner-1", validCreate()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for inactive vet, got %v", err)
	}

	in := validCreate()
	in.VetID = "no-existe"
	if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing vet, got %v", err)
	}
}

func TestService_GetForUser_ForeignBookingIsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.GetForUser(context.Background(), b.ID, "owner-2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign booking, got %v", err)
	}
	if _, err := svc.GetForVet(context.Background(), b.ID, "vet-2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unassigned vet, got %v", err)
	}
}

func TestService_UpdateForUser_PatchRevalidatesEffectiveRange(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// mover solo el inicio después del fin actual debe fallar
	badStart := b.EndAt.Add(time.Hour)
	if _, err := svc.UpdateForUser(context.Background(), b.ID, "owner-1", UpdateInput{
		StartAt: &badStart,
	}); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange for start after current end, got %v", err)
	}

	// mover ambos a una ventana válida funciona
	newStart := b.StartAt.Add(24 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	updated, err := svc.UpdateForUser(context.Background(), b.ID, "owner-1", UpdateInput{
		StartAt: &newStart,
		EndAt:   &newEnd,
	})
	if err != nil {
		t.Fatalf("UpdateForUser error: %v", err)
	}
	if !updated.StartAt.Equal(newStart) || !updated.EndAt.Equal(newEnd) {
		t.Fatalf("expected window moved, got %+v", updated)
	}
	// campos no enviados quedan intactos
	if updated.Reason != "control anual" || updated.Status != StatusPending {
		t.Fatalf("expected untouched fields to survive patch: %+v", updated)
	}
}

func TestService_UpdateForUser_ForeignPetInPatch(t *testing.T) {
	svc, _, petDir, _ := newTestService()
	petDir.owned["pet-2"] = "owner-2"

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	foreign := "pet-2"
	if _, err := svc.UpdateForUser(context.Background(), b.ID, "owner-1", UpdateInput{
		PetID: &foreign,
	}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound patching to foreign pet, got %v", err)
	}
}

func TestService_UpdateStatusForVet_OverwritesWithoutTransitions(t *testing.T) {
	svc, _, _, _ := newTestService()

	now1 := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	now2 := now1.Add(time.Hour)
	svc.now = func() time.Time { return now1 }

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	updated, err := svc.UpdateStatusForVet(context.Background(), b.ID, "vet-1", StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatusForVet error: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.UpdatedAt != now2 {
		t.Fatalf("expected UpdatedAt to move on status change")
	}

	// cualquier valor enumerado vale, incluso "hacia atrás"
	updated, err = svc.UpdateStatusForVet(context.Background(), b.ID, "vet-1", StatusPending)
	if err != nil {
		t.Fatalf("UpdateStatusForVet #2 error: %v", err)
	}
	if updated.Status != StatusPending {
		t.Fatalf("expected pending after overwrite, got %s", updated.Status)
	}
}

func TestService_UpdateStatusForVet_RejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.UpdateStatusForVet(context.Background(), b.ID, "vet-1", "done"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestService_UpdateStatusForVet_UnassignedVetIsNotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.UpdateStatusForVet(context.Background(), b.ID, "vet-2", StatusConfirmed); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unassigned vet, got %v", err)
	}
	if repo.byID[b.ID].Status != StatusPending {
		t.Fatalf("unassigned vet must not change the status")
	}
}

func TestService_DeleteForUser_Scoped(t *testing.T) {
	svc, repo, _, _ := newTestService()

	b, err := svc.Create(context.Background(), "owner-1", validCreate())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.DeleteForUser(context.Background(), b.ID, "owner-2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound deleting foreign booking, got %v", err)
	}
	if _, ok := repo.byID[b.ID]; !ok {
		t.Fatalf("foreign delete must not remove the booking")
	}

	if err := svc.DeleteForUser(context.Background(), b.ID, "owner-1"); err != nil {
		t.Fatalf("DeleteForUser error: %v", err)
	}
	if _, ok := repo.byID[b.ID]; ok {
		t.Fatalf("expected booking removed")
	}
}

// faultRepo simula una falla de storage en las lecturas scoped.
type faultRepo struct {
	*testRepo
	err error
}

func (r *faultRepo) GetForUser(ctx context.Context, bookingID, userID string) (Booking, error) {
	return Booking{}, r.err
}

func (r *faultRepo) GetForVet(ctx context.Context, bookingID, vetID string) (Booking, error) {
	return Booking{}, r.err
}

func TestService_StorageFaultIsNotNotFound(t *testing.T) {
	boom := errors.New("pq: connection reset by peer")
	repo := &faultRepo{testRepo: newTestRepo(), err: boom}
	petDir := &testPetDir{owned: map[string]string{"pet-1": "owner-1"}}
	vetDir := &testVetDir{active: map[string]bool{"vet-1": true}}
	svc := NewService(repo, petDir, vetDir)

	if _, err := svc.GetForUser(context.Background(), "b-1", "owner-1"); !errors.Is(err, boom) {
		t.Fatalf("GetForUser: expected storage error, got %v", err)
	}
	if _, err := svc.GetForVet(context.Background(), "b-1", "vet-1"); !errors.Is(err, boom) {
		t.Fatalf("GetForVet: expected storage error, got %v", err)
	}
	if _, err := svc.UpdateStatusForVet(context.Background(), "b-1", "vet-1", StatusConfirmed); !errors.Is(err, boom) {
		t.Fatalf("UpdateStatusForVet: expected storage error, got %v", err)
	}
	if err := svc.DeleteForUser(context.Background(), "b-1", "owner-1"); !errors.Is(err, boom) {
		t.Fatalf("DeleteForUser: expected storage error, got %v", err)
	}
}
