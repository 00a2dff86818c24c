package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-clinic-bookings/internal/ports/auth"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]User
	byEmail map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:    map[string]User{},
		byEmail: map[string]string{},
	}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if u.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// faultRepo simula una falla de storage en las lecturas.
type faultRepo struct {
	*testRepo
	err error
}

func (r *faultRepo) GetByID(ctx context.Context, id string) (User, error) {
	return User{}, r.err
}

func (r *faultRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return User{}, r.err
}

type testIssuer struct {
	token     string
	expiresAt time.Time
	lastSub   string
}

func (i *testIssuer) Issue(ctx context.Context, subjectID string) (string, time.Time, error) {
	i.lastSub = subjectID
	return i.token, i.expiresAt, nil
}

var _ auth.TokenIssuer = (*testIssuer)(nil)

// -------------------------
// Tests
// -------------------------

func TestService_Register_DefaultsToOwner_AndNormalizesEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		FullName: "Ana Gómez",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.Role != auth.RoleOwner {
		t.Fatalf("expected default role owner, got %s", u.Role)
	}
	if !u.IsActive {
		t.Fatalf("expected new user active")
	}
	if u.CreatedAt != now || u.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
}

func TestService_Register_RejectsBadInput(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	cases := []RegisterInput{
		{Email: "", FullName: "Ana", Password: "x"},
		{Email: "no-arroba", FullName: "Ana", Password: "x"},
		{Email: "a@b.com", FullName: "", Password: "x"},
		{Email: "a@b.com", FullName: "Ana", Password: ""},
		{Email: "a@b.com", FullName: "Ana", Password: "x", Role: "admin"},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); err != ErrInvalidInput {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	in := RegisterInput{Email: "ana@example.com", FullName: "Ana", Password: "secret123"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("Register #1 error: %v", err)
	}

	// misma cuenta con otra capitalización: mismo email normalizado
	in.Email = "ANA@example.com"
	if _, err := svc.Register(context.Background(), in); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Login_ReturnsTokenAndRole(t *testing.T) {
	repo := newTestRepo()
	exp := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)
	issuer := &testIssuer{token: "tok-1", expiresAt: exp}
	svc := NewService(repo, issuer)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		FullName: "Ana",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	res, err := svc.Login(context.Background(), "ANA@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.Token != "tok-1" || res.ExpiresAt != exp {
		t.Fatalf("unexpected login result: %+v", res)
	}
	if res.Role != auth.RoleOwner {
		t.Fatalf("expected role owner in login result, got %s", res.Role)
	}
	if issuer.lastSub != u.ID {
		t.Fatalf("expected token issued for %s, got %s", u.ID, issuer.lastSub)
	}
}

func TestService_Login_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		FullName: "Ana",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), "nadie@example.com", "secret123")
	_, errBadPass := svc.Login(context.Background(), "ana@example.com", "wrong")

	if errUnknown != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errUnknown)
	}
	if errBadPass != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", errBadPass)
	}
}

func TestService_IdentityByID(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testIssuer{})

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		FullName: "Ana Gómez",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	id, err := svc.IdentityByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("IdentityByID error: %v", err)
	}
	if id.UserID != u.ID || id.Email != u.Email || id.Role != u.Role {
		t.Fatalf("unexpected identity: %+v", id)
	}

	if _, err := svc.IdentityByID(context.Background(), "no-existe"); err != auth.ErrUnknownIdentity {
		t.Fatalf("expected ErrUnknownIdentity, got %v", err)
	}
}

func TestService_StorageFaultIsNotNotFound(t *testing.T) {
	boom := errors.New("connection reset by peer")
	svc := NewService(&faultRepo{testRepo: newTestRepo(), err: boom}, &testIssuer{})

	if _, err := svc.GetByID(context.Background(), "u-1"); !errors.Is(err, boom) {
		t.Fatalf("GetByID: expected storage error, got %v", err)
	}
	if _, err := svc.IdentityByID(context.Background(), "u-1"); !errors.Is(err, boom) {
		t.Fatalf("IdentityByID: expected storage error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ana@example.com", "secret123"); !errors.Is(err, boom) {
		t.Fatalf("Login: expected storage error, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		FullName: "Ana",
		Password: "secret123",
	}); !errors.Is(err, boom) {
		t.Fatalf("Register: expected storage error, got %v", err)
	}
}
