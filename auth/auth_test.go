package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mbolis/formpilot/fault"
	"github.com/mbolis/formpilot/model"
	"golang.org/x/crypto/bcrypt"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (m *memoryUsers) Insert(ctx context.Context, email, passwordHash string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; ok {
		return model.User{}, fault.ErrUniqueViolation
	}
	u := model.User{ID: "user-" + email, Email: email, PasswordHash: passwordHash}
	m.users[email] = u
	return u, nil
}

func (m *memoryUsers) FindByEmail(ctx context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return model.User{}, fault.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *memoryUsers, *Tokens) {
	t.Helper()
	users := &memoryUsers{users: map[string]model.User{}}
	tokens := NewTokens("test-secret", time.Hour)
	svc, err := NewService(users, tokens, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, users, tokens
}

func TestRegister(t *testing.T) {
	svc, users, _ := newTestService(t)

	user, err := svc.Register(context.Background(), "  Ann@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ann@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	stored := users.users["ann@example.com"]
	if stored.PasswordHash == "secret1" || bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")) != nil {
		t.Errorf("expected a bcrypt hash of the password to be stored")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
		detail   string
	}{
		{name: "bad email", email: "not-an-email", password: "secret1", detail: "email must be a valid email address"},
		{name: "missing email", email: "", password: "secret1", detail: "email is required"},
		{name: "short password", email: "a@x.com", password: "12345", detail: "password must be at least 6 characters"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password)
			var f *fault.Fault
			if !errors.As(err, &f) || f.Kind != fault.Validation {
				t.Fatalf("expected validation fault, got %v", err)
			}
			if !strings.Contains(strings.Join(f.Details, "\n"), tc.detail) {
				t.Errorf("expected %q in %v", tc.detail, f.Details)
			}
		})
	}
}

func TestLongPasswords(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "80 ascii characters", email: "long@x.com", password: strings.Repeat("p", 80)},
		{name: "multibyte over 72 bytes", email: "utf@x.com", password: strings.Repeat("é", 40)},
		{name: "multibyte cut mid rune", email: "rune@x.com", password: "a" + strings.Repeat("€", 30)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			ctx := context.Background()

			if _, err := svc.Register(ctx, tc.email, tc.password); err != nil {
				t.Fatalf("unexpected register error: %v", err)
			}
			if _, err := svc.Login(ctx, tc.email, tc.password); err != nil {
				t.Fatalf("unexpected login error: %v", err)
			}
			if _, err := svc.Login(ctx, tc.email, "short1"); !fault.Is(err, fault.Credentials) {
				t.Fatalf("expected credentials fault for another password, got %v", err)
			}
		})
	}
}

func TestRegisterTwiceIsConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(ctx, "A@X.com", "secret2")
	if !fault.Is(err, fault.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := svc.Login(ctx, "A@x.com", "secret1")
	if err != nil {
		t.Fatalf("expected case-insensitive login, got %v", err)
	}
	id, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}
	if id != user.ID {
		t.Errorf("expected token bound to %q, got %q", user.ID, id)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	svc.Register(ctx, "a@x.com", "secret1")

	_, wrongPassword := svc.Login(ctx, "a@x.com", "nope")
	_, unknownEmail := svc.Login(ctx, "b@x.com", "secret1")

	for _, err := range []error{wrongPassword, unknownEmail} {
		if !fault.Is(err, fault.Credentials) {
			t.Fatalf("expected credentials fault, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("expected identical errors, got %q and %q", wrongPassword, unknownEmail)
	}
}
