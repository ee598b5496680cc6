package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mbolis/formpilot/fault"
)

func TestTokenLifetime(t *testing.T) {
	tests := []struct {
		name     string
		issuedAt time.Duration
		wantErr  bool
	}{
		{name: "fresh token", issuedAt: 0},
		{name: "59 minutes old", issuedAt: -59 * time.Minute},
		{name: "61 minutes old", issuedAt: -61 * time.Minute, wantErr: true},
		{name: "a day old", issuedAt: -24 * time.Hour, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens := NewTokens("test-secret", time.Hour)
			tokens.now = func() time.Time { return time.Now().Add(tc.issuedAt) }

			token, err := tokens.Issue("user-1")
			if err != nil {
				t.Fatalf("issue: %v", err)
			}
			id, err := tokens.Verify(token)
			if tc.wantErr {
				if !fault.Is(err, fault.Forbidden) {
					t.Fatalf("expected forbidden fault, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != "user-1" {
				t.Errorf("expected user-1, got %q", id)
			}
		})
	}
}

func TestTokenSignature(t *testing.T) {
	issued, err := NewTokens("secret-a", time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, token := range map[string]string{
		"other secret": issued,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewTokens("secret-b", time.Hour).Verify(token); !fault.Is(err, fault.Forbidden) {
				t.Fatalf("expected forbidden fault, got %v", err)
			}
		})
	}
}

func TestUserIDContext(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Fatalf("expected no user id")
	}
	id, ok := UserID(WithUserID(context.Background(), "user-1"))
	if !ok || id != "user-1" {
		t.Fatalf("expected user-1, got %q", id)
	}
}
