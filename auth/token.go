package auth

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/mbolis/formpilot/fault"
	"github.com/pkg/errors"
)

// Tokens issues and verifies HS256 access tokens bound to a user id.
type Tokens struct {
	ja  *jwtauth.JWTAuth
	ttl time.Duration
	now func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		ja:  jwtauth.New("HS256", []byte(secret), nil),
		ttl: ttl,
		now: time.Now,
	}
}

func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()
	_, token, err := t.ja.Encode(map[string]interface{}{
		jwt.SubjectKey:    userID,
		jwt.IssuedAtKey:   now,
		jwt.ExpirationKey: now.Add(t.ttl),
		"userId":          userID,
	})
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return token, nil
}

// Verify returns the user id of a well-signed, unexpired token.
func (t *Tokens) Verify(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(t.ja, tokenString)
	if err != nil {
		return "", fault.Wrap(fault.Forbidden, "Invalid token", err)
	}
	if token.Subject() == "" {
		return "", fault.New(fault.Forbidden, "Invalid token")
	}
	return token.Subject(), nil
}

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the id attached by the authentication middleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
