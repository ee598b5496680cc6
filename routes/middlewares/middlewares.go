package middlewares

import (
	"net/http"

	"github.com/mbolis/formpilot/auth"
	"github.com/mbolis/formpilot/httpx"
	"github.com/mbolis/formpilot/log"
)

// Authenticate rejects requests without a valid bearer token and attaches
// the token's user id to the request context.
func Authenticate(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, present := httpx.BearerToken(r)
			if !present {
				httpx.LogStatusMsg(w, r, http.StatusUnauthorized, log.DebugLevel, "auth.missing_token", "Access denied")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				httpx.Error(w, r, "auth.verify_token", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
