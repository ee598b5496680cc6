package routes

import (
	"net/http"

	"github.com/mbolis/formpilot/app"
	"github.com/mbolis/formpilot/auth"
	"github.com/mbolis/formpilot/httpx"
	"github.com/mbolis/formpilot/log"
	"github.com/mbolis/formpilot/metrics"
)

type registeredUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func Register(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := auth.Credentials{}
		if err := httpx.Decode(r, &creds); err != nil {
			httpx.Error(w, r, "request.parse_body", err)
			return
		}

		user, err := app.Auth.Register(r.Context(), creds.Email, creds.Password)
		if err != nil {
			httpx.Error(w, r, "auth.register", err)
			return
		}
		log.Debugf("auth.register: user %s", user.ID)

		httpx.OK(w, r, map[string]any{
			"success": true,
			"user":    registeredUser{ID: user.ID, Email: user.Email},
		})
	}
}

func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := auth.Credentials{}
		if err := httpx.Decode(r, &creds); err != nil {
			httpx.Error(w, r, "request.parse_body", err)
			return
		}

		token, err := app.Auth.Login(r.Context(), creds.Email, creds.Password)
		metrics.Login(err == nil)
		if err != nil {
			httpx.Error(w, r, "auth.login", err)
			return
		}

		httpx.OK(w, r, map[string]any{
			"token": token,
		})
	}
}
