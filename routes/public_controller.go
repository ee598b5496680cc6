package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mbolis/formpilot/app"
	"github.com/mbolis/formpilot/database"
	"github.com/mbolis/formpilot/fault"
	"github.com/mbolis/formpilot/httpx"
	"github.com/mbolis/formpilot/log"
	"github.com/mbolis/formpilot/metrics"
	"github.com/mbolis/formpilot/model"
)

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := database.Now(r.Context(), app.DB)
		if err != nil {
			log.Errorf("db.health: %s", err)
			httpx.JSON(w, r, http.StatusInternalServerError, httpx.ErrorBody{
				Error: "Database Access Error During Health Check",
			})
			return
		}

		httpx.OK(w, r, map[string]any{
			"message":   "FormPilot API Running",
			"timestamp": now,
		})
	}
}

func PublicGetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.GetPublic(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, r, "db.get_form", err)
			return
		}

		httpx.OK(w, r, form)
	}
}

type submission struct {
	FormID    string             `json:"formId"`
	Responses model.ResponseData `json:"responses"`
}

func PublicSubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := submission{}
		if err := httpx.Decode(r, &body); err != nil {
			httpx.Error(w, r, "request.parse_body", err)
			return
		}

		if app.StrictSubmissions && strings.TrimSpace(body.FormID) != "" {
			form, err := app.Forms.GetPublic(r.Context(), body.FormID)
			if err != nil {
				httpx.Error(w, r, "db.get_form", err)
				return
			}
			if err := model.ValidateSubmission(form, body.Responses); err != nil {
				httpx.Error(w, r, "request.validate_response", err)
				return
			}
		}

		response, err := app.Responses.Submit(r.Context(), body.FormID, body.Responses)
		if err != nil {
			httpx.Error(w, r, "db.insert_response", err)
			return
		}
		metrics.ResponseSubmitted()

		httpx.Created(w, r, map[string]any{
			"message": "Response Added Successfully.",
			"data":    response,
		})
	}
}

func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseResponseQuery(r)
		if err != nil {
			httpx.Error(w, r, "request.parse_query", err)
			return
		}

		responses, err := app.Responses.ListByForm(r.Context(), chi.URLParam(r, "formId"))
		if err != nil {
			httpx.Error(w, r, "db.get_responses", err)
			return
		}

		httpx.OK(w, r, query.Apply(responses))
	}
}

func parseResponseQuery(r *http.Request) (model.ResponseQuery, error) {
	params := r.URL.Query()
	query := model.ResponseQuery{
		Search: params.Get("q"),
		SortBy: params.Get("sort"),
	}

	switch strings.ToLower(params.Get("order")) {
	case "", "asc":
	case "desc":
		query.Desc = true
	default:
		return query, fault.NewValidation(`Sort Order Must Be "asc" or "desc".`)
	}
	return query, nil
}
