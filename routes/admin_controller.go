package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mbolis/formpilot/app"
	"github.com/mbolis/formpilot/auth"
	"github.com/mbolis/formpilot/httpx"
	"github.com/mbolis/formpilot/log"
	"github.com/mbolis/formpilot/metrics"
	"github.com/mbolis/formpilot/model"
)

// formRequest is the body of create and update.
type formRequest struct {
	FormName string        `json:"formName"`
	Fields   []model.Field `json:"fields"`
}

// owner is set by middlewares.Authenticate on every route of this file.
func owner(r *http.Request) string {
	userID, _ := auth.UserID(r.Context())
	return userID
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := formRequest{}
		if err := httpx.Decode(r, &body); err != nil {
			httpx.Error(w, r, "request.parse_body", err)
			return
		}

		form, err := app.Forms.Create(r.Context(), owner(r), body.FormName, body.Fields)
		if err != nil {
			httpx.Error(w, r, "db.insert_form", err)
			return
		}
		metrics.FormCreated()
		log.Debugf("forms.create: %s", form.ID)

		httpx.OK(w, r, httpx.Message{
			Success: true,
			Message: `Form "` + form.Name + `" Was Successfully Created.`,
			Data:    form,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Forms.ListSummaries(r.Context(), owner(r))
		if err != nil {
			httpx.Error(w, r, "db.get_forms", err)
			return
		}

		httpx.OK(w, r, forms)
	}
}

func GetOwnedForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.GetOwned(r.Context(), chi.URLParam(r, "id"), owner(r))
		if err != nil {
			httpx.Error(w, r, "db.get_owned_form", err)
			return
		}

		httpx.OK(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := formRequest{}
		if err := httpx.Decode(r, &body); err != nil {
			httpx.Error(w, r, "request.parse_body", err)
			return
		}

		err := app.Forms.Update(r.Context(), chi.URLParam(r, "id"), owner(r), body.FormName, body.Fields)
		if err != nil {
			httpx.Error(w, r, "db.update_form", err)
			return
		}

		httpx.OK(w, r, httpx.Message{Success: true, Message: "Form Has Been Updated."})
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Forms.Delete(r.Context(), chi.URLParam(r, "id"), owner(r))
		if err != nil {
			httpx.Error(w, r, "db.delete_form", err)
			return
		}

		httpx.OK(w, r, httpx.Message{Success: true, Message: "Form Has Been Deleted."})
	}
}
