package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/formpilot/app"
	"github.com/mbolis/formpilot/httpx"
	"github.com/mbolis/formpilot/log"
	"github.com/mbolis/formpilot/metrics"
	"github.com/mbolis/formpilot/routes/middlewares"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Wire(app app.App) http.Handler {
	metrics.Register()

	root := chi.NewRouter()
	root.Use(
		middleware.RequestID,
		middleware.RealIP,
		middlewares.AccessLog,
		middlewares.Metrics,
		middleware.Recoverer,
		middlewares.CORS(app.CorsOrigins),
	)
	root.NotFound(notFound)
	root.MethodNotAllowed(methodNotAllowed)

	root.Mount("/api", apiRouter(app))
	root.Handle("/metrics", promhttp.Handler())

	if app.StaticDir != "" {
		root.Handle("/*", servePublicFiles(app.StaticDir))
	}

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.NotFound(notFound)
	api.MethodNotAllowed(methodNotAllowed)

	api.Get("/", Health(app))

	api.Route("/auth", func(r chi.Router) {
		r.Post("/register", Register(app))
		r.Post("/login", Login(app))
	})

	api.Get("/forms/{id}", PublicGetForm(app))
	api.Post("/form-responses", PublicSubmitResponse(app))
	api.Get("/form-responses/{formId}", ListResponses(app))

	api.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate(app.Tokens))

		// CRUD form
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get("/forms/secure/{id}", GetOwnedForm(app))
		r.Put("/forms/{id}", UpdateForm(app))
		r.Delete("/forms/{id}", DeleteForm(app))
	})

	return api
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httpx.LogNotFound(w, r, "route", "Route Not Found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpx.LogStatusMsg(w, r, http.StatusMethodNotAllowed, log.DebugLevel, "route.method", http.StatusText(http.StatusMethodNotAllowed))
}

func servePublicFiles(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
