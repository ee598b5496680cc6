package middlewares

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mbolis/formpilot/log"
	"github.com/mbolis/formpilot/metrics"
)

// AccessLog writes one entry per request, at a level chosen by status.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		level := log.InfoLevel
		if m.Code >= 500 {
			level = log.ErrorLevel
		} else if m.Code >= 400 {
			level = log.WarnLevel
		}

		log.LogFields(level, log.Fields{
			"method":     r.Method,
			"route":      routePattern(r),
			"status":     m.Code,
			"bytes":      m.Written,
			"duration":   m.Duration.String(),
			"client_ip":  r.RemoteAddr,
			"request_id": middleware.GetReqID(r.Context()),
		}, "http_request")
	})
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		metrics.RecordHTTPRequest(r.Method, routePattern(r), m.Code, m.Duration)
	})
}

func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// routePattern is read after the handler ran, once chi has resolved the route.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
