package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formpilot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "formpilot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	formsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "formpilot",
			Subsystem: "forms",
			Name:      "created_total",
			Help:      "Forms created.",
		},
	)
	responsesSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "formpilot",
			Subsystem: "responses",
			Name:      "submitted_total",
			Help:      "Form responses stored.",
		},
	)
	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formpilot",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		},
		[]string{"result"},
	)
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, formsCreated, responsesSubmitted, logins)
	})
}

// RecordHTTPRequest is keyed by route pattern, not raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	Register()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, route, statusLabel).Inc()
	httpDuration.WithLabelValues(method, route, statusLabel).Observe(duration.Seconds())
}

func FormCreated() {
	Register()
	formsCreated.Inc()
}

func ResponseSubmitted() {
	Register()
	responsesSubmitted.Inc()
}

func Login(success bool) {
	Register()
	result := "failure"
	if success {
		result = "success"
	}
	logins.WithLabelValues(result).Inc()
}
