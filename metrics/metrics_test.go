package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRegisterAndRecordersAreSafe(t *testing.T) {
	Register()
	Register()

	RecordHTTPRequest("GET", "/api/forms", 200, 12*time.Millisecond)
	FormCreated()
	ResponseSubmitted()
	Login(true)
	Login(false)
}

func TestCountersIncrement(t *testing.T) {
	before := counterValue(t, formsCreated)
	FormCreated()
	if got := counterValue(t, formsCreated); got != before+1 {
		t.Errorf("expected %v forms created, got %v", before+1, got)
	}

	failures := logins.WithLabelValues("failure")
	before = counterValue(t, failures)
	Login(false)
	if got := counterValue(t, failures); got != before+1 {
		t.Errorf("expected %v failed logins, got %v", before+1, got)
	}

	requests := httpRequests.WithLabelValues("POST", "/api/form-responses", "201")
	before = counterValue(t, requests)
	RecordHTTPRequest("POST", "/api/form-responses", 201, time.Millisecond)
	if got := counterValue(t, requests); got != before+1 {
		t.Errorf("expected %v requests, got %v", before+1, got)
	}
}
