package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_ObserveRequest(t *testing.T) {
	t.Parallel()
	c := NewCollector()

	c.ObserveRequest("/list_sheets/", OutcomeOK, 120*time.Millisecond)
	c.ObserveRequest("/list_sheets/", OutcomeOK, 80*time.Millisecond)
	c.ObserveRequest("/timetable/", OutcomeDecode, time.Second)

	if got := testutil.ToFloat64(c.requests.WithLabelValues("/list_sheets/", OutcomeOK)); got != 2 {
		t.Errorf("ok requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.requests.WithLabelValues("/timetable/", OutcomeDecode)); got != 1 {
		t.Errorf("decode failures = %v, want 1", got)
	}
}

func TestCollector_InFlightAndStale(t *testing.T) {
	t.Parallel()
	c := NewCollector()

	c.IncInFlight()
	c.IncInFlight()
	c.DecInFlight()
	if got := testutil.ToFloat64(c.inFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}

	c.StaleDropped("sheets")
	if got := testutil.ToFloat64(c.stale.WithLabelValues("sheets")); got != 1 {
		t.Errorf("stale = %v, want 1", got)
	}
}

func TestCollector_NilIsNoop(t *testing.T) {
	t.Parallel()
	var c *Collector
	c.ObserveRequest("/x/", OutcomeOK, time.Millisecond)
	c.IncInFlight()
	c.DecInFlight()
	c.StaleDropped("groups")
}

func TestCollector_WritePrometheus(t *testing.T) {
	t.Parallel()
	c := NewCollector()
	c.ObserveRequest("/timetable/", OutcomeOK, 10*time.Millisecond)
	c.StaleDropped("timetable")

	rec := httptest.NewRecorder()
	c.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	body := rec.Body.String()
	for _, want := range []string{
		"schedforge_backend_requests_total",
		"schedforge_backend_request_duration_seconds",
		"schedforge_backend_requests_in_flight",
		"schedforge_stale_responses_total",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %s", want)
		}
	}
}
