package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/classes", http.StatusOK, 15*time.Millisecond)
	m.ObserveDBQuery("search_classes", 2*time.Millisecond)
	m.ObserveRegistration(RegistrationCreated)
	m.ObserveRateLimited()
	m.ObserveErrorCode("/classes", "MISSING_FILTERS")
	m.ObserveErrorCode("/classes", "")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/classes",status="200"} 1`)
	assert.Contains(t, body, `class_registrations_total{outcome="created"} 1`)
	assert.Contains(t, body, `class_registrations_rate_limited_total 1`)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="search_classes"} 1`)
	assert.Contains(t, body, `http_error_codes_total{code="MISSING_FILTERS",path="/classes"} 1`)
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveRegistration(RegistrationFailed)
	m.ObserveDBQuery("x", time.Second)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
