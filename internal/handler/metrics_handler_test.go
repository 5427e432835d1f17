package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/service"
)

type pingerStub struct{ err error }

func (p pingerStub) PingContext(ctx context.Context) error { return p.err }

func buildMetricsRouter(h *MetricsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/metrics", h.Prometheus)
	return router
}

func TestMetricsHandlerReady(t *testing.T) {
	h := NewMetricsHandler(service.NewMetricsService(), map[string]Pinger{"database": pingerStub{}, "redis": nil})
	router := buildMetricsRouter(h)

	req, _ := http.NewRequest(http.MethodGet, "/ready", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"database":"ok"}}`, resp.Body.String())
}

func TestMetricsHandlerReadyUnavailable(t *testing.T) {
	h := NewMetricsHandler(nil, map[string]Pinger{"database": pingerStub{err: errors.New("dial tcp: refused")}})
	router := buildMetricsRouter(h)

	req, _ := http.NewRequest(http.MethodGet, "/ready", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"unavailable"`)
}

func TestMetricsHandlerHealthAndPrometheus(t *testing.T) {
	router := buildMetricsRouter(NewMetricsHandler(service.NewMetricsService(), nil))

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, performRequest(router, req).Code)

	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "goroutines_total")

	disabled := buildMetricsRouter(NewMetricsHandler(nil, nil))
	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusServiceUnavailable, performRequest(disabled, req).Code)
}
