package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, store Pinger, path string) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler("test-service", "1.0.0", store).RegisterRoutes(router)

	req, err := http.NewRequest("GET", path, nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var response HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return response
}

func TestHealthCheck(t *testing.T) {
	response := serveHealth(t, nil, "/health")

	if response.Status != "healthy" {
		t.Errorf("expected status 'healthy', got %s", response.Status)
	}
	if response.Service != "test-service" {
		t.Errorf("expected service 'test-service', got %s", response.Service)
	}
	if response.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %s", response.Version)
	}
	if response.Store != "memory" {
		t.Errorf("expected store 'memory', got %s", response.Store)
	}
}

func TestHealthCheckStoreStatus(t *testing.T) {
	up := serveHealth(t, pingFunc(func(context.Context) error { return nil }), "/healthz")
	if up.Store != "up" {
		t.Errorf("expected store 'up', got %s", up.Store)
	}

	down := serveHealth(t, pingFunc(func(context.Context) error { return errors.New("refused") }), "/health")
	if down.Store != "down" {
		t.Errorf("expected store 'down', got %s", down.Store)
	}
	if down.Status != "healthy" {
		t.Errorf("expected status 'healthy', got %s", down.Status)
	}
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	NewHealthHandler("test-service", "1.0.0", nil).RegisterRoutes(router)

	req, err := http.NewRequest("POST", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusMethodNotAllowed {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusMethodNotAllowed)
	}
}
