package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muhfery/ecommerce-insights-backend/pkg/config"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                    { return s.name }
func (s stubChecker) Check(ctx context.Context) error { return s.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	return cfg
}

func TestHealthLive(t *testing.T) {
	handler := HealthLive(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if env := resp.Header().Get("X-Insights-Env"); env != "test" {
		t.Fatalf("unexpected env header %q", env)
	}
}

func TestHealthReadyAllChecksPass(t *testing.T) {
	handler := HealthReady(testConfig(), logger.New(logger.Options{ServiceName: "test"}),
		stubChecker{name: "dataset"},
		stubChecker{name: "feedback"},
	)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestHealthReadyReportsFailure(t *testing.T) {
	handler := HealthReady(testConfig(), logger.New(logger.Options{ServiceName: "test"}),
		stubChecker{name: "dataset"},
		stubChecker{name: "feedback", err: errors.New("store unreadable")},
	)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
