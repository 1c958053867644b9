package metrics_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/health"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	metrics.Register()
}

func newServer(pingErr error) http.Handler {
	checker := health.NewChecker(slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry(),
		health.Dependency{Name: "postgres", Pinger: health.PingFunc(func(context.Context) error { return pingErr })})
	return metrics.NewServer(":0", checker).Handler
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_Probes(t *testing.T) {
	up := newServer(nil)
	if w := get(t, up, "/healthz"); w.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", w.Code)
	}
	if w := get(t, up, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("readyz status = %d, want 200", w.Code)
	}

	w := get(t, newServer(errors.New("connection refused")), "/readyz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status = %d, want 503", w.Code)
	}
	var result health.HealthResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Checks["postgres"].Status != "down" {
		t.Errorf("postgres check = %+v", result.Checks["postgres"])
	}
}

func TestServer_ExposesCollectors(t *testing.T) {
	metrics.OTPIssuedTotal.WithLabelValues("registration").Inc()

	w := get(t, newServer(nil), "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{
		"resumebuilder_otp_issued_total",
		"resumebuilder_http_requests_in_flight",
		"resumebuilder_http_rate_limited_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
