package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetricsMiddleware_UsesRoutePattern ensures request metrics are labelled
// by the chi route pattern rather than the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	h := NewMux(loadedService())
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/health", http.MethodGet, "200"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health?check=1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/health", http.MethodGet, "200"))
	if got != before+1 {
		t.Fatalf("requests_total{path=/health}=%v, want %v", got, before+1)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewMux(loadedService())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", rr.Code)
	}
}
