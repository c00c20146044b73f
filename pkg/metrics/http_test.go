package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/products", "200", 25*time.Millisecond)
	m.Observe("GET", "/api/v1/products", "200", 10*time.Millisecond)
	m.Observe("POST", "/api/v1/checkout", "201", 80*time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products", "200")); got != 2 {
		t.Fatalf("expected 2 product list requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/checkout", "201")); got != 1 {
		t.Fatalf("expected 1 checkout request, got %v", got)
	}
}

func TestObserveOnNilReceiverIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/x", "200", time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "", "200", time.Millisecond)
}
