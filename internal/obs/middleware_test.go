package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/getspace/payment-uz/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("paymentuz", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/api/v1/checkout"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}

	total := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodPost, "/api/v1/checkout", "204"))
	if total != 1 {
		t.Fatalf("expected counter to be 1, got %v", total)
	}

	samples := testutil.CollectAndCount(metrics.ReqDur)
	if samples == 0 {
		t.Fatalf("expected histogram sample")
	}

	if metrics.InFlight != nil {
		if val := testutil.ToFloat64(metrics.InFlight); val != 0 {
			t.Fatalf("expected no in-flight requests, got %v", val)
		}
	}
}

func TestStatusRecorderDefaults(t *testing.T) {
	rr := httptest.NewRecorder()
	recorder := obs.NewStatusRecorder(rr)

	n, err := recorder.Write([]byte("ok"))
	if err != nil || n != 2 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	if recorder.Status() != http.StatusOK {
		t.Fatalf("expected default 200, got %d", recorder.Status())
	}
	if recorder.BytesWritten() != 2 {
		t.Fatalf("expected 2 bytes, got %d", recorder.BytesWritten())
	}

	recorder = obs.NewStatusRecorder(httptest.NewRecorder())
	recorder.WriteHeader(http.StatusTeapot)
	if recorder.Status() != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", recorder.Status())
	}
}

func TestParseBucketsCSV(t *testing.T) {
	buckets := obs.ParseBucketsCSV("5, 25, junk, -1, 100")
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %v", buckets)
	}
	if buckets[0] != 5 || buckets[1] != 25 || buckets[2] != 100 {
		t.Fatalf("unexpected buckets %v", buckets)
	}
	if got := obs.ParseBucketsCSV("  "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}
