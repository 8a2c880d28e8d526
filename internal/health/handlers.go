package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady toggles the readiness gate. The server flips it off at the start
// of graceful shutdown so load balancers drain traffic before connections close.
func SetReady(v bool) {
	ready.Store(v)
}

// Prober reports per-provider credential posture for the readiness payload.
// Missing credentials do not make the service unready: test-mode checkout
// still works without them, and verification fails closed.
type Prober interface {
	ProviderReadiness() map[string]string
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Prober Prober
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness. It returns 503 once shutdown has begun and
// otherwise includes the credential posture of each registered provider.
func (h Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if !ready.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	status := map[string]string{"status": "ok"}
	if h.Prober != nil {
		for name, posture := range h.Prober.ProviderReadiness() {
			status["provider_"+name] = posture
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(status)
}
