package api

import (
	"net/http"

	"github.com/okian/habitat/pkg/metrics"
	"github.com/prometheus/common/expfmt"
)

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth handles GET /healthz. It gathers the service registry and
// writes it in the negotiated exposition format; a failed gather is reported
// as 503 so the endpoint doubles as the liveness signal.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	mfs, err := metrics.Gather()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unhealthy", err)
		return
	}

	format := expfmt.Negotiate(r.Header)
	w.Header().Set("Content-Type", string(format))
	w.WriteHeader(http.StatusOK)

	enc := expfmt.NewEncoder(w, format)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return
		}
	}
	if closer, ok := enc.(expfmt.Closer); ok {
		_ = closer.Close()
	}
}
