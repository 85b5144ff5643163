package handlers

import (
	"net/http"

	"pricing-engine/internal/platform/obs"
)

// Health provides a minimal liveness check endpoint, extended with the
// process-wide solve counters.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := struct {
		Status   string       `json:"status"`
		Counters obs.Snapshot `json:"counters"`
	}{
		Status:   "ok",
		Counters: obs.CountersSnapshot(),
	}
	writeJSON(w, r, http.StatusOK, res)
}
