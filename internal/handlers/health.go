package handlers

import (
	"net/http"
	"os"
)

// HealthChecker reports service liveness and whether the data directory is
// still reachable.
type HealthChecker struct {
	dataDir string
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(dataDir string) *HealthChecker {
	return &HealthChecker{dataDir: dataDir}
}

// Healthz handles the health endpoint.
func (h *HealthChecker) Healthz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK

	if _, err := os.Stat(h.dataDir); err != nil {
		status = "data_dir_unavailable"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{"status": status})
}
