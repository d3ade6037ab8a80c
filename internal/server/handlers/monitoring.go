package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"git.home.luguber.info/inful/mirview/internal/server/responses"
	"git.home.luguber.info/inful/mirview/internal/version"
)

// MonitoringHandlers contains the liveness endpoint.
type MonitoringHandlers struct {
	startTime time.Time
	dataDir   string
	names     int
}

// NewMonitoringHandlers creates monitoring handlers for a server started now.
func NewMonitoringHandlers(dataDir string, names int) *MonitoringHandlers {
	return &MonitoringHandlers{startTime: time.Now(), dataDir: dataDir, names: names}
}

// HandleHealthCheck reports that the process is serving.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
		DataDir:   h.dataDir,
		Names:     h.names,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(health)
}
