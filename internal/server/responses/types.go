// Package responses defines JSON bodies returned by the mirview HTTP server.
package responses

import "time"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	DataDir   string    `json:"data_dir"`
	Names     int       `json:"function_names"`
}
