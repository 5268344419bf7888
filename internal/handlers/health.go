package handlers

import (
	"net/http"
	"path/filepath"
	"runtime"
	"time"

	"gallery-builder/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusNotBuilt = "not_built"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Root    string `json:"root"`

	// LastBuilt is the modification time of the index page.
	LastBuilt  string `json:"lastBuilt,omitempty"`
	AlbumPages int    `json:"albumPages"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck reports whether the served directory holds a generated site.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:       statusNotBuilt,
		Version:      startup.Version,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Root:         h.root,
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	if built, ok := h.lastBuilt(); ok {
		response.Ready = true
		response.Status = statusHealthy
		response.LastBuilt = built
	}
	if pages, err := filepath.Glob(filepath.Join(h.root, "album_*.html")); err == nil {
		response.AlbumPages = len(pages)
	}

	w.Header().Set("Content-Type", "application/json")
	if !response.Ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}
