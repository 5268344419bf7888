package handlers

import (
	"net/http"

	"gallery-builder/internal/startup"
)

// Generator names the tool in /version responses.
const Generator = "gallery"

// VersionResponse describes the running binary and the site it serves.
type VersionResponse struct {
	startup.BuildInfo
	Generator string `json:"generator"`
	Root      string `json:"root"`
	// LastBuilt is empty until the site has an index page.
	LastBuilt string `json:"lastBuilt,omitempty"`
}

// GetVersion reports the build information of the binary and when the
// served site was last generated.
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	response := VersionResponse{
		BuildInfo: startup.GetBuildInfo(),
		Generator: Generator,
		Root:      h.root,
	}
	response.LastBuilt, _ = h.lastBuilt()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, response)
}
