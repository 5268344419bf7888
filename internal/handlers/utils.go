package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

func (h *Handlers) stat(path string) (os.FileInfo, error) {
	return filesystem.StatWithRetry(path, h.retry)
}

// lastBuilt returns the RFC 3339 modification time of the index page.
func (h *Handlers) lastBuilt() (string, bool) {
	info, err := h.stat(filepath.Join(h.root, "index.html"))
	if err != nil {
		return "", false
	}
	return info.ModTime().Format(time.RFC3339), true
}
