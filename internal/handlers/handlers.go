package handlers

import (
	"time"

	"gallery-builder/internal/filesystem"
)

// Handlers serves the preview API endpoints for one output directory.
type Handlers struct {
	root    string
	started time.Time
	retry   filesystem.RetryConfig
}

// New creates the handlers for the site generated under root.
func New(root string) *Handlers {
	return &Handlers{
		root:    root,
		started: time.Now(),
		retry:   filesystem.DefaultRetryConfig(),
	}
}
