// Package handlers provides the HTTP endpoints of the local preview server
// that sit next to the generated site:
//   - /healthz reports whether the served directory holds a built site
//   - /livez is a plain liveness probe
//   - /version returns build information
//   - /metrics exposes the Prometheus registry
package handlers
