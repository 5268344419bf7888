package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"gallery-builder/internal/mediatypes"
	"gallery-builder/internal/metrics"
)

// Request kinds used as the metrics "kind" label.
const (
	kindPage  = "page"
	kindMedia = "media"
	kindAsset = "asset"
	kindOther = "other"
)

// metricsResponseWriter wraps http.ResponseWriter to capture status code
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{w, http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsConfig holds configuration for the metrics middleware
type MetricsConfig struct {
	// SkipPaths are paths that should not be recorded
	SkipPaths []string
}

// DefaultMetricsConfig returns the default metrics configuration
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		SkipPaths: []string{"/metrics", "/healthz", "/livez"},
	}
}

// Metrics returns a middleware that records Prometheus metrics
func Metrics(config MetricsConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range config.SkipPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			wrapped := newMetricsResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			kind := RequestKind(r.URL.Path)
			status := strconv.Itoa(wrapped.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, kind, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, kind).Observe(duration)
		})
	}
}

// RequestKind classifies a request path of the generated site so metric
// labels stay low-cardinality: pages, media files inside album folders,
// theme assets, and everything else.
func RequestKind(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	switch {
	case trimmed == "" || strings.HasSuffix(trimmed, ".html"):
		return kindPage
	case strings.HasPrefix(trimmed, "assets/"),
		trimmed == "style.css",
		trimmed == "enhancements.js",
		trimmed == "favicon.ico",
		strings.HasSuffix(trimmed, ".json"),
		strings.HasSuffix(trimmed, ".yaml"),
		strings.HasSuffix(trimmed, ".yml"):
		return kindAsset
	case strings.Count(trimmed, "/") == 1 && mediatypes.IsMediaFile(trimmed):
		return kindMedia
	default:
		return kindOther
	}
}
