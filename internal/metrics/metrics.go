package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build metrics
var (
	BuildRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_build_runs_total",
			Help: "Total number of build invocations by outcome",
		},
		[]string{"result"}, // "built", "up_to_date", "empty", "failed"
	)

	BuildPhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_build_phase_duration_seconds",
			Help:    "Duration of each build phase in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"phase"}, // "scan", "decide", "copy", "render", "publish"
	)

	BuildLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_build_last_run_timestamp",
			Help: "Unix timestamp of the last completed build",
		},
	)
)

// Catalog metrics
var (
	CatalogAlbums = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_catalog_albums",
			Help: "Number of albums in the last scanned catalog",
		},
	)

	CatalogMediaItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gallery_catalog_media_items",
			Help: "Number of media items in the last scanned catalog by type",
		},
		[]string{"type"}, // "image", "video"
	)

	ScannerFilesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_scanner_files_skipped_total",
			Help: "Total number of files excluded from albums because of an unknown extension",
		},
	)
)

// Copy metrics
var (
	CopyOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_copy_operations_total",
			Help: "Total number of media copy tasks by status",
		},
		[]string{"status"}, // "copied", "skipped", "error"
	)

	CopyBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_copy_bytes_total",
			Help: "Total number of bytes written while copying media files",
		},
	)

	CopyWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_copy_workers",
			Help: "Size of the media copy worker pool in the last build",
		},
	)
)

// Page metrics
var (
	PagesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_pages_written_total",
			Help: "Total number of HTML pages written by kind",
		},
		[]string{"kind"}, // "index", "album", "media"
	)

	PageErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_page_errors_total",
			Help: "Total number of album page generation tasks that failed",
		},
	)
)

// Watch metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_watcher_events_total",
			Help: "Total number of filesystem events seen in watch mode",
		},
		[]string{"event_type"},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_watcher_errors_total",
			Help: "Total number of watcher errors",
		},
	)

	WatchedDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_watched_directories",
			Help: "Number of directories currently being watched",
		},
	)
)

// Preview server metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_preview_http_requests_total",
			Help: "Total number of HTTP requests served by the preview server",
		},
		[]string{"method", "kind", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_preview_http_request_duration_seconds",
			Help:    "Preview server request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "kind"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations by volume and operation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations by volume and operation",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_filesystem_retry_attempts_total",
			Help: "Total number of retries after stale file handle errors",
		},
		[]string{"operation", "volume"},
	)

	// FilesystemRetryOutcomes counts retried operations by how they ended.
	FilesystemRetryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_filesystem_retry_outcomes_total",
			Help: "Retried filesystem operations by final result",
		},
		[]string{"operation", "volume", "result"}, // "success", "failure"
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_filesystem_retry_duration_seconds",
			Help:    "Total time spent in retrying filesystem operations",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_filesystem_stale_errors_total",
			Help: "Total number of ESTALE errors seen",
		},
		[]string{"operation", "volume"},
	)
)

// AppInfo exposes build information as labels
var AppInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "gallery_app_info",
		Help: "Application build information",
	},
	[]string{"version", "commit", "go_version"},
)

// WriteTextfile writes every registered metric to path in the Prometheus text
// exposition format, suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
