// Package metrics provides Prometheus instrumentation for the gallery builder.
//
// All metrics are prefixed with "gallery_" and registered with the default
// registry through promauto. A one-shot build exports them with
// [WriteTextfile] (the --metrics-file flag) for the node_exporter textfile
// collector; the preview server additionally exposes them on /metrics.
//
// # Metric Categories
//
// ## Build Metrics
//   - BuildRunsTotal: Counter of builds by result (built/up_to_date/empty/failed)
//   - BuildPhaseDuration: Histogram of phase duration (scan/decide/copy/render/publish)
//   - BuildLastRunTimestamp: Gauge of the last completed build
//
// ## Catalog Metrics
//   - CatalogAlbums: Gauge of albums in the last scan
//   - CatalogMediaItems: Gauge of media items by type
//   - ScannerFilesSkipped: Counter of files with unrecognized extensions
//
// ## Copy and Page Metrics
//   - CopyOperationsTotal: Counter of copy tasks by status (copied/skipped/error)
//   - CopyBytesTotal, CopyWorkers
//   - PagesWrittenTotal: Counter of pages by kind (index/album/media)
//   - PageErrorsTotal: Counter of failed album page tasks
//
// ## Watch and Preview Metrics
//   - WatcherEventsTotal, WatcherErrors, WatchedDirectories
//   - HTTPRequestsTotal, HTTPRequestDuration
//
// ## Filesystem Metrics
//
// Recorded through [NewFilesystemObserver], which implements
// filesystem.Observer so that the filesystem package does not import this one.
//
// # Prometheus Queries
//
// Copy skip ratio of recent builds:
//
//	rate(gallery_copy_operations_total{status="skipped"}[1h]) /
//	rate(gallery_copy_operations_total[1h])
package metrics
