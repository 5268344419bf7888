package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is present in the first export, even for a no-op build.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, r := range []string{"built", "up_to_date", "empty", "failed"} {
		BuildRunsTotal.WithLabelValues(r)
	}

	for _, p := range []string{"scan", "decide", "copy", "render", "publish"} {
		BuildPhaseDuration.WithLabelValues(p)
	}

	for _, t := range []string{"image", "video"} {
		CatalogMediaItems.WithLabelValues(t)
	}

	for _, s := range []string{"copied", "skipped", "error"} {
		CopyOperationsTotal.WithLabelValues(s)
	}

	for _, k := range []string{"index", "album", "media"} {
		PagesWrittenTotal.WithLabelValues(k)
	}

	// --- Filesystem metrics (per volume × operation) ---
	volumes := []string{"input", "output", "theme", "unknown"}
	fsOps := []string{"stat", "open", "readdir", "write"}

	for _, vol := range volumes {
		for _, op := range fsOps {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetryOutcomes.WithLabelValues(op, vol, retrySuccess)
			FilesystemRetryOutcomes.WithLabelValues(op, vol, retryFailure)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
