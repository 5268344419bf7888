package metrics

import "gallery-builder/internal/filesystem"

const (
	retrySuccess = "success"
	retryFailure = "failure"
)

// fsObserver feeds the filesystem retry layer into the collectors above.
type fsObserver struct{}

// NewFilesystemObserver returns the observer installed with
// filesystem.SetObserver at start-up.
func NewFilesystemObserver() filesystem.Observer {
	return fsObserver{}
}

func (fsObserver) ObserveOperation(volume, operation string, durationSeconds float64, err error) {
	FilesystemOperationDuration.WithLabelValues(volume, operation).Observe(durationSeconds)
	if err != nil {
		FilesystemOperationErrors.WithLabelValues(volume, operation).Inc()
	}
}

func (fsObserver) ObserveRetryAttempt(op, volume string) {
	FilesystemRetryAttempts.WithLabelValues(op, volume).Inc()
}

func (fsObserver) ObserveRetrySuccess(op, volume string) {
	FilesystemRetryOutcomes.WithLabelValues(op, volume, retrySuccess).Inc()
}

func (fsObserver) ObserveRetryFailure(op, volume string) {
	FilesystemRetryOutcomes.WithLabelValues(op, volume, retryFailure).Inc()
}

func (fsObserver) ObserveRetryDuration(op, volume string, durationSeconds float64) {
	FilesystemRetryDuration.WithLabelValues(op, volume).Observe(durationSeconds)
}

func (fsObserver) ObserveStaleError(op, volume string) {
	FilesystemStaleErrors.WithLabelValues(op, volume).Inc()
}
