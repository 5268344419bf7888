/*
Package filesystem wraps the read side of the gallery build (os.Stat, os.Open,
os.ReadDir) with retry logic for NFS stale file handle errors.

Photo libraries frequently live on network shares. A stale handle (ESTALE)
during a scan would otherwise drop a whole album from the generated site, so
those errors are retried with exponential backoff:

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

All other errors are returned immediately.

# Retry Behavior

  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

# Metrics

Operations are labeled with a volume name resolved from the path by a
[VolumeResolver] ("input", "output" or "theme"). Results are reported to the
[Observer] installed with [SetObserver]; with no observer installed nothing
is recorded.
*/
package filesystem
