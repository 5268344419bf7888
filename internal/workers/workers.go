package workers

import (
	"os"
	"strconv"
)

const (
	// CopyLimit caps the media copy pool.
	CopyLimit = 8
	// PageLimit caps the per-album page generation pool.
	PageLimit = 4
)

// EnvOverride names the environment variable that replaces the pool cap.
const EnvOverride = "GALLERY_WORKERS"

// PoolSize returns the number of workers for a fan-out over tasks independent
// tasks: min(limit, tasks), and never less than 1.
//
// A positive GALLERY_WORKERS value replaces limit. The result still never
// exceeds the number of tasks, since extra workers would sit idle.
func PoolSize(limit, tasks int) int {
	if override := os.Getenv(EnvOverride); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			limit = count
		}
	}

	workers := limit
	if tasks < workers {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ForCopy returns the pool size for copying tasks media files.
func ForCopy(tasks int) int {
	return PoolSize(CopyLimit, tasks)
}

// ForPages returns the pool size for generating pages of albums albums.
func ForPages(albums int) int {
	return PoolSize(PageLimit, albums)
}
