package copier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/media"
	"gallery-builder/internal/metrics"
	"gallery-builder/internal/workers"

	"golang.org/x/sync/errgroup"
)

// URLs maps each media item to its public URL relative to the site root.
// The map is built after every copy task has finished; nothing writes to it
// concurrently.
type URLs map[media.Key]string

// Get returns the URL for the media item of album, or "" when it was never
// assigned (its copy failed).
func (u URLs) Get(album, name string) string {
	return u[media.Key{Album: album, Name: name}]
}

// MediaURL builds the public URL of a file inside an album folder. The file
// name is fully percent-encoded (spaces become %20, '#' becomes %23); only
// letters, digits and "-_.~" pass through.
func MediaURL(album, name string) string {
	return album + "/" + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}

// Outcome of a single copy task.
type Outcome int

const (
	// Copied means the file contents were written.
	Copied Outcome = iota
	// Skipped means an up-to-date copy already existed.
	Skipped
	// Failed means the task returned an error.
	Failed
)

// String returns the metric label of the outcome
func (o Outcome) String() string {
	switch o {
	case Copied:
		return "copied"
	case Skipped:
		return "skipped"
	default:
		return "error"
	}
}

// Result summarizes a copy phase.
type Result struct {
	URLs    URLs
	Copied  int
	Skipped int
	Failed  int
	Bytes   int64
}

type task struct {
	album string
	media media.Media
}

type taskResult struct {
	outcome Outcome
	url     string
	bytes   int64
}

// Copier copies catalog media into the output directory.
type Copier struct {
	output string
	retry  filesystem.RetryConfig
	// ProgressEvery controls how often progress is logged, in completed tasks.
	ProgressEvery int
}

// New creates a Copier writing under output.
func New(output string) *Copier {
	return &Copier{
		output:        output,
		retry:         filesystem.DefaultRetryConfig(),
		ProgressEvery: 10,
	}
}

// CopyAll copies every media item of every album on a bounded worker pool.
// Individual failures are logged and counted; they never stop sibling tasks.
// The URL of a failed item is left unassigned.
func (c *Copier) CopyAll(ctx context.Context, albums []media.Album) Result {
	start := time.Now()
	defer func() {
		metrics.BuildPhaseDuration.WithLabelValues("copy").Observe(time.Since(start).Seconds())
	}()

	var tasks []task
	for _, album := range albums {
		for _, m := range album.Media {
			tasks = append(tasks, task{album: album.Name, media: m})
		}
	}

	res := Result{URLs: make(URLs, len(tasks))}
	if len(tasks) == 0 {
		return res
	}

	poolSize := workers.ForCopy(len(tasks))
	metrics.CopyWorkers.Set(float64(poolSize))
	logging.Info("Copying %d media files with %d workers", len(tasks), poolSize)

	// Each task writes only its own slot.
	results := make([]taskResult, len(tasks))
	var completed int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(poolSize)

	for i := range tasks {
		g.Go(func() error {
			r, err := c.copyOne(ctx, tasks[i])
			if err != nil {
				logging.Error("Copy %s/%s failed: %v", tasks[i].album, tasks[i].media.Name, err)
				r = taskResult{outcome: Failed}
			}
			results[i] = r
			metrics.CopyOperationsTotal.WithLabelValues(r.outcome.String()).Inc()

			done := atomic.AddInt64(&completed, 1)
			if c.ProgressEvery > 0 && (done%int64(c.ProgressEvery) == 0 || done == int64(len(tasks))) {
				logging.Info("   进度: %d/%d", done, len(tasks))
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, r := range results {
		switch r.outcome {
		case Copied:
			res.Copied++
		case Skipped:
			res.Skipped++
		case Failed:
			res.Failed++
			continue
		}
		res.Bytes += r.bytes
		res.URLs[media.Key{Album: tasks[i].album, Name: tasks[i].media.Name}] = r.url
	}
	metrics.CopyBytesTotal.Add(float64(res.Bytes))

	logging.Info("Media copy finished in %.2fs: %d copied, %d skipped, %d failed",
		time.Since(start).Seconds(), res.Copied, res.Skipped, res.Failed)
	return res
}

func (c *Copier) copyOne(ctx context.Context, t task) (taskResult, error) {
	if err := ctx.Err(); err != nil {
		return taskResult{}, err
	}

	dir := filepath.Join(c.output, t.album)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return taskResult{}, fmt.Errorf("create album directory: %w", err)
	}

	r := taskResult{url: MediaURL(t.album, t.media.Name)}
	dest := filepath.Join(dir, t.media.Name)

	upToDate, err := c.upToDate(dest, t.media)
	if err != nil {
		return taskResult{}, err
	}
	if upToDate {
		logging.Debug("跳过: %s", t.media.Name)
		r.outcome = Skipped
		return r, nil
	}

	n, err := CopyFile(t.media.Path, dest, c.retry)
	if err != nil {
		return taskResult{}, err
	}
	logging.Debug("复制: %s", t.media.Name)
	r.outcome = Copied
	r.bytes = n
	return r, nil
}

// upToDate reports whether dest already holds a copy of m: same size and not
// older than the source.
func (c *Copier) upToDate(dest string, m media.Media) (bool, error) {
	info, err := filesystem.StatWithRetry(dest, c.retry)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular() && info.Size() == m.Size && !info.ModTime().Before(m.ModTime), nil
}

// CopyFile copies the contents of src to dest and carries over its
// permissions and modification time. Metadata failures are only logged.
func CopyFile(src, dest string, retry filesystem.RetryConfig) (int64, error) {
	in, err := filesystem.OpenWithRetry(src, retry)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("copy %s: %w", src, err)
	}

	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		logging.Debug("Could not set permissions on %s: %v", dest, err)
	}
	if err := os.Chtimes(dest, time.Now(), info.ModTime()); err != nil {
		logging.Debug("Could not set modification time on %s: %v", dest, err)
	}
	return n, nil
}
