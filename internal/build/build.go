package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"gallery-builder/internal/config"
	"gallery-builder/internal/copier"
	"gallery-builder/internal/copyright"
	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/incremental"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/media"
	"gallery-builder/internal/metrics"
	"gallery-builder/internal/render"
	"gallery-builder/internal/startup"
	"gallery-builder/internal/theme"
	"gallery-builder/internal/workers"

	"golang.org/x/sync/errgroup"
)

// ErrInputNotFound is returned when the configured input directory is
// missing or is not a directory.
var ErrInputNotFound = errors.New("input directory not found")

// IndexPage is the site entry page.
const IndexPage = "index.html"

// Stats summarizes one build run.
type Stats struct {
	Albums       int
	Media        int
	Copied       int
	Skipped      int
	CopyErrors   int
	Bytes        int64
	PagesWritten int
	PageErrors   int
	// Pruned counts stale pages and copies removed from the output.
	Pruned int
	// UpToDate is set when the rebuild check found nothing to do.
	UpToDate bool
	// Empty is set when the input held no publishable media.
	Empty   bool
	Elapsed time.Duration
}

// Summary converts the stats for the build summary log.
func (s Stats) Summary() startup.BuildSummary {
	return startup.BuildSummary{
		Albums:     s.Albums,
		Media:      s.Media,
		Copied:     s.Copied,
		Skipped:    s.Skipped,
		CopyErrors: s.CopyErrors,
		Bytes:      s.Bytes,
		Pages:      s.PagesWritten,
		PageErrors: s.PageErrors,
		UpToDate:   s.UpToDate,
		Duration:   s.Elapsed,
	}
}

// Builder runs the gallery pipeline: scan, rebuild check, copy, render and
// publish.
type Builder struct {
	settings *config.Settings
	retry    filesystem.RetryConfig

	// Clean removes the output directory before building and bypasses the
	// rebuild check.
	Clean bool
	// ToolPath is handed to the rebuild check; nil disables the build tool
	// timestamp comparison.
	ToolPath func() (string, error)
}

// New creates a Builder for the given settings.
func New(s *config.Settings) *Builder {
	return &Builder{
		settings: s,
		retry:    filesystem.DefaultRetryConfig(),
		ToolPath: os.Executable,
	}
}

// Run executes one build. Task failures during copy and page generation are
// logged and counted in Stats; only a missing input directory, an unreadable
// catalog or a failed asset publish return an error.
func (b *Builder) Run(ctx context.Context) (stats Stats, err error) {
	start := time.Now()
	s := b.settings
	result := "built"
	defer func() {
		stats.Elapsed = time.Since(start)
		if err != nil {
			result = "failed"
		}
		metrics.BuildRunsTotal.WithLabelValues(result).Inc()
		metrics.BuildLastRunTimestamp.SetToCurrentTime()
	}()

	info, err := filesystem.StatWithRetry(s.Input, b.retry)
	if err != nil || !info.IsDir() {
		return stats, fmt.Errorf("%w: %s", ErrInputNotFound, s.Input)
	}

	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"input":  s.Input,
		"output": s.Output,
		"theme":  s.Theme,
	}))

	startup.Section("SCANNING ALBUMS")
	albums, err := media.NewScanner(s.Input, s).Scan()
	if err != nil {
		return stats, fmt.Errorf("scan %s: %w", s.Input, err)
	}
	recordCatalog(albums)
	stats.Albums = len(albums)
	for _, a := range albums {
		stats.Media += a.Count()
	}
	logging.Info("  Found %d albums with %d media files", stats.Albums, stats.Media)

	if len(albums) == 0 {
		logging.Warn("No media found under %s, nothing to build", s.Input)
		stats.Empty = true
		result = "empty"
		return stats, nil
	}

	if b.Clean {
		logging.Info("  Removing %s", s.Output)
		if err := os.RemoveAll(s.Output); err != nil {
			return stats, fmt.Errorf("clean output: %w", err)
		}
	} else if upToDate := b.upToDate(albums); upToDate {
		stats.UpToDate = true
		result = "up_to_date"
		return stats, nil
	}

	startup.Section("COPYING MEDIA")
	copied := copier.New(s.Output).CopyAll(ctx, albums)
	stats.Copied = copied.Copied
	stats.Skipped = copied.Skipped
	stats.CopyErrors = copied.Failed
	stats.Bytes = copied.Bytes

	startup.Section("GENERATING PAGES")
	written, failed, err := b.renderPages(ctx, albums, copied.URLs)
	if err != nil {
		return stats, err
	}
	stats.PagesWritten = written
	stats.PageErrors = failed

	if !b.Clean {
		stats.Pruned = b.prune(albums)
	}

	startup.Section("PUBLISHING ASSETS")
	if _, err := theme.NewPublisher(s).Publish(); err != nil {
		return stats, err
	}

	return stats, nil
}

// upToDate runs the rebuild check. A failed check counts as "rebuild".
func (b *Builder) upToDate(albums []media.Album) bool {
	s := b.settings
	if s.Path == "" {
		return false
	}

	startup.Section("CHECKING FOR CHANGES")
	decider := incremental.NewDecider(incremental.Inputs{
		ConfigPath: s.Path,
		Output:     s.Output,
		ThemeDir:   s.Theme,
	})
	decider.ToolPath = b.ToolPath

	decision, err := decider.Decide(albums)
	if err != nil {
		logging.Warn("  Rebuild check failed, rebuilding: %v", err)
		return false
	}
	if decision.Rebuild {
		logging.Info("  Rebuild needed: %s", decision.Reason)
		return false
	}
	logging.Info("  %s", decision.Reason)
	return true
}

func (b *Builder) renderPages(ctx context.Context, albums []media.Album, urls copier.URLs) (written, failed int, err error) {
	start := time.Now()
	defer func() {
		metrics.BuildPhaseDuration.WithLabelValues("render").Observe(time.Since(start).Seconds())
	}()

	s := b.settings
	year, hasYear := s.StartYear()
	cr := copyright.ResolveNow(s.StartDate, year, hasYear)
	for _, w := range cr.Warnings {
		logging.Warn("  %s", w)
	}

	r, err := render.New(render.NewSite(s, cr.Text), s)
	if err != nil {
		return 0, 0, err
	}
	if err := os.MkdirAll(s.Output, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create output directory: %w", err)
	}

	var pages, errs int64
	write := func(kind, name string, fn func(io.Writer) error) {
		if err := b.writePage(filepath.Join(s.Output, name), fn); err != nil {
			logging.Error("  Page %s failed: %v", name, err)
			metrics.PageErrorsTotal.Inc()
			atomic.AddInt64(&errs, 1)
			return
		}
		metrics.PagesWrittenTotal.WithLabelValues(kind).Inc()
		atomic.AddInt64(&pages, 1)
	}

	write("index", IndexPage, func(w io.Writer) error {
		return r.IndexPage(w, albums, urls)
	})

	poolSize := workers.ForPages(len(albums))
	logging.Info("  Generating pages for %d albums with %d workers", len(albums), poolSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(poolSize)
	for _, album := range albums {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			write("album", render.AlbumPageName(album.Name), func(w io.Writer) error {
				return r.AlbumPage(w, album, urls)
			})
			for i, m := range album.Media {
				var info media.ImageInfo
				if !m.IsVideo() {
					probed, err := media.ProbeImage(m.Path)
					if err != nil {
						logging.Debug("  No image details for %s: %v", m.Name, err)
					}
					info = probed
				}
				write("media", render.MediaPageName(album.Name, i, m.Name), func(w io.Writer) error {
					return r.MediaPage(w, album, i, urls, info)
				})
			}
			logging.Info("  [OK] %s (%d media pages)", album.DisplayName, album.Count())
			return nil
		})
	}
	_ = g.Wait()

	return int(pages), int(errs), nil
}

// writePage renders into memory first so a failed render leaves any previous
// page in place.
func (b *Builder) writePage(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	return filesystem.WriteFileWithRetry(path, buf.Bytes(), 0o644, b.retry)
}

func recordCatalog(albums []media.Album) {
	var images, videos int
	for _, a := range albums {
		for _, m := range a.Media {
			if m.IsVideo() {
				videos++
			} else {
				images++
			}
		}
	}
	metrics.CatalogAlbums.Set(float64(len(albums)))
	metrics.CatalogMediaItems.WithLabelValues("image").Set(float64(images))
	metrics.CatalogMediaItems.WithLabelValues("video").Set(float64(videos))
}
