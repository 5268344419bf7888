package incremental

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/media"
	"gallery-builder/internal/metrics"
	"gallery-builder/internal/render"
)

// Theme asset names checked against their published copies.
var themeAssets = []string{"style.css", "enhancements.js"}

// Inputs names the files the decision depends on.
type Inputs struct {
	// ConfigPath is the configuration file; its published copy is
	// Output/filepath.Base(ConfigPath).
	ConfigPath string
	Output     string
	ThemeDir   string
}

// Decision says whether a build is needed and why.
type Decision struct {
	Rebuild bool
	Reason  string
}

func rebuild(format string, args ...interface{}) Decision {
	return Decision{Rebuild: true, Reason: fmt.Sprintf(format, args...)}
}

// Decider compares source timestamps with the previously published output
// and the published pages with the current catalog.
type Decider struct {
	inputs Inputs
	retry  filesystem.RetryConfig

	// ToolPath returns the path of the running build tool. A tool binary
	// newer than the last build forces a rebuild. Nil disables the check.
	ToolPath func() (string, error)
}

// NewDecider creates a Decider that also checks the running executable.
func NewDecider(inputs Inputs) *Decider {
	return &Decider{
		inputs:   inputs,
		retry:    filesystem.DefaultRetryConfig(),
		ToolPath: os.Executable,
	}
}

// Decide reports whether the catalog needs to be rebuilt. It errs on the side
// of rebuilding: any stat failure other than a missing file is returned.
func (d *Decider) Decide(albums []media.Album) (Decision, error) {
	start := time.Now()
	defer func() {
		metrics.BuildPhaseDuration.WithLabelValues("decide").Observe(time.Since(start).Seconds())
	}()

	out := d.inputs.Output
	if _, ok, err := d.modTime(out); err != nil || !ok {
		return rebuild("output directory %s does not exist", out), err
	}

	if _, ok, err := d.modTime(filepath.Join(out, "index.html")); err != nil || !ok {
		return rebuild("index page missing"), err
	}

	configTime, _, err := d.modTime(d.inputs.ConfigPath)
	if err != nil {
		return Decision{}, err
	}
	publishedConfig := filepath.Join(out, filepath.Base(d.inputs.ConfigPath))
	lastBuild, ok, err := d.modTime(publishedConfig)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return rebuild("no published configuration at %s", publishedConfig), nil
	}
	if configTime.After(lastBuild) {
		return rebuild("configuration %s changed", d.inputs.ConfigPath), nil
	}

	for _, name := range themeAssets {
		src, srcOK, err := d.modTime(filepath.Join(d.inputs.ThemeDir, name))
		if err != nil {
			return Decision{}, err
		}
		dst, dstOK, err := d.modTime(filepath.Join(out, name))
		if err != nil {
			return Decision{}, err
		}
		if !dstOK {
			return rebuild("theme asset %s not published", name), nil
		}
		if srcOK && dst.Before(src) {
			return rebuild("theme asset %s changed", name), nil
		}
	}

	if d.ToolPath != nil {
		if tool, err := d.ToolPath(); err == nil {
			toolTime, ok, err := d.modTime(tool)
			if err != nil {
				return Decision{}, err
			}
			if ok && toolTime.After(lastBuild) {
				return rebuild("build tool %s is newer than the last build", tool), nil
			}
		}
	}

	for _, album := range albums {
		for _, m := range album.Media {
			dst, ok, err := d.modTime(filepath.Join(out, album.Name, m.Name))
			if err != nil {
				return Decision{}, err
			}
			if !ok {
				return rebuild("%s/%s not published", album.Name, m.Name), nil
			}
			if dst.Before(m.ModTime) {
				return rebuild("%s/%s changed", album.Name, m.Name), nil
			}
		}
	}

	entries, err := filesystem.ReadDirWithRetry(out, d.retry)
	if err != nil {
		return Decision{}, err
	}
	published := make(map[string]bool, len(entries))
	for _, e := range entries {
		published[e.Name()] = true
	}
	expected := render.PageNames(albums)
	for _, name := range expected {
		if !published[name] {
			return rebuild("page %s not published", name), nil
		}
		delete(published, name)
	}
	// Whatever gallery page is left belongs to a removed album or media file.
	for _, e := range entries {
		if published[e.Name()] && render.IsGalleryPage(e.Name()) {
			return rebuild("page %s is no longer in the catalog", e.Name()), nil
		}
	}

	return Decision{Reason: "output is up to date"}, nil
}

// modTime returns the modification time of path, with ok=false when the
// path does not exist.
func (d *Decider) modTime(path string) (time.Time, bool, error) {
	info, err := filesystem.StatWithRetry(path, d.retry)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return info.ModTime(), true, nil
}
