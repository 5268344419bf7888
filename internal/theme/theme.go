package theme

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"gallery-builder/internal/config"
	"gallery-builder/internal/copier"
	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/metrics"
)

//go:embed assets/style.css assets/enhancements.js
var defaults embed.FS

// Assets lists the theme files published to the site root.
var Assets = []string{"style.css", "enhancements.js"}

// FontsDir is where fonts are published, relative to the output directory.
const FontsDir = "assets/fonts"

// Result summarizes a publish run.
type Result struct {
	// Copied counts theme files copied from the theme directory.
	Copied int
	// Embedded counts theme files written from the built-in defaults.
	Embedded int
	Fonts    int
	// Config is the published configuration path, "" when settings were not
	// loaded from a file.
	Config string
}

// Publisher copies theme assets, fonts and the configuration file into the
// output directory.
type Publisher struct {
	themeDir   string
	fontsDir   string
	configPath string
	output     string
	retry      filesystem.RetryConfig
	now        func() time.Time
}

// NewPublisher creates a Publisher for the given settings.
func NewPublisher(s *config.Settings) *Publisher {
	return &Publisher{
		themeDir:   s.Theme,
		fontsDir:   s.Fonts,
		configPath: s.Path,
		output:     s.Output,
		retry:      filesystem.DefaultRetryConfig(),
		now:        time.Now,
	}
}

// Publish writes every asset. The configuration copy runs last and gets the
// current time as its modification time; it marks a completed build.
func (p *Publisher) Publish() (Result, error) {
	start := time.Now()
	defer func() {
		metrics.BuildPhaseDuration.WithLabelValues("publish").Observe(time.Since(start).Seconds())
	}()

	var res Result
	if err := os.MkdirAll(p.output, 0o755); err != nil {
		return res, fmt.Errorf("create output directory: %w", err)
	}

	for _, name := range Assets {
		embedded, err := p.publishAsset(name)
		if err != nil {
			return res, err
		}
		if embedded {
			res.Embedded++
		} else {
			res.Copied++
		}
	}

	fonts, err := p.publishFonts()
	if err != nil {
		return res, err
	}
	res.Fonts = fonts

	if p.configPath != "" {
		dest, err := p.publishConfig()
		if err != nil {
			return res, err
		}
		res.Config = dest
	}

	logging.Info("Published %d theme files (%d built-in), %d fonts",
		res.Copied+res.Embedded, res.Embedded, res.Fonts)
	return res, nil
}

// publishAsset copies name from the theme directory, falling back to the
// built-in default when the theme does not provide it.
func (p *Publisher) publishAsset(name string) (embedded bool, err error) {
	src := filepath.Join(p.themeDir, name)
	dest := filepath.Join(p.output, name)

	info, err := filesystem.StatWithRetry(src, p.retry)
	switch {
	case err == nil && info.Mode().IsRegular():
		if _, err := copier.CopyFile(src, dest, p.retry); err != nil {
			return false, fmt.Errorf("publish %s: %w", name, err)
		}
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("publish %s: %w", name, err)
	}

	data, err := Default(name)
	if err != nil {
		return false, fmt.Errorf("built-in %s: %w", name, err)
	}
	logging.Debug("Theme %s has no %s, using built-in default", p.themeDir, name)
	if err := filesystem.WriteFileWithRetry(dest, data, 0o644, p.retry); err != nil {
		return true, fmt.Errorf("publish %s: %w", name, err)
	}
	return true, nil
}

// publishFonts copies regular files from the fonts directory. A missing
// fonts directory is not an error.
func (p *Publisher) publishFonts() (int, error) {
	entries, err := filesystem.ReadDirWithRetry(p.fontsDir, p.retry)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read fonts directory: %w", err)
	}

	dir := filepath.Join(p.output, FontsDir)
	count := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if count == 0 {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return 0, fmt.Errorf("create fonts directory: %w", err)
			}
		}
		if _, err := copier.CopyFile(filepath.Join(p.fontsDir, e.Name()), filepath.Join(dir, e.Name()), p.retry); err != nil {
			return count, fmt.Errorf("publish font %s: %w", e.Name(), err)
		}
		count++
	}
	return count, nil
}

func (p *Publisher) publishConfig() (string, error) {
	dest := filepath.Join(p.output, filepath.Base(p.configPath))
	if _, err := copier.CopyFile(p.configPath, dest, p.retry); err != nil {
		return "", fmt.Errorf("publish configuration: %w", err)
	}
	now := p.now()
	if err := os.Chtimes(dest, now, now); err != nil {
		return "", fmt.Errorf("stamp published configuration: %w", err)
	}
	return dest, nil
}

// Default returns the built-in version of a theme asset.
func Default(name string) ([]byte, error) {
	return defaults.ReadFile(path.Join("assets", name))
}
