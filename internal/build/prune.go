package build

import (
	"os"
	"path/filepath"
	"strings"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/media"
	"gallery-builder/internal/render"
	"gallery-builder/internal/theme"
)

// prune removes pages, album directories and media copies left over from
// albums or files that are no longer in the catalog. The index page, theme
// assets, fonts, the published configuration and hidden entries are kept.
// Removal failures are logged and skipped.
func (b *Builder) prune(albums []media.Album) int {
	out := b.settings.Output
	entries, err := filesystem.ReadDirWithRetry(out, b.retry)
	if err != nil {
		logging.Warn("  Cannot list %s for pruning: %v", out, err)
		return 0
	}

	pages := make(map[string]bool)
	for _, name := range render.PageNames(albums) {
		pages[name] = true
	}
	catalog := make(map[string]media.Album, len(albums))
	for _, a := range albums {
		catalog[a.Name] = a
	}
	assetsDir, _, _ := strings.Cut(theme.FontsDir, "/")

	removed := 0
	remove := func(path string) {
		if err := os.RemoveAll(path); err != nil {
			logging.Error("  Failed to remove stale %s: %v", path, err)
			return
		}
		rel, _ := filepath.Rel(out, path)
		logging.Info("  Removed stale %s", rel)
		removed++
	}

	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(out, name)
		switch {
		case strings.HasPrefix(name, "."):
		case !e.IsDir():
			if render.IsGalleryPage(name) && !pages[name] {
				remove(path)
			}
		case name == assetsDir:
		default:
			album, ok := catalog[name]
			if !ok {
				remove(path)
				continue
			}
			b.pruneAlbum(path, album, remove)
		}
	}
	return removed
}

// pruneAlbum removes copied files of album that are no longer in its media list.
func (b *Builder) pruneAlbum(dir string, album media.Album, remove func(string)) {
	entries, err := filesystem.ReadDirWithRetry(dir, b.retry)
	if err != nil {
		logging.Warn("  Cannot list %s for pruning: %v", dir, err)
		return
	}
	keep := make(map[string]bool, album.Count())
	for _, m := range album.Media {
		keep[m.Name] = true
	}
	for _, e := range entries {
		if e.IsDir() || keep[e.Name()] || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		remove(filepath.Join(dir, e.Name()))
	}
}
