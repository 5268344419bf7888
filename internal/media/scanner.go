package media

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/mediatypes"
	"gallery-builder/internal/metrics"
)

// CoverSource returns the configured cover for an album folder, or "" when
// none is configured. config.Settings implements it.
type CoverSource interface {
	Cover(album string) string
}

// Scanner builds the album catalog from the immediate subdirectories of an
// input root.
type Scanner struct {
	root   string
	covers CoverSource
	retry  filesystem.RetryConfig
}

// NewScanner creates a new Scanner instance. covers may be nil.
func NewScanner(root string, covers CoverSource) *Scanner {
	return &Scanner{
		root:   root,
		covers: covers,
		retry:  filesystem.DefaultRetryConfig(),
	}
}

// Scan returns the ordered album catalog. Albums without media are dropped.
// Scanning an unchanged tree twice yields equal catalogs.
func (s *Scanner) Scan() ([]Album, error) {
	start := time.Now()
	defer func() {
		metrics.BuildPhaseDuration.WithLabelValues("scan").Observe(time.Since(start).Seconds())
	}()

	entries, err := filesystem.ReadDirWithRetry(s.root, s.retry)
	if err != nil {
		return nil, err
	}

	var albums []Album
	for _, entry := range entries {
		dir := filepath.Join(s.root, entry.Name())
		if !s.isDir(entry, dir) {
			continue
		}

		album, err := s.scanAlbum(entry.Name(), dir)
		if err != nil {
			logging.Warn("Skipping album %s: %v", entry.Name(), err)
			continue
		}
		if album.Count() == 0 {
			logging.Debug("Album %s has no media, excluded", entry.Name())
			continue
		}
		albums = append(albums, album)
	}

	SortAlbums(albums)
	return albums, nil
}

// isDir follows symlinks so linked album folders are included.
func (s *Scanner) isDir(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := filesystem.StatWithRetry(path, s.retry)
	return err == nil && info.IsDir()
}

func (s *Scanner) scanAlbum(name, dir string) (Album, error) {
	parsed := ParseAlbumName(name)
	album := Album{
		Name:        name,
		DisplayName: parsed.Display,
		Order:       parsed.Order,
		HasOrder:    parsed.HasOrder,
		Path:        dir,
	}

	entries, err := filesystem.ReadDirWithRetry(dir, s.retry)
	if err != nil {
		return Album{}, err
	}

	// os.ReadDir returns entries sorted by file name
	for _, entry := range entries {
		fileType := mediatypes.Classify(entry.Name())
		if fileType == mediatypes.FileTypeUnknown {
			if !entry.IsDir() {
				metrics.ScannerFilesSkipped.Inc()
			}
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := filesystem.StatWithRetry(path, s.retry)
		if err != nil {
			logging.Warn("Cannot stat %s: %v", path, err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		album.Media = append(album.Media, Media{
			Name:    entry.Name(),
			Path:    path,
			Type:    fileType,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	if album.Count() > 0 {
		album.Cover = s.resolveCover(album)
	}
	return album, nil
}

// resolveCover applies the cover precedence: configured path, then the video
// placeholder when the thumbnail is a video, then the thumbnail itself.
func (s *Scanner) resolveCover(album Album) Cover {
	if s.covers != nil {
		if configured := s.covers.Cover(album.Name); configured != "" {
			return Cover{Kind: CoverConfigured, URL: NormalizeCoverPath(configured)}
		}
	}
	if album.Thumbnail().IsVideo() {
		return Cover{Kind: CoverPlaceholder}
	}
	return Cover{Kind: CoverThumbnail}
}

// NormalizeCoverPath keeps http(s) URLs verbatim and turns a root-relative
// path into a relative one.
func NormalizeCoverPath(cover string) string {
	switch {
	case strings.HasPrefix(cover, "http"):
		return cover
	case strings.HasPrefix(cover, "/"):
		return cover[1:]
	default:
		return cover
	}
}

// SortAlbums orders albums with an ordinal first, by ascending ordinal, then
// the rest; ties are broken by display name. The sort is stable.
func SortAlbums(albums []Album) {
	sort.SliceStable(albums, func(i, j int) bool {
		a, b := albums[i], albums[j]
		if a.HasOrder != b.HasOrder {
			return a.HasOrder
		}
		if a.HasOrder && a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.DisplayName < b.DisplayName
	})
}
