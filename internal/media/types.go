package media

import (
	"time"

	"gallery-builder/internal/mediatypes"
)

// Media describes one publishable file inside an album folder. Descriptors are
// built once by the Scanner and never modified afterwards; the public URL of a
// copied file lives in copier.URLs, keyed by Key.
type Media struct {
	Name    string
	Path    string
	Type    mediatypes.FileType
	Size    int64
	ModTime time.Time
}

// IsVideo reports whether the media item is a video.
func (m Media) IsVideo() bool {
	return m.Type == mediatypes.FileTypeVideo
}

// Ext returns the lowercase extension of the file name.
func (m Media) Ext() string {
	return mediatypes.Ext(m.Name)
}

// Key identifies a media item across the build phases.
type Key struct {
	Album string
	Name  string
}

// CoverKind tells the renderer where an album card image comes from.
type CoverKind int

const (
	// CoverThumbnail uses the URL of the album's first media item.
	CoverThumbnail CoverKind = iota
	// CoverConfigured uses a path or URL from the galleries configuration.
	CoverConfigured
	// CoverPlaceholder uses the inline video placeholder graphic.
	CoverPlaceholder
)

// String returns the string representation of a cover kind
func (k CoverKind) String() string {
	switch k {
	case CoverThumbnail:
		return "thumbnail"
	case CoverConfigured:
		return "configured"
	case CoverPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Cover is the resolved album card image. URL is only set for CoverConfigured.
type Cover struct {
	Kind CoverKind
	URL  string
}

// Album is one immediate subdirectory of the input root with at least one
// media item.
type Album struct {
	// Name is the original folder name, used in output paths.
	Name string
	// DisplayName is Name with any leading ordinal stripped.
	DisplayName string
	// Order is the parsed ordinal; only meaningful when HasOrder is true.
	Order    int
	HasOrder bool
	Path     string
	// Media is ordered by file name.
	Media []Media
	Cover Cover
}

// Thumbnail returns the first media item of the album.
func (a Album) Thumbnail() Media {
	return a.Media[0]
}

// Count returns the number of media items in the album.
func (a Album) Count() int {
	return len(a.Media)
}

// Kinds reports which media types occur in the album.
func (a Album) Kinds() (hasImages, hasVideos bool) {
	for _, m := range a.Media {
		if m.IsVideo() {
			hasVideos = true
		} else {
			hasImages = true
		}
	}
	return hasImages, hasVideos
}

// Key returns the lookup key of the album's i-th media item.
func (a Album) Key(i int) Key {
	return Key{Album: a.Name, Name: a.Media[i].Name}
}
