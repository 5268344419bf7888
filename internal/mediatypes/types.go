package mediatypes

import (
	"path/filepath"
	"strings"
)

// FileType represents the type of a media file.
type FileType string

const (
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeUnknown represents a file the gallery does not publish.
	FileTypeUnknown FileType = "unknown"
)

// ImageExtensions maps file extensions to whether they are supported image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".svg":  true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".mkv":  true,
	".m4v":  true,
}

// VideoMimeTypes maps video extensions to the type advertised in <source> tags.
// Extensions missing here fall back to DefaultVideoMimeType.
var VideoMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".ogg":  "video/ogg",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
}

// DefaultVideoMimeType is used for video extensions without a dedicated entry.
const DefaultVideoMimeType = "video/mp4"

// Ext returns the lowercase extension of name, including the leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
// Returns FileTypeUnknown if the extension is not recognized.
func GetFileType(ext string) FileType {
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	return FileTypeUnknown
}

// Classify returns the FileType for a file name, ignoring extension case.
func Classify(name string) FileType {
	return GetFileType(Ext(name))
}

// GetVideoMimeType returns the MIME type for a video extension.
func GetVideoMimeType(ext string) string {
	if mime, ok := VideoMimeTypes[ext]; ok {
		return mime
	}
	return DefaultVideoMimeType
}

// IsMediaFile returns true if the file name has a publishable extension.
func IsMediaFile(name string) bool {
	return Classify(name) != FileTypeUnknown
}
