package media

import (
	"fmt"
	"image"
	"io"
	"time"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/mediatypes"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/tiff" // TIFF format support
	_ "golang.org/x/image/webp" // WebP format support
)

// ImageInfo holds what the media page shows about an image beyond its size.
type ImageInfo struct {
	Width  int
	Height int
	// Taken is the EXIF capture time, zero when unavailable.
	Taken time.Time
}

// HasDimensions reports whether the image header could be decoded.
func (i ImageInfo) HasDimensions() bool {
	return i.Width > 0 && i.Height > 0
}

// ProbeImage reads the dimensions of a raster image without decoding the
// pixel data, plus the EXIF capture time for JPEG and TIFF files.
// SVG and unrecognized formats return an error.
func ProbeImage(path string) (ImageInfo, error) {
	if mediatypes.Ext(path) == ".svg" {
		return ImageInfo{}, fmt.Errorf("%s: vector images have no pixel dimensions", path)
	}

	file, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return ImageInfo{}, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decode image header %s: %w", path, err)
	}
	info := ImageInfo{Width: config.Width, Height: config.Height}

	format, err := imaging.FormatFromFilename(path)
	if err != nil || (format != imaging.JPEG && format != imaging.TIFF) {
		return info, nil
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return info, nil
	}
	x, err := exif.Decode(file)
	if err != nil {
		logging.Debug("No EXIF data in %s: %v", path, err)
		return info, nil
	}
	if taken, err := x.DateTime(); err == nil {
		info.Taken = taken
	}
	return info, nil
}
