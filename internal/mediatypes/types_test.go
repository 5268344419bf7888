package mediatypes

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		file string
		want FileType
	}{
		{name: "MP4 video", file: "clip.mp4", want: FileTypeVideo},
		{name: "uppercase JPG image", file: "IMG_0001.JPG", want: FileTypeImage},
		{name: "text file excluded", file: "notes.txt", want: FileTypeUnknown},
		{name: "mixed case MKV", file: "movie.MkV", want: FileTypeVideo},
		{name: "SVG image", file: "logo.svg", want: FileTypeImage},
		{name: "TIFF image", file: "scan.tiff", want: FileTypeImage},
		{name: "TIF is not in the table", file: "scan.tif", want: FileTypeUnknown},
		{name: "no extension", file: "README", want: FileTypeUnknown},
		{name: "dotfile", file: ".DS_Store", want: FileTypeUnknown},
		{name: "double extension uses last", file: "archive.jpg.zip", want: FileTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.file)
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestGetFileTypeTables(t *testing.T) {
	for ext := range VideoExtensions {
		if got := GetFileType(ext); got != FileTypeVideo {
			t.Errorf("GetFileType(%q) = %v, want video", ext, got)
		}
	}
	for ext := range ImageExtensions {
		if got := GetFileType(ext); got != FileTypeImage {
			t.Errorf("GetFileType(%q) = %v, want image", ext, got)
		}
	}
	if len(VideoExtensions) != 8 {
		t.Errorf("expected 8 video extensions, got %d", len(VideoExtensions))
	}
	if len(ImageExtensions) != 8 {
		t.Errorf("expected 8 image extensions, got %d", len(ImageExtensions))
	}
}

func TestGetVideoMimeType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".mp4", "video/mp4"},
		{".webm", "video/webm"},
		{".ogg", "video/ogg"},
		{".avi", "video/x-msvideo"},
		{".mov", "video/quicktime"},
		{".mkv", "video/mp4"},
		{".m4v", "video/mp4"},
		{"", "video/mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := GetVideoMimeType(tt.ext); got != tt.want {
				t.Errorf("GetVideoMimeType(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestIsMediaFile(t *testing.T) {
	if !IsMediaFile("a.PNG") {
		t.Error("a.PNG should be a media file")
	}
	if IsMediaFile("a.txt") {
		t.Error("a.txt should not be a media file")
	}
}

func TestFileTypeConstants(t *testing.T) {
	if FileTypeImage != "image" {
		t.Errorf("FileTypeImage = %v, want 'image'", FileTypeImage)
	}
	if FileTypeVideo != "video" {
		t.Errorf("FileTypeVideo = %v, want 'video'", FileTypeVideo)
	}
	if FileTypeUnknown != "unknown" {
		t.Errorf("FileTypeUnknown = %v, want 'unknown'", FileTypeUnknown)
	}
}
