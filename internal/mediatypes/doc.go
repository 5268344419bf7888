// Package mediatypes provides shared type definitions and utilities for media file
// handling across the gallery builder.
//
// This package exists as a dependency-free foundation that can be imported by other
// packages without creating import cycles. It contains primitive types, constants,
// and pure utility functions with no external dependencies beyond the standard library.
//
// # File Types
//
// Every file found in an album folder is classified by extension:
//
//	mediatypes.FileTypeImage   // jpg, jpeg, png, gif, bmp, webp, tiff, svg
//	mediatypes.FileTypeVideo   // mp4, avi, mov, wmv, flv, webm, mkv, m4v
//	mediatypes.FileTypeUnknown // everything else, excluded from albums
//
// Use Classify with a file name; the comparison is case-insensitive:
//
//	switch mediatypes.Classify("IMG_0001.JPG") {
//	case mediatypes.FileTypeImage:
//	    // Handle image
//	case mediatypes.FileTypeVideo:
//	    // Handle video
//	}
//
// # MIME Types
//
// GetVideoMimeType selects the type attribute for a <video> source. Only a
// handful of containers are mapped; anything else is advertised as video/mp4.
package mediatypes
