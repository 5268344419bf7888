// Package media builds the album catalog of a gallery.
//
// The Scanner reads the immediate subdirectories of the input root. Each
// folder becomes an Album whose display name drops any leading ordinal
// ("01-Trip" becomes "Trip"), whose media are the classified files directly
// inside it in file-name order, and whose cover follows the configured
// override, video placeholder, thumbnail precedence. Empty folders are
// dropped and the catalog is ordered by ordinal, then display name.
//
// ProbeImage reads image headers and EXIF capture times for the media pages.
package media
