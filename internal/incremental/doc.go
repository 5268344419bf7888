// Package incremental decides whether a gallery build can be skipped.
//
// A build is needed when the output directory or index page is missing, the
// configuration file is newer than its published copy, a theme asset is newer
// than (or missing from) the output, the build tool binary is newer than the
// last build, or any catalog media file is missing from the output or newer
// than its copy. Otherwise the whole build is skipped with no side effects.
package incremental
