// Package theme publishes the site's static assets: the theme stylesheet and
// script, font files, and a copy of the configuration file.
//
// Theme files are read from the configured theme directory; any file the
// directory does not provide is written from a built-in default. The
// configuration copy is stamped with the publish time and serves as the
// baseline the incremental package compares sources against.
package theme
