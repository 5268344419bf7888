// Package watch rebuilds the gallery when its sources change.
//
// The input tree, theme and fonts directories are watched recursively with
// fsnotify; the configuration file is watched through its parent directory.
// Events are debounced so a burst of copies produces a single rebuild.
// Changes under the output directory are ignored.
package watch
