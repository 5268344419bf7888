// Package copier publishes catalog media into the output directory.
//
// Each media item is one independent task on an errgroup limited to
// workers.ForCopy tasks. A destination that already exists with the same
// size and a modification time no older than the source is left alone. The
// public URL of every successful task is collected into a URLs map once all
// tasks finish, so media descriptors are never mutated.
package copier
