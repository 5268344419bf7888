// Package build runs the gallery pipeline end to end.
//
// A run scans the input directory into an album catalog, asks the
// incremental package whether the published site is stale, copies media on
// a bounded worker pool, renders the index, album and media pages, and
// finally publishes theme assets and the configuration baseline.
//
// Only a missing input directory, an unreadable catalog or a failed asset
// publish abort a run. Individual copy and page failures are logged and
// reported in [Stats].
package build
