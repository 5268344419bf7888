// Package preview serves a generated gallery over HTTP for local viewing.
//
// The router exposes the output directory as static files plus the health,
// version and metrics endpoints from the handlers package. It is a
// development aid, not a hosting solution.
package preview
