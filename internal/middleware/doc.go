// Package middleware provides HTTP middleware for the gallery preview server.
//
// It includes:
//   - One-line request logging with the request kind and encoding
//   - Response compression (gzip) for pages and theme assets
//   - Prometheus request metrics labelled by request kind (page, media, asset)
package middleware
