package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"gallery-builder/internal/handlers"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/middleware"
	"gallery-builder/internal/startup"

	"github.com/gorilla/mux"
)

// ShutdownTimeout bounds how long in-flight requests may take to finish.
const ShutdownTimeout = 10 * time.Second

// NewRouter registers the API endpoints and a file server for root.
func NewRouter(root string, h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	r.Handle("/metrics", h.MetricsHandler()).Methods("GET")

	// Generated site
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(root))).Methods("GET", "HEAD")

	return r
}

// Handler wraps the router with the logging, metrics and compression
// middleware.
func Handler(router http.Handler, cfg startup.PreviewConfig) http.Handler {
	var handler http.Handler = router
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	if cfg.LogRequests {
		handler = middleware.Logger(middleware.DefaultLoggingConfig())(handler)
	}
	return middleware.Compression(middleware.DefaultCompressionConfig())(handler)
}

// Serve serves root on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, root string, cfg startup.PreviewConfig) error {
	startTime := time.Now()

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("preview root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("preview root %s is not a directory", root)
	}

	router := NewRouter(root, handlers.New(root))
	startup.LogHTTPRoutes(router, cfg.LogRequests)

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           Handler(router, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	startup.LogServerStarted(startup.ServerConfig{
		Addr:            listener.Addr().String(),
		Root:            root,
		StartupDuration: time.Since(startTime),
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
		return err
	}
	startup.LogShutdownComplete()
	return nil
}
