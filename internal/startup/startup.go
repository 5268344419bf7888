package startup

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"gallery-builder/internal/config"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/workers"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Section logs a phase heading.
func Section(title string, args ...interface{}) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info(title, args...)
	logging.Info("------------------------------------------------------------")
}

// Banner prints the start banner and system information.
func Banner() {
	printBanner()
	logSystemInfo()
}

// LogConfiguration logs the loaded settings.
func LogConfiguration(s *config.Settings) {
	Section("CONFIGURATION")
	logging.Info("  Config file:     %s", s.Path)
	logging.Info("  Input:           %s", s.Input)
	logging.Info("  Output:          %s", s.Output)
	logging.Info("  Title:           %s", s.Title)
	logging.Info("  Footer:          %s (%s)", s.Footer, s.FooterLink)
	logging.Info("  Language:        %s", s.Language)
	logging.Info("  Theme:           %s", s.Theme)
	logging.Info("  Fonts:           %s", s.Fonts)
	logging.Info("  Copy workers:    up to %d", workers.PoolSize(workers.CopyLimit, workers.CopyLimit))
	logging.Info("  Page workers:    up to %d", workers.PoolSize(workers.PageLimit, workers.PageLimit))
	logging.Info("  LOG_LEVEL:       %s", logging.GetLevel())

	if year, ok := s.StartYear(); ok {
		logging.Debug("  start-year:      %d", year)
	}
	if s.StartDate != "" {
		logging.Debug("  start-date:      %s", s.StartDate)
	}
	for _, font := range []struct{ key, value string }{
		{"title-font", s.TitleFont},
		{"footer-font", s.FooterFont},
		{"global-font", s.GlobalFont},
	} {
		if font.value != "" {
			logging.Debug("  %-16s %s", font.key+":", font.value)
		}
	}
}

// BuildSummary holds the totals reported after a build.
type BuildSummary struct {
	Albums     int
	Media      int
	Copied     int
	Skipped    int
	CopyErrors int
	Bytes      int64
	Pages      int
	PageErrors int
	UpToDate   bool
	Duration   time.Duration
}

// LogBuildSummary logs the outcome of a build.
func LogBuildSummary(s BuildSummary) {
	Section("BUILD COMPLETE")
	if s.UpToDate {
		logging.Info("  Output is up to date, nothing to do")
		logging.Info("  Elapsed:         %v", s.Duration.Round(time.Millisecond))
		return
	}
	logging.Info("  Albums:          %d", s.Albums)
	logging.Info("  Media files:     %d", s.Media)
	logging.Info("  Copied:          %d (%s)", s.Copied, formatBytes(s.Bytes))
	logging.Info("  Skipped:         %d", s.Skipped)
	logging.Info("  Pages written:   %d", s.Pages)
	if s.CopyErrors > 0 || s.PageErrors > 0 {
		logging.Warn("  Failures:        %d copies, %d pages", s.CopyErrors, s.PageErrors)
	}
	logging.Info("  Elapsed:         %v", s.Duration.Round(time.Millisecond))
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes at debug level
func LogHTTPRoutes(router *mux.Router, logRequests bool) {
	Section("PREVIEW SERVER SETUP")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })

		logging.Debug("  Registered routes (%d total):", len(routes))
		for _, route := range routes {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
	}

	if logRequests {
		logging.Info("  Request logging: ON")
	} else {
		logging.Info("  Request logging: OFF (set PREVIEW_LOG_REQUESTS=true to enable)")
	}
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Addr            string
	Root            string
	StartupDuration time.Duration
}

// LogServerStarted logs the preview endpoints
func LogServerStarted(config ServerConfig) {
	Section("PREVIEW STARTED")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("  Serving:         %s", config.Root)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Site:          http://%s/", displayAddr(config.Addr))
	logging.Info("    Metrics:       http://%s/metrics", displayAddr(config.Addr))
	logging.Info("    Health:        http://%s/healthz", displayAddr(config.Addr))
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	Section("SHUTDOWN INITIATED (received %s)", signal)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// PreviewConfig holds the environment-driven preview server settings.
type PreviewConfig struct {
	Addr        string
	LogRequests bool
}

// LoadPreviewConfig reads PREVIEW_ADDR (default :8000) and
// PREVIEW_LOG_REQUESTS (default true).
func LoadPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Addr:        getEnv("PREVIEW_ADDR", ":8000"),
		LogRequests: getEnvBool("PREVIEW_LOG_REQUESTS", true),
	}
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
   ______      ____
  / ____/___ _/ / /__  _______  __
 / / __/ __ '/ / / _ \/ ___/ / / /
/ /_/ / /_/ / / /  __/ /  / /_/ /
\____/\__,_/_/_/\___/_/   \__, /
                         /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
	}
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
