// Package startup holds build information and the lifecycle logging shared by
// the gallery commands.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// Output is grouped into sections with a dashed heading:
//   - [Banner]: Start banner and system information
//   - [LogConfiguration]: Loaded settings
//   - [LogBuildSummary]: Totals after a build
//   - [LogHTTPRoutes]: Registered preview routes (debug level)
//   - [LogServerStarted]: Preview endpoints
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
//
// # Environment
//
// The preview server reads PREVIEW_ADDR (default :8000) and
// PREVIEW_LOG_REQUESTS (default true) via [LoadPreviewConfig].
package startup
