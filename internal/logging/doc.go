// Package logging provides a simple leveled logging interface for the
// gallery builder.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: Build progress messages
//   - WARN: Non-fatal conditions (bad copyright date, empty catalog)
//   - ERROR: Failed copy or page tasks
//   - FATAL: Fatal errors that terminate the process
//
// The log level is configured via the LOG_LEVEL environment variable and can
// be raised to debug with SetLevel (the --verbose flag). Output goes to
// standard output; level tags are colored when that output is a terminal.
package logging
