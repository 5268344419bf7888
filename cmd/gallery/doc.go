// Package main provides the gallery command.
//
// The default command builds a static photo and video gallery from the
// directory named by the configuration file's input key:
//
//	gallery                      # build with ./config.json
//	gallery -c site.yaml build --clean
//	gallery watch --serve        # rebuild on change and serve the output
//	gallery preview --addr :9000 # serve the output for local viewing
//	gallery version
//
// # Start-up
//
//  1. .env is loaded without overriding the environment
//  2. The filesystem package reports to the Prometheus collectors
//  3. The banner and the loaded configuration are logged
//  4. The build runs and a summary is printed
//  5. With --metrics-file, the build metrics are written in text format
//
// Fatal errors (missing input, unreadable configuration) are logged and the
// process exits with status 1.
package main
