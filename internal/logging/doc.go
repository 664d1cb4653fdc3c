// Package logging provides opt-in file-based logging with rotation for mandex.
// When the --debug flag is set, logs are written to ~/.mandex/logs/ for
// troubleshooting cache rebuilds and viewer dispatch.
//
// By default (without --debug), logging is minimal and goes to stderr only.
package logging
