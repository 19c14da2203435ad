// Package logging wraps log/slog construction for the mintprep CLI: level and
// format selection, multi-destination output (stderr plus a log file), and
// small attribute helpers shared across packages.
package logging
