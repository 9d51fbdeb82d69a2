// Package slog provides log/slog decorators for the postdoc service
// interfaces. Each decorator logs one line per call with its duration and
// error.
package slog
