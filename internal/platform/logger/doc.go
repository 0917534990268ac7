// Package logger provides structured logging for the service.
//
// Records are written through log/slog. The "json" format uses slog's JSON
// handler; the "console" format renders through a zap console core with
// colored levels, which is easier to read during local development.
package logger
