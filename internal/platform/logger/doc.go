// Package logger provides structured logging functionality for the application.
//
// It builds a log/slog logger whose handler is either JSON on stdout or a
// human-readable console handler from charmbracelet/log, and carries
// request-scoped loggers through a context.Context.
package logger
