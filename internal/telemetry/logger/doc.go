// Package logger provides structured logging for reefdb-go.
//
// It wraps log/slog with JSON output by default, dynamic level control,
// and automatic redaction of credential material (auth keys, secrets)
// before records reach a handler.
package logger
