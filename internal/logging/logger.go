// Package logging provides the leveled JSON logger used across the site.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger writes structured JSON log lines. The zero value is not usable; use New.
type Logger struct {
	slog *slog.Logger
}

// New creates a logger that drops everything below level ("DEBUG", "INFO", "WARN", "ERROR").
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: strings.EqualFold(level, "DEBUG"),
	})

	return &Logger{slog: slog.New(handler)}
}

// Discard returns a logger that writes nothing. Use in tests.
func Discard() *Logger {
	return New("ERROR", io.Discard)
}

// NewForEnvironment mirrors the server's behaviour: production appends to logs/app.log,
// everything else writes to stdout. The returned closer is never nil.
func NewForEnvironment(level, environment string) (*Logger, io.Closer, error) {
	if environment != "production" {
		return New(level, os.Stdout), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(filepath.Join("logs", "app.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(level, file), file, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR", "FATAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithFields returns a new log entry with the specified fields
func (l *Logger) WithFields(fields map[string]any) *EntryBuilder {
	return &EntryBuilder{logger: l, fields: copyFields(fields)}
}

// WithField returns a new log entry with a single field
func (l *Logger) WithField(key string, value any) *EntryBuilder {
	return l.WithFields(map[string]any{key: value})
}

// WithError returns a new log entry carrying err
func (l *Logger) WithError(err error) *EntryBuilder {
	return &EntryBuilder{logger: l, err: err}
}

func (l *Logger) Debug(message string) { l.log(slog.LevelDebug, message, nil, nil) }
func (l *Logger) Info(message string)  { l.log(slog.LevelInfo, message, nil, nil) }
func (l *Logger) Warn(message string)  { l.log(slog.LevelWarn, message, nil, nil) }
func (l *Logger) Error(message string) { l.log(slog.LevelError, message, nil, nil) }

func (l *Logger) log(level slog.Level, message string, fields map[string]any, err error) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, len(fields)+1)
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.slog.LogAttrs(ctx, level, message, attrs...)
}

// EntryBuilder accumulates fields for a single log line.
type EntryBuilder struct {
	logger *Logger
	fields map[string]any
	err    error
}

func (b *EntryBuilder) WithField(key string, value any) *EntryBuilder {
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	b.fields[key] = value
	return b
}

func (b *EntryBuilder) WithFields(fields map[string]any) *EntryBuilder {
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	for k, v := range fields {
		b.fields[k] = v
	}
	return b
}

func (b *EntryBuilder) WithError(err error) *EntryBuilder {
	b.err = err
	return b
}

func (b *EntryBuilder) Debug(message string) { b.logger.log(slog.LevelDebug, message, b.fields, b.err) }
func (b *EntryBuilder) Info(message string)  { b.logger.log(slog.LevelInfo, message, b.fields, b.err) }
func (b *EntryBuilder) Warn(message string)  { b.logger.log(slog.LevelWarn, message, b.fields, b.err) }
func (b *EntryBuilder) Error(message string) { b.logger.log(slog.LevelError, message, b.fields, b.err) }

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
