package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat represents the output format for logs.
type LogFormat string

const (
	// FormatJSON outputs one JSON object per record.
	FormatJSON LogFormat = "json"
	// FormatText outputs logfmt-style key=value records.
	FormatText LogFormat = "text"
)

// Config contains configuration for the Logger.
type Config struct {
	// Level is a slog level expression: "debug", "info", "warn", "error",
	// case-insensitive, optionally followed by an offset ("info+2").
	Level string

	// Format is the output format ("json" or "text"). Defaults to json.
	Format string

	// AddSource includes file and line number in logs.
	AddSource bool

	// Writer is the output writer (defaults to os.Stdout).
	Writer io.Writer
}

// Logger owns the process-wide structured logger and its level. The level is
// held in a slog.LevelVar so it can be changed while the handler is in use.
type Logger struct {
	slog  *slog.Logger
	level *slog.LevelVar
}

// New creates a Logger from cfg. It returns an error if the level or format
// cannot be parsed.
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	opts := &slog.HandlerOptions{
		Level:       levelVar,
		AddSource:   cfg.AddSource,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	return &Logger{
		slog:  slog.New(&contextHandler{Handler: handler}),
		level: levelVar,
	}, nil
}

// Slog returns the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// SetLevel parses levelStr and applies it to every logger derived from l.
// The current level is kept if parsing fails.
func (l *Logger) SetLevel(levelStr string) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return err
	}
	l.level.Set(level)
	return nil
}

// ParseLevel parses a slog level expression. An empty string means info.
func ParseLevel(levelStr string) (slog.Level, error) {
	if levelStr == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
	return level, nil
}

// parseFormat parses a log format string into LogFormat.
func parseFormat(formatStr string) (LogFormat, error) {
	switch strings.ToLower(formatStr) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format: %s", formatStr)
	}
}

// sensitiveKeys are attribute keys whose values never reach the output.
var sensitiveKeys = []string{"api_key", "apikey", "authorization", "secret", "token"}

// redactAttr masks the values of sensitive attributes.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return slog.String(a.Key, "***")
		}
	}
	return a
}

// contextHandler adds request-scoped fields from the context to every record.
type contextHandler struct {
	slog.Handler
}

// Handle implements slog.Handler.
func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if fields := extractContextFields(ctx); len(fields) > 0 {
		r.AddAttrs(fields...)
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
