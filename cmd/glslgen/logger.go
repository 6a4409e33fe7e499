package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

// logConfig holds logger configuration.
type logConfig struct {
	Level  logLevel
	Format string // "text" or "json"
}

func defaultLogConfig() logConfig {
	return logConfig{
		Level:  logLevel(slog.LevelWarn),
		Format: "text",
	}
}

// logLevel is a slog.Level usable as a command line flag.
type logLevel slog.Level

var logLevelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// String implements pflag.Value.
func (l *logLevel) String() string {
	return strings.ToLower(slog.Level(*l).String())
}

// Set implements pflag.Value.
func (l *logLevel) Set(s string) error {
	level, ok := logLevelNames[strings.ToLower(s)]
	if !ok {
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
	*l = logLevel(level)
	return nil
}

// Type implements pflag.Value.
func (l *logLevel) Type() string {
	return "level"
}

var _ pflag.Value = (*logLevel)(nil)

func bindLogFlags(fs *pflag.FlagSet, cfg *logConfig) {
	fs.Var(&cfg.Level, "log-level", "log level: debug, info, warn or error")
	fs.StringVar(&cfg.Format, "log-format", cfg.Format, "log format: text or json")
}

// newLogger builds a logger writing to w.
func newLogger(cfg logConfig, w io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.Format)
	}
	return slog.New(handler), nil
}
