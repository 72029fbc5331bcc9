package logging

import (
	"log/slog"
	"os"
	"strings"
)

const (
	// KeyError is the log key used for error values.
	KeyError = "err"

	// KeyDal is the log key used for the data access layer name.
	KeyDal = "dal"

	// KeyComponent is the log key used for the component name.
	KeyComponent = "component"

	// EnvLogLevel is the environment variable for the log level.
	EnvLogLevel = `LOG_LEVEL`
)

// Name is the name of the application that the logger is for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// name is the name of the application.
	name string

	// level is the minimum level that will be logged.
	level slog.Level
}

// NewConfig creates a new logging configuration for the named application. The
// level is taken from the environment, defaulting to info.
func NewConfig(name Name) *Config {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv(EnvLogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return &Config{
		name:  string(name),
		level: level,
	}
}

// CommonLogger creates the common logger for the application. The logger writes
// JSON to stdout and carries the application name on every record.
func CommonLogger(c *Config) (*slog.Logger, error) {
	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: c.level,
	})).With(slog.String("app", c.name))

	// Set as the default so that packages without an injected logger still log
	// in the common format.
	slog.SetDefault(l)

	return l, nil
}
