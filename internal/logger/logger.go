package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger from the environment.
//
// Env vars:
//   - LOG_LEVEL: trace, debug, info (default), warn, error
//   - LOG_FORMAT: console (default) or json
func Setup() error {
	levelRaw := os.Getenv("LOG_LEVEL")
	if levelRaw == "" {
		levelRaw = "info"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelRaw))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	var out = os.Stdout
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return nil
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	return nil
}

// WithComponent returns a logger tagged with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
