package logger

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns the process logger. Every batch run gets a run_id so log lines
// from overlapping runs can be told apart.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()

	// Interactive runs get human-readable output; structured JSON otherwise.
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	return logger.Level(level)
}
