package internal

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the service logger: JSON output in prod, human-readable
// console output everywhere else.
func NewLogger(w io.Writer, env string, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := w
	if env != "prod" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", "gerai").
		Logger().
		Level(lvl)
}
