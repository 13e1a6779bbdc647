package mdb

import (
	"os"

	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/madkins23/mongo-harness/mdbenv"
)

// Logger returns a console logger at the level named in the settings.
// An unknown level name falls back to info.
func Logger(settings *mdbenv.Settings) zerolog.Logger {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "mongo-driver").
		Logger()
}

// DriverLoggerOptions routes driver command logging to the specified logger.
func DriverLoggerOptions(logger zerolog.Logger) *options.LoggerOptions {
	sink := zerologr.New(&logger).GetSink()

	return options.
		Logger().
		SetSink(sink).
		SetMaxDocumentLength(256).
		SetComponentLevel(options.LogComponentCommand, options.LogLevelDebug)
}
