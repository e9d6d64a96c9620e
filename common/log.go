package common

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Log is the process logger. Browser builds point it at the developer
// console; native tools write to stderr.
var Log = newLogger(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetLogOutput replaces the logger's destination, keeping its level.
func SetLogOutput(w io.Writer) {
	lvl := Log.GetLevel()
	Log = newLogger(w).Level(lvl)
}

// SetDebug enables or disables debug-level logging.
func SetDebug(on bool) {
	if on {
		Log = Log.Level(zerolog.DebugLevel)
		return
	}
	Log = Log.Level(zerolog.InfoLevel)
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}
