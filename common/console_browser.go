//go:build js
// +build js

package common

import (
	"github.com/gopherjs/gopherjs/js"
	"github.com/rs/zerolog"
)

// ConsoleWriter forwards zerolog events to the browser developer console,
// choosing console.debug/log/warn/error by level. Events are handed over as
// parsed objects so they stay expandable in dev tools.
type ConsoleWriter struct {
	console *js.Object
}

// NewConsoleWriter binds to window.console.
func NewConsoleWriter() *ConsoleWriter {
	return &ConsoleWriter{console: js.Global.Get("console")}
}

// Write implements io.Writer.
func (c *ConsoleWriter) Write(p []byte) (int, error) {
	return c.WriteLevel(zerolog.InfoLevel, p)
}

// WriteLevel implements zerolog.LevelWriter.
func (c *ConsoleWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	method := "log"
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		method = "debug"
	case zerolog.WarnLevel:
		method = "warn"
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		method = "error"
	}
	c.console.Call(method, js.Global.Get("JSON").Call("parse", string(p)))
	return len(p), nil
}

// UseConsole routes the process logger to the developer console.
func UseConsole() {
	SetLogOutput(NewConsoleWriter())
}
