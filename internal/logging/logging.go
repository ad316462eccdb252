package logging

import (
	"io"
	"log"
)

type Logger interface {
	Printf(fmt string, v ...any)
}

// OrDefault returns the logger itself, or the standard logger if it's nil.
func OrDefault(logger Logger) Logger {
	if logger == nil {
		return log.Default()
	}

	return logger
}

// Discard drops everything.
var Discard Logger = log.New(io.Discard, "", 0)
