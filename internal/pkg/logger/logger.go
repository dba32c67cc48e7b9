// Package logger implements the ports.Logger contract on the standard
// log package. Output is entirely gated on verbose mode so a plain
// format run prints nothing but its result.
package logger

import (
	"log"
)

// StdLogger writes leveled lines through the standard logger.
type StdLogger struct {
	verbose bool
}

// NewStd creates a logger; verbose is wired to BLACKLINE_DEBUG.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[ERROR]", msg, err, fields)
}
