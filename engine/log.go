package engine

import "log"

// StdLogger adapts a standard library logger. Debug lines are dropped unless
// verbose is set.
type StdLogger struct {
	L       *log.Logger
	Verbose bool
}

func (s StdLogger) Debug(format string, v ...interface{}) {
	if s.Verbose {
		s.L.Printf("DEBUG "+format, v...)
	}
}

func (s StdLogger) Info(format string, v ...interface{}) {
	s.L.Printf(format, v...)
}
