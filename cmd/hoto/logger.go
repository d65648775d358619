package main

import (
	"os"

	"github.com/charmbracelet/log"
)

// cliLogger implements hoto.Logger on top of a leveled stderr logger.
type cliLogger struct {
	l *log.Logger
}

// newCLILogger shows warnings and errors by default, info with verbose and
// everything, with the calling function, with debug.
func newCLILogger(verbose, debug bool) *cliLogger {
	opts := log.Options{Level: log.WarnLevel}
	switch {
	case debug:
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		opts.CallerOffset = 1
	case verbose:
		opts.Level = log.InfoLevel
	}
	return &cliLogger{l: log.NewWithOptions(os.Stderr, opts)}
}

func (c *cliLogger) Debugf(format string, args ...any) {
	c.l.Debugf(format, args...)
}

func (c *cliLogger) Infof(format string, args ...any) {
	c.l.Infof(format, args...)
}

func (c *cliLogger) Warnf(format string, args ...any) {
	c.l.Warnf(format, args...)
}

func (c *cliLogger) Errorf(format string, args ...any) {
	c.l.Errorf(format, args...)
}
