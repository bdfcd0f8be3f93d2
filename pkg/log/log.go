package log

import (
	"fmt"
	"io"
	"os"
)

// Level filters which messages a logger writes.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	w     io.Writer
	level Level
}

// New returns a Logger writing info and error messages to stdout.
func New() Logger {
	return &logger{w: os.Stdout, level: LevelInfo}
}

// NewWithWriter returns a Logger writing every message at or
// above level to w.
func NewWithWriter(w io.Writer, level Level) Logger {
	return &logger{w: w, level: level}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, "[INFO]\t", format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, "[ERROR]\t", format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, "[DEBUG]\t", format, args...)
}

func (l *logger) printf(level Level, prefix, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	fmt.Fprintf(l.w, prefix+format+"\n", args...)
}
