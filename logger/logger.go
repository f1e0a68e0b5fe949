// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger is a thin zerolog wrapper shared by the dataset builders
// and the command line programs.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	logger *zerolog.Logger
}

// New returns a JSON logger writing to stderr.
func New(isDebug bool) *Logger {
	logger := zerolog.New(os.Stderr).Level(level(isDebug)).With().Timestamp().Logger()
	return &Logger{logger: &logger}
}

// NewConsole returns a human readable logger tagged with the program name.
func NewConsole(isDebug bool, tag string, noColor bool) *Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000", NoColor: noColor}
	logger := zerolog.New(output).Level(level(isDebug)).With().
		Str("s", tag).
		Timestamp().Logger()
	return &Logger{logger: &logger}
}

// NewWriter logs to w, mostly useful in tests.
func NewWriter(w io.Writer, isDebug bool) *Logger {
	logger := zerolog.New(w).Level(level(isDebug))
	return &Logger{logger: &logger}
}

// Nop discards everything.
func Nop() *Logger {
	logger := zerolog.Nop()
	return &Logger{logger: &logger}
}

func level(isDebug bool) zerolog.Level {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if isDebug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// With creates a child logger with the field added to its context.
func (l *Logger) With() zerolog.Context { return l.logger.With() }

// Extend adds some additional context to the existing logger.
func (l *Logger) Extend(ctx zerolog.Context) *Logger {
	logger := ctx.Logger()
	return &Logger{logger: &logger}
}

// Debug starts a new message with debug level.
// You must call Msg on the returned event in order to send the event.
func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }

// Info starts a new message with info level.
// You must call Msg on the returned event in order to send the event.
func (l *Logger) Info() *zerolog.Event { return l.logger.Info() }

// Warn starts a new message with warn level.
func (l *Logger) Warn() *zerolog.Event { return l.logger.Warn() }

// Error starts a new message with error level.
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }

// Fatal starts a new message with fatal level. The os.Exit(1) function
// is called by the Msg method.
func (l *Logger) Fatal() *zerolog.Event { return l.logger.Fatal() }
