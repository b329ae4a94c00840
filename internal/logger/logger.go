// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the Life OS server and client.
//
// Every entry is JSON with the process role, a timestamp and the calling
// function under "func". Request-scoped loggers travel in the context and
// are read back with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger struct {
	zerolog.Logger
}

var setupOnce sync.Once

// setupGlobals configures the caller field once per process. The level is
// reset to debug on every constructor call; SetLevel narrows it afterwards.
func setupGlobals() {
	setupOnce.Do(func() {
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// New builds a logger writing JSON to out.
func New(out io.Writer, role string) *Logger {
	setupGlobals()
	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger writes to stdout. The vault server uses it.
func NewLogger(role string) *Logger {
	return New(os.Stdout, role)
}

// NewClientLogger writes to logPath because the TUI owns the terminal. The
// file and its directory are created when missing; an empty logPath means
// logs/client.log next to the executable. When the file cannot be opened
// entries are discarded.
func NewClientLogger(role, logPath string) *Logger {
	if logPath == "" {
		execPath, _ := os.Executable()
		logPath = filepath.Join(filepath.Dir(execPath), "logs", "client.log")
	}
	return New(openLogFile(logPath), role)
}

func openLogFile(path string) io.Writer {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard
	}
	return f
}

// SetLevel parses level ("debug", "info", ...) and applies it globally.
// Unknown values keep the current level.
func (l *Logger) SetLevel(level string) {
	if level == "" {
		return
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		l.Warn().Str("level", level).Msg("unknown log level, keeping current")
		return
	}
	zerolog.SetGlobalLevel(parsed)
}

// Nop discards everything. For tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger copies the receiver so fields can be added to the copy
// only.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger the trace middleware put into the request
// context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx, or zerolog's default one.
// It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
