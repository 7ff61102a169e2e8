// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	// LevelDebug is the debug log level.
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// LoggerKey is the attribute carrying the logger name set by [Logger.Named].
const LoggerKey = "logger"

// Attribute keys added from service metadata.
const (
	ServiceKey     = "service"
	VersionKey     = "version"
	EnvironmentKey = "env"
)

var bgCtx = context.Background()

// Logger is the main logging type that provides structured logging capabilities.
//
// Thread-safety: All public methods are safe for concurrent use.
// The slogger field is accessed atomically, while mu protects initialization
// and reconfiguration operations.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.LevelVar

	// Added to every record when non-empty.
	serviceName    string
	serviceVersion string
	environment    string

	addSource   bool
	replaceAttr func(groups []string, a slog.Attr) slog.Attr

	customHandler slog.Handler
	useCustom     bool

	slogger        atomic.Pointer[slog.Logger]
	mu             sync.Mutex
	isShuttingDown atomic.Bool

	registerGlobal bool
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

func defaultLogger() *Logger {
	l := &Logger{
		handlerType: JSONHandler,
		output:      os.Stdout,
	}
	l.level.Set(LevelInfo)
	return l
}

// New creates a new Logger with the given options.
//
// By default, this function does NOT set the global slog default logger.
// Use [WithGlobalLogger] to register the logger as the global default.
func New(opts ...Option) (*Logger, error) {
	l := defaultLogger()

	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := l.initialize(); err != nil {
		return nil, err
	}
	return l, nil
}

// MustNew creates a new Logger or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

// Validate checks if the configuration is valid.
func (l *Logger) Validate() error {
	if l.useCustom {
		if l.customHandler == nil {
			return ErrNilHandler
		}
		return nil
	}

	if l.output == nil {
		return ErrNilOutput
	}

	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
	}

	return nil
}

func (l *Logger) initialize() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	handler := l.customHandler
	if !l.useCustom {
		opts := &slog.HandlerOptions{
			Level:       &l.level,
			AddSource:   l.addSource,
			ReplaceAttr: l.buildReplaceAttr(),
		}

		switch l.handlerType {
		case JSONHandler:
			handler = slog.NewJSONHandler(l.output, opts)
		case TextHandler:
			handler = slog.NewTextHandler(l.output, opts)
		case ConsoleHandler:
			handler = newConsoleHandler(l.output, opts)
		default:
			return fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
		}
	}

	newLogger := slog.New(handler)

	var attrs []any
	if l.serviceName != "" {
		attrs = append(attrs, ServiceKey, l.serviceName)
	}
	if l.serviceVersion != "" {
		attrs = append(attrs, VersionKey, l.serviceVersion)
	}
	if l.environment != "" {
		attrs = append(attrs, EnvironmentKey, l.environment)
	}
	if len(attrs) > 0 {
		newLogger = newLogger.With(attrs...)
	}

	l.slogger.Store(newLogger)
	if l.registerGlobal {
		slog.SetDefault(newLogger)
	}
	return nil
}

func (l *Logger) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case "password", "token", "secret", "api_key", "authorization":
			return slog.String(a.Key, "***REDACTED***")
		}
		if l.replaceAttr != nil {
			return l.replaceAttr(groups, a)
		}
		return a
	}
}

// Logger returns the underlying [slog.Logger].
// This method is safe for concurrent access.
func (l *Logger) Logger() *slog.Logger {
	return l.slogger.Load()
}

// Named returns a [slog.Logger] tagged with the given logger name.
//
// Records written through it carry a [LoggerKey] attribute, which capture
// handlers and log routers use to recognize the channel.
func (l *Logger) Named(name string) *slog.Logger {
	return l.Logger().With(LoggerKey, name)
}

// With returns a [slog.Logger] with additional attributes.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.Logger().With(args...)
}

// WithGroup returns a [slog.Logger] with a group name.
func (l *Logger) WithGroup(name string) *slog.Logger {
	return l.Logger().WithGroup(name)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l.isShuttingDown.Load() {
		return
	}

	logger := l.Logger()
	if !logger.Enabled(bgCtx, level) {
		return
	}

	// Skip runtime.Callers, log and the exported method so the source
	// location points at the caller.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = logger.Handler().Handle(bgCtx, r)
}

// Debug logs a debug message with structured attributes.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs an informational message with structured attributes.
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with structured attributes.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs an error message with structured attributes.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

// Shutdown stops the logger. Later calls to Debug, Info, Warn and Error are
// dropped. Loggers already obtained through [Logger.Logger] or
// [Logger.Named] are not affected.
func (l *Logger) Shutdown(_ context.Context) error {
	l.isShuttingDown.Store(true)

	logger := l.Logger()
	if logger != nil {
		if flusher, ok := logger.Handler().(interface{ Flush() error }); ok {
			return flusher.Flush()
		}
	}
	return nil
}

// SetLevel changes the minimum log level at runtime. Loggers derived
// through [Logger.Named] or [Logger.With] observe the change.
//
// Returns [ErrCannotChangeLevel] when a custom handler is in use, since the
// handler decides its own level.
func (l *Logger) SetLevel(level Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.useCustom {
		return ErrCannotChangeLevel
	}

	l.level.Set(level)
	return nil
}

// Level returns the current minimum log level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// ServiceName returns the service name.
func (l *Logger) ServiceName() string {
	return l.serviceName
}

// ServiceVersion returns the service version.
func (l *Logger) ServiceVersion() string {
	return l.serviceVersion
}

// Environment returns the environment.
func (l *Logger) Environment() string {
	return l.environment
}

// IsEnabled returns true if logging is enabled and not shutting down.
func (l *Logger) IsEnabled() bool {
	return !l.isShuttingDown.Load()
}
