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
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Field names for trace correlation.
const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// ContextLogger writes records with the trace and span IDs of the
// OpenTelemetry span found in its context.
//
// It is typically created per request and used by a single goroutine.
type ContextLogger struct {
	logger  *slog.Logger
	ctx     context.Context
	traceID string
	spanID  string
}

// NewContextLogger wraps logger for ctx. If ctx carries a valid span
// context, trace_id and span_id are added to every record.
func NewContextLogger(ctx context.Context, logger *slog.Logger) *ContextLogger {
	cl := &ContextLogger{logger: logger, ctx: ctx}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		cl.traceID = sc.TraceID().String()
		cl.spanID = sc.SpanID().String()
		cl.logger = logger.With(
			fieldTraceID, cl.traceID,
			fieldSpanID, cl.spanID,
		)
	}

	return cl
}

// Logger returns the underlying [slog.Logger].
func (cl *ContextLogger) Logger() *slog.Logger {
	return cl.logger
}

// TraceID returns the trace ID if available.
func (cl *ContextLogger) TraceID() string {
	return cl.traceID
}

// SpanID returns the span ID if available.
func (cl *ContextLogger) SpanID() string {
	return cl.spanID
}

// With returns a [slog.Logger] with additional attributes.
func (cl *ContextLogger) With(args ...any) *slog.Logger {
	return cl.logger.With(args...)
}

// Debug logs a debug message with context.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.DebugContext(cl.ctx, msg, args...)
}

// Info logs an info message with context.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.InfoContext(cl.ctx, msg, args...)
}

// Warn logs a warning message with context.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.logger.WarnContext(cl.ctx, msg, args...)
}

// Error logs an error message with context.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.ErrorContext(cl.ctx, msg, args...)
}
