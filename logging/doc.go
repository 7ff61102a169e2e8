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

// Package logging provides the structured logger used by Relay services.
//
// Loggers are built on [log/slog] and configured with functional options:
//
//	logger := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithServiceName("relay"),
//	)
//	defer logger.Shutdown(context.Background())
//	logger.Info("service started", "port", 8080)
//
// # Named Loggers
//
// Some consumers route records by channel rather than by level. [Logger.Named]
// returns a child logger tagged with the [LoggerKey] attribute:
//
//	events := logger.Named("glean-server-event")
//	events.Info("glean-server-event", "payload", payload)
//
// # Custom Handlers
//
// [WithHandler] replaces the built-in JSON, text and console handlers. Tests
// use it with a logtest.Recorder to capture records in memory.
//
// # Sensitive Data Redaction
//
// Attributes named password, token, secret, api_key or authorization are
// redacted by the built-in handlers. Additional sanitization can be
// configured using [WithReplaceAttr].
//
// # Context-Aware Logging
//
// [NewContextLogger] adds trace_id and span_id from an active OpenTelemetry
// span to every record it writes.
package logging
