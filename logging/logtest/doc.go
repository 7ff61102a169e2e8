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

// Package logtest captures log records in memory for assertions.
//
// A [Recorder] is a [slog.Handler]; plug it into a logger built by the
// logging package and inspect what was written:
//
//	logger, rec := logtest.NewTestLogger(t)
//	logger.Named("glean-server-event").Info("glean-server-event", "payload", p)
//
//	for _, r := range rec.Named("glean-server-event") {
//	    _ = r.Attrs["payload"]
//	}
//
// Records captured this way, or parsed back from JSON output with
// [ParseJSON], use the same [Record] structure: a fixed set of standard
// fields plus an open map of caller-supplied attributes.
package logtest
