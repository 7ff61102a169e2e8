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

// Package glean emits Glean server-side events as structured log records.
//
// Each event becomes one Info record on the logger named [LoggerName]. The
// record carries the ping envelope (document namespace, type, version and
// id, request user agent and IP) and the ping body as a JSON string under
// the payload attribute:
//
//	{"metrics":{},"events":[{"category":"email_mask","name":"created",
//	  "timestamp":"1700000000000","extra":{...}}],"ping_info":{...},
//	  "client_info":{...}}
//
// Log collectors forward these records to the telemetry ingestion
// pipeline; this package only produces them.
package glean
