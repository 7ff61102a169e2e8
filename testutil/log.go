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

package testutil

import "relay.dev/relay/logging/logtest"

// standardFields are the attribute names that describe a record itself.
// Must match the names logtest.Record.Fields can produce, otherwise they
// leak into LogExtra.
var standardFields = map[string]struct{}{
	logtest.FieldArgs:            {},
	logtest.FieldCreated:         {},
	logtest.FieldExcInfo:         {},
	logtest.FieldExcText:         {},
	logtest.FieldFilename:        {},
	logtest.FieldFuncName:        {},
	logtest.FieldLevelName:       {},
	logtest.FieldLevelNo:         {},
	logtest.FieldLineNo:          {},
	logtest.FieldMessage:         {},
	logtest.FieldModule:          {},
	logtest.FieldMsecs:           {},
	logtest.FieldMsg:             {},
	logtest.FieldName:            {},
	logtest.FieldPathname:        {},
	logtest.FieldProcess:         {},
	logtest.FieldProcessName:     {},
	logtest.FieldRelativeCreated: {},
	logtest.FieldStackInfo:       {},
	logtest.FieldThread:          {},
	logtest.FieldThreadName:      {},
}

// LogExtra returns the attributes the caller attached to a log call,
// without the standard record fields.
func LogExtra(r logtest.Record) map[string]any {
	extra := make(map[string]any)
	for k, v := range r.Fields() {
		if _, ok := standardFields[k]; ok {
			continue
		}
		extra[k] = v
	}
	return extra
}
