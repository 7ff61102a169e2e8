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

//go:build !integration

package logtest

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Fields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 1, 12, 0, 0, 250*int(time.Millisecond), time.UTC)
	r := Record{
		Time:     ts,
		Level:    slog.LevelWarn,
		Message:  "mask created",
		Name:     "events",
		Relative: 1500 * time.Millisecond,
		Source: &slog.Source{
			Function: "relay.dev/relay/glean.(*EventLogger).RecordEvent",
			File:     "/src/relay/glean/logger.go",
			Line:     42,
		},
		Process:     1234,
		ProcessName: "relay",
		Attrs:       map[string]any{"mask_id": "m-1", FieldName: "shadowed"},
	}

	fields := r.Fields()
	assert.Equal(t, "events", fields[FieldName])
	assert.Equal(t, "mask created", fields[FieldMsg])
	assert.Equal(t, "mask created", fields[FieldMessage])
	assert.Equal(t, "WARN", fields[FieldLevelName])
	assert.Equal(t, int(slog.LevelWarn), fields[FieldLevelNo])
	assert.InDelta(t, float64(ts.Unix())+0.25, fields[FieldCreated], 1e-6)
	assert.Equal(t, float64(250), fields[FieldMsecs])
	assert.Equal(t, float64(1500), fields[FieldRelativeCreated])
	assert.Equal(t, "/src/relay/glean/logger.go", fields[FieldPathname])
	assert.Equal(t, "logger.go", fields[FieldFilename])
	assert.Equal(t, 42, fields[FieldLineNo])
	assert.Equal(t, "(*EventLogger).RecordEvent", fields[FieldFuncName])
	assert.Equal(t, "logger", fields[FieldModule])
	assert.Equal(t, 1234, fields[FieldProcess])
	assert.Equal(t, "relay", fields[FieldProcessName])
	assert.Equal(t, "m-1", fields["mask_id"])
}

func TestRecord_FieldsMinimal(t *testing.T) {
	t.Parallel()

	fields := Record{}.Fields()
	assert.Equal(t, map[string]any{
		FieldName:      "",
		FieldMsg:       "",
		FieldMessage:   "",
		FieldLevelName: "INFO",
		FieldLevelNo:   0,
	}, fields)
}

func TestFuncName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		qualified string
		fn        string
	}{
		{"main.main", "main"},
		{"relay.dev/relay/glean.NewEventLogger", "NewEventLogger"},
		{"relay.dev/relay/glean.(*EventLogger).emit.func1", "(*EventLogger).emit.func1"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.qualified, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.fn, funcName(tt.qualified))
		})
	}
}

func TestRecord_FieldsModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		module string
	}{
		{"/src/relay/glean/logger.go", "logger"},
		{"recorder_test.go", "recorder_test"},
		{"/src/relay/Makefile", "Makefile"},
		{"/src/relay/archive.tar.gz", "archive.tar"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			fields := Record{Source: &slog.Source{File: tt.file}}.Fields()
			assert.Equal(t, tt.module, fields[FieldModule])
		})
	}
}

func TestRecords_Named(t *testing.T) {
	t.Parallel()

	rs := Records{{Name: "a", Message: "1"}, {Name: "b", Message: "2"}, {Name: "a", Message: "3"}}
	assert.Equal(t, Records{{Name: "a", Message: "1"}, {Name: "a", Message: "3"}}, rs.Named("a"))
	assert.Nil(t, rs.Named("c"))
	assert.Equal(t, []Record(rs), rs.Records())
}
