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

package logtest

import (
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// Standard attribute names exposed by [Record.Fields]. They describe the
// record itself rather than anything the caller attached.
const (
	FieldArgs            = "args"
	FieldCreated         = "created"
	FieldExcInfo         = "exc_info"
	FieldExcText         = "exc_text"
	FieldFilename        = "filename"
	FieldFuncName        = "funcName"
	FieldLevelName       = "levelname"
	FieldLevelNo         = "levelno"
	FieldLineNo          = "lineno"
	FieldMessage         = "message"
	FieldModule          = "module"
	FieldMsecs           = "msecs"
	FieldMsg             = "msg"
	FieldName            = "name"
	FieldPathname        = "pathname"
	FieldProcess         = "process"
	FieldProcessName     = "processName"
	FieldRelativeCreated = "relativeCreated"
	FieldStackInfo       = "stack_info"
	FieldThread          = "thread"
	FieldThreadName      = "threadName"
)

// Record is a captured log record.
type Record struct {
	Time    time.Time
	Level   slog.Level
	Message string

	// Name is the logger name, taken from the logging.LoggerKey attribute.
	Name string

	// Source is nil when the record carries no caller information.
	Source *slog.Source

	// Relative is the time elapsed between the start of capture and the
	// record. Zero for parsed records.
	Relative time.Duration

	// Process and ProcessName identify the emitting process. Zero for
	// parsed records.
	Process     int
	ProcessName string

	// Attrs holds every attribute attached by the caller, including those
	// added through With. Groups become nested maps.
	Attrs map[string]any
}

// Fields returns the record as a flat attribute map: the standard fields
// under their Field* names merged with Attrs. Standard fields win when an
// attribute uses one of their names.
//
// Only fields with a value are present. Fields never includes args,
// exc_info, exc_text, stack_info, thread or threadName, which have no
// counterpart in slog.
func (r Record) Fields() map[string]any {
	fields := make(map[string]any, len(r.Attrs)+16)
	for k, v := range r.Attrs {
		fields[k] = v
	}

	fields[FieldName] = r.Name
	fields[FieldMsg] = r.Message
	fields[FieldMessage] = r.Message
	fields[FieldLevelName] = r.Level.String()
	fields[FieldLevelNo] = int(r.Level)

	if !r.Time.IsZero() {
		fields[FieldCreated] = float64(r.Time.UnixNano()) / float64(time.Second)
		fields[FieldMsecs] = math.Floor(float64(r.Time.Nanosecond()) / float64(time.Millisecond))
	}
	if r.Relative > 0 {
		fields[FieldRelativeCreated] = float64(r.Relative) / float64(time.Millisecond)
	}

	if r.Source != nil && r.Source.File != "" {
		fields[FieldPathname] = r.Source.File
		base := filepath.Base(r.Source.File)
		fields[FieldFilename] = base
		fields[FieldModule] = strings.TrimSuffix(base, filepath.Ext(base))
		fields[FieldLineNo] = r.Source.Line
		fields[FieldFuncName] = funcName(r.Source.Function)
	}

	if r.Process != 0 {
		fields[FieldProcess] = r.Process
		fields[FieldProcessName] = r.ProcessName
	}

	return fields
}

// funcName strips the package path from a fully qualified function name:
// "relay.dev/relay/glean.(*EventLogger).RecordEvent" becomes
// "(*EventLogger).RecordEvent".
func funcName(qualified string) string {
	base := qualified
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.Index(base, "."); i >= 0 {
		return base[i+1:]
	}
	return base
}

// Records is an ordered list of captured records.
type Records []Record

// Records returns rs itself, so a parsed slice can stand in wherever a
// [Recorder] is accepted as a record source.
func (rs Records) Records() []Record {
	return rs
}

// Named returns the records written by the logger with the given name,
// in capture order.
func (rs Records) Named(name string) Records {
	var out Records
	for _, r := range rs {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}
