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
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"

	"relay.dev/relay/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidEntry indicates a JSON log line that is not an object or whose
// standard keys have the wrong type.
var ErrInvalidEntry = errors.New("invalid log entry")

// maxLineSize bounds a single JSON log line. Event payloads can be large.
const maxLineSize = 1 << 20

// ParseJSON parses the JSON-lines output of the logging package's JSON
// handler into records. time, level, msg, source and the logger name are
// split out into the standard fields; every other key lands in Attrs.
// Blank lines are skipped.
func ParseJSON(r io.Reader) (Records, error) {
	var records Records

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var entry map[string]any
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if entry == nil {
			return nil, fmt.Errorf("line %d: %w: not an object", line, ErrInvalidEntry)
		}

		rec, err := recordFromEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, scanner.Err()
}

func recordFromEntry(entry map[string]any) (Record, error) {
	rec := Record{Attrs: make(map[string]any, len(entry))}

	for k, v := range entry {
		switch k {
		case slog.TimeKey:
			s, ok := v.(string)
			if !ok {
				return Record{}, fmt.Errorf("%w: %s is not a string", ErrInvalidEntry, k)
			}
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return Record{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
			}
			rec.Time = t
		case slog.LevelKey:
			s, ok := v.(string)
			if !ok {
				return Record{}, fmt.Errorf("%w: %s is not a string", ErrInvalidEntry, k)
			}
			if err := rec.Level.UnmarshalText([]byte(s)); err != nil {
				return Record{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
			}
		case slog.MessageKey:
			s, ok := v.(string)
			if !ok {
				return Record{}, fmt.Errorf("%w: %s is not a string", ErrInvalidEntry, k)
			}
			rec.Message = s
		case slog.SourceKey:
			src, ok := v.(map[string]any)
			if !ok {
				rec.Attrs[k] = v
				continue
			}
			rec.Source = sourceFromEntry(src)
		case logging.LoggerKey:
			s, ok := v.(string)
			if !ok {
				rec.Attrs[k] = v
				continue
			}
			rec.Name = s
		default:
			rec.Attrs[k] = v
		}
	}

	return rec, nil
}

func sourceFromEntry(m map[string]any) *slog.Source {
	src := &slog.Source{}
	src.Function, _ = m["function"].(string)
	src.File, _ = m["file"].(string)
	if line, ok := m["line"].(float64); ok {
		src.Line = int(line)
	}
	return src
}
