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

package testutil

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay.dev/relay/logging/logtest"
)

func TestLogExtra(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record logtest.Record
		want   map[string]any
	}{
		{
			name:   "empty record",
			record: logtest.Record{},
			want:   map[string]any{},
		},
		{
			name: "standard fields only",
			record: logtest.Record{
				Time:    time.Now(),
				Level:   slog.LevelError,
				Message: "boom",
				Name:    "events",
				Source:  &slog.Source{Function: "main.main", File: "/src/main.go", Line: 3},
				Process: 42,
			},
			want: map[string]any{},
		},
		{
			name: "caller extras",
			record: logtest.Record{
				Message: "mask created",
				Attrs:   map[string]any{"mask_id": "R1", "count": int64(2)},
			},
			want: map[string]any{"mask_id": "R1", "count": int64(2)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LogExtra(tt.record))
		})
	}
}

func TestLogExtra_DropsEveryStandardName(t *testing.T) {
	t.Parallel()

	attrs := map[string]any{"custom": "kept"}
	for k := range standardFields {
		attrs[k] = "shadow"
	}

	extra := LogExtra(logtest.Record{Attrs: attrs})
	assert.Equal(t, map[string]any{"custom": "kept"}, extra)
}

func TestStandardFields_CoverRecordFields(t *testing.T) {
	t.Parallel()

	assert.Len(t, standardFields, 21)

	rec := logtest.NewRecorder()
	slog.New(rec).Info("populated")
	records := rec.Records()
	require.Len(t, records, 1)

	for k := range records[0].Fields() {
		assert.Contains(t, standardFields, k, "record field %q is not a standard field", k)
	}
}

func TestLogExtra_FromRecorder(t *testing.T) {
	t.Parallel()

	logger, rec := logtest.NewTestLogger(t)
	logger.Named("eventsinfo").Info("email_relay", "fxa_id", "abc", "is_reply", false)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, map[string]any{"fxa_id": "abc", "is_reply": false}, LogExtra(records[0]))
}
