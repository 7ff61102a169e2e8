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

package logtest_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay.dev/relay/logging"
	"relay.dev/relay/logging/logtest"
)

func TestParseJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.MustNew(
		logging.WithJSONHandler(),
		logging.WithOutput(&buf),
		logging.WithDebugLevel(),
		logging.WithSource(true),
	)
	logger.Debug("plain", "n", 1)
	logger.Named("glean-server-event").Info("glean-server-event", "payload", `{"events":[]}`)

	records, err := logtest.ParseJSON(&buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "plain", records[0].Message)
	assert.Equal(t, logging.LevelDebug, records[0].Level)
	assert.False(t, records[0].Time.IsZero())
	assert.Equal(t, map[string]any{"n": float64(1)}, records[0].Attrs)
	require.NotNil(t, records[0].Source)
	assert.True(t, strings.HasSuffix(records[0].Source.File, "parse_test.go"))
	assert.Positive(t, records[0].Source.Line)

	assert.Equal(t, "glean-server-event", records[1].Name)
	assert.Equal(t, `{"events":[]}`, records[1].Attrs["payload"])
	assert.Len(t, records.Named("glean-server-event"), 1)
}

func TestParseJSON_Empty(t *testing.T) {
	t.Parallel()

	records, err := logtest.ParseJSON(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = logtest.ParseJSON(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseJSON_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not json\n"},
		{"array", `[1,2]` + "\n"},
		{"null", "null\n"},
		{"numeric level", `{"level":4,"msg":"x"}` + "\n"},
		{"bad time", `{"time":"yesterday","msg":"x"}` + "\n"},
		{"unknown level", `{"level":"LOUD","msg":"x"}` + "\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := logtest.ParseJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestParseJSON_InvalidEntrySentinel(t *testing.T) {
	t.Parallel()

	_, err := logtest.ParseJSON(strings.NewReader(`{"msg":"ok"}` + "\n" + `{"msg":5}` + "\n"))
	require.ErrorIs(t, err, logtest.ErrInvalidEntry)
	assert.Contains(t, err.Error(), "line 2")
}
