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

import (
	"fmt"
	"maps"

	"dario.cat/mergo"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"relay.dev/relay/glean"
	"relay.dev/relay/logging/logtest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// defaultGleanExtra is the extra section of an event about an anonymous
// free user.
var defaultGleanExtra = map[string]string{
	"client_id":              "",
	"fxa_id":                 "",
	"platform":               "",
	"n_random_masks":         "0",
	"n_domain_masks":         "0",
	"n_deleted_random_masks": "0",
	"n_deleted_domain_masks": "0",
	"date_joined_relay":      "-1",
	"premium_status":         "free",
	"date_joined_premium":    "-1",
	"has_extension":          "false",
	"date_got_extension":     "-1",
}

// CreateExpectedGleanEvent returns the expected "event" section of a Glean
// server event payload. extraItems are merged over the defaults key by key.
//
// The result compares equal to an event returned by [GetGleanEvent]: extra
// is a map[string]any holding strings, as JSON decoding produces.
func CreateExpectedGleanEvent(category, name string, extraItems map[string]string, eventTime string) map[string]any {
	merged := maps.Clone(defaultGleanExtra)
	if len(extraItems) > 0 {
		if err := mergo.Merge(&merged, extraItems, mergo.WithOverride); err != nil {
			// Both sides are map[string]string, which mergo always accepts.
			panic(fmt.Sprintf("testutil: merge glean extras: %v", err))
		}
	}

	extra := make(map[string]any, len(merged))
	for k, v := range merged {
		extra[k] = v
	}

	return map[string]any{
		"category":  category,
		"name":      name,
		"extra":     extra,
		"timestamp": eventTime,
	}
}

// RecordSource is an ordered collection of captured log records, such as a
// *logtest.Recorder or logtest.Records.
type RecordSource interface {
	Records() []logtest.Record
}

// GetGleanEvent returns the first Glean server event in source whose
// category and name match. An empty category or name matches any value.
//
// Records from the glean-server-event logger must carry a payload whose
// first event is a JSON object, and that object must carry the category and
// name keys a non-empty filter compares; otherwise the test fails through t. JSON
// decoding errors are returned as is. found is false when no record
// matches.
func GetGleanEvent(t require.TestingT, source RecordSource, category, name string) (event map[string]any, found bool, err error) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	for _, rec := range source.Records() {
		if rec.Name != glean.LoggerName {
			continue
		}

		raw, ok := rec.Attrs[glean.AttrPayload]
		require.Truef(t, ok, "%s record %q has no %s attribute", glean.LoggerName, rec.Message, glean.AttrPayload)
		if !ok {
			return nil, false, nil
		}

		var data []byte
		switch p := raw.(type) {
		case string:
			data = []byte(p)
		case []byte:
			data = p
		default:
			require.Failf(t, "unexpected payload type", "%s payload is %T, want string", glean.LoggerName, raw)
			return nil, false, nil
		}

		var payload struct {
			Events []any `json:"events"`
		}
		if decodeErr := json.Unmarshal(data, &payload); decodeErr != nil {
			return nil, false, decodeErr
		}
		require.NotEmptyf(t, payload.Events, "%s payload has no events", glean.LoggerName)
		if len(payload.Events) == 0 {
			return nil, false, nil
		}

		ev, ok := payload.Events[0].(map[string]any)
		require.Truef(t, ok, "%s event is %T, want an object", glean.LoggerName, payload.Events[0])
		if !ok {
			return nil, false, nil
		}

		if !hasFilterKey(t, ev, "category", category) || !hasFilterKey(t, ev, "name", name) {
			return nil, false, nil
		}
		if category != "" && ev["category"] != category {
			continue
		}
		if name != "" && ev["name"] != name {
			continue
		}
		return ev, true, nil
	}

	return nil, false, nil
}

// hasFilterKey fails the test when a filter is set but ev lacks the key it
// applies to.
func hasFilterKey(t require.TestingT, ev map[string]any, key, filter string) bool {
	if filter == "" {
		return true
	}
	if _, ok := ev[key]; ok {
		return true
	}
	require.Failf(t, "event has no "+key, "%s event %v has no %q key to match %q against", glean.LoggerName, ev, key, filter)
	return false
}
