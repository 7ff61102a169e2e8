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

package glean_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"relay.dev/relay/glean"
)

func TestUserInfo_ExtrasZeroValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]string{
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
	}, glean.UserInfo{}.Extras())
}

func TestUserInfo_Extras(t *testing.T) {
	t.Parallel()

	u := glean.UserInfo{
		ClientID:           "c",
		FxAID:              "f",
		Platform:           "firefox",
		RandomMasks:        5,
		DomainMasks:        2,
		DeletedRandomMasks: 1,
		DeletedDomainMasks: 3,
		DateJoinedRelay:    time.Unix(1600000000, 0),
		DateJoinedPremium:  time.Unix(1650000000, 0),
		DateGotExtension:   time.Unix(1610000000, 0),
		PremiumStatus:      "bundle_yearly",
		HasExtension:       true,
	}

	extras := u.Extras()
	assert.Equal(t, "5", extras[glean.ExtraRandomMasks])
	assert.Equal(t, "2", extras[glean.ExtraDomainMasks])
	assert.Equal(t, "1", extras[glean.ExtraDeletedRandomMasks])
	assert.Equal(t, "3", extras[glean.ExtraDeletedDomainMasks])
	assert.Equal(t, "1600000000", extras[glean.ExtraDateJoinedRelay])
	assert.Equal(t, "1650000000", extras[glean.ExtraDateJoinedPremium])
	assert.Equal(t, "1610000000", extras[glean.ExtraDateGotExtension])
	assert.Equal(t, "bundle_yearly", extras[glean.ExtraPremiumStatus])
	assert.Equal(t, "true", extras[glean.ExtraHasExtension])
	assert.Equal(t, "firefox", extras[glean.ExtraPlatform])
}
