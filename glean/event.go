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

package glean

import (
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// Event extra keys. The first twelve are attached to every user event.
const (
	ExtraClientID           = "client_id"
	ExtraFxAID              = "fxa_id"
	ExtraPlatform           = "platform"
	ExtraRandomMasks        = "n_random_masks"
	ExtraDomainMasks        = "n_domain_masks"
	ExtraDeletedRandomMasks = "n_deleted_random_masks"
	ExtraDeletedDomainMasks = "n_deleted_domain_masks"
	ExtraDateJoinedRelay    = "date_joined_relay"
	ExtraPremiumStatus      = "premium_status"
	ExtraDateJoinedPremium  = "date_joined_premium"
	ExtraHasExtension       = "has_extension"
	ExtraDateGotExtension   = "date_got_extension"
	ExtraMaskID             = "mask_id"
	ExtraIsRandomMask       = "is_random_mask"
	ExtraCreatedByAPI       = "created_by_api"
	ExtraHasWebsite         = "has_website"
	ExtraIsReply            = "is_reply"
	ExtraReason             = "reason"
	ExtraEndpoint           = "endpoint"
	ExtraMethod             = "method"
)

// PremiumFree is the premium status of a user without a subscription.
const PremiumFree = "free"

// Event is a single Glean event. All extra values are strings.
type Event struct {
	Category string
	Name     string

	// Timestamp is the event time in Unix milliseconds. The event logger
	// fills it from its clock when empty.
	Timestamp string

	Extra map[string]string
}

// UserInfo describes the Relay user an event is about. The zero value is an
// anonymous free user without masks or extension.
type UserInfo struct {
	ClientID string
	FxAID    string
	Platform string

	RandomMasks        int
	DomainMasks        int
	DeletedRandomMasks int
	DeletedDomainMasks int

	// Zero times are reported as -1.
	DateJoinedRelay   time.Time
	DateJoinedPremium time.Time
	DateGotExtension  time.Time

	// Empty is reported as [PremiumFree].
	PremiumStatus string
	HasExtension  bool
}

// Extras renders u as Glean event extras.
func (u UserInfo) Extras() map[string]string {
	premium := u.PremiumStatus
	if premium == "" {
		premium = PremiumFree
	}

	return map[string]string{
		ExtraClientID:           u.ClientID,
		ExtraFxAID:              u.FxAID,
		ExtraPlatform:           u.Platform,
		ExtraRandomMasks:        cast.ToString(u.RandomMasks),
		ExtraDomainMasks:        cast.ToString(u.DomainMasks),
		ExtraDeletedRandomMasks: cast.ToString(u.DeletedRandomMasks),
		ExtraDeletedDomainMasks: cast.ToString(u.DeletedDomainMasks),
		ExtraDateJoinedRelay:    unixOrUnset(u.DateJoinedRelay),
		ExtraPremiumStatus:      premium,
		ExtraDateJoinedPremium:  unixOrUnset(u.DateJoinedPremium),
		ExtraHasExtension:       cast.ToString(u.HasExtension),
		ExtraDateGotExtension:   unixOrUnset(u.DateGotExtension),
	}
}

func unixOrUnset(t time.Time) string {
	if t.IsZero() {
		return "-1"
	}
	return strconv.FormatInt(t.Unix(), 10)
}

// MaskInfo describes the email mask an event is about.
type MaskInfo struct {
	// ID is the mask identifier, "R<n>" for random masks and "D<n>" for
	// domain masks.
	ID         string
	IsRandom   bool
	HasWebsite bool
}

func (m MaskInfo) extras() map[string]string {
	return map[string]string{
		ExtraMaskID:       m.ID,
		ExtraIsRandomMask: cast.ToString(m.IsRandom),
	}
}

// RequestInfo carries request metadata copied into the ping envelope.
type RequestInfo struct {
	UserAgent string
	IPAddress string
}
