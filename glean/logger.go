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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"relay.dev/relay/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// LoggerName is the name of the logger that carries server events.
	LoggerName = "glean-server-event"

	// EventType is the message and Type attribute of every event record.
	EventType = "glean-server-event"

	DocumentType    = "events"
	DocumentVersion = "1"

	DefaultAppID   = "relay-backend"
	DefaultChannel = "development"
)

// Attribute keys of an event record.
const (
	AttrTimestamp         = "Timestamp"
	AttrType              = "Type"
	AttrDocumentNamespace = "document_namespace"
	AttrDocumentType      = "document_type"
	AttrDocumentVersion   = "document_version"
	AttrDocumentID        = "document_id"
	AttrUserAgent         = "user_agent"
	AttrIPAddress         = "ip_address"
	AttrPayload           = "payload"
)

var (
	// ErrNilLogger indicates [NewEventLogger] was called without a logger.
	ErrNilLogger = errors.New("glean: logger is nil")

	// ErrEmptyCategory indicates an event without a category.
	ErrEmptyCategory = errors.New("glean: event category is empty")

	// ErrEmptyName indicates an event without a name.
	ErrEmptyName = errors.New("glean: event name is empty")

	// ErrEmptyAppID indicates an empty application id.
	ErrEmptyAppID = errors.New("glean: application id is empty")
)

// EventLogger writes Glean server events to a [slog.Logger].
//
// Safe for concurrent use if the clock and id generator are.
type EventLogger struct {
	logger *slog.Logger

	appID             string
	appDisplayVersion string
	appChannel        string

	now   func() time.Time
	newID func() string
	start time.Time
}

// Option configures an [EventLogger].
type Option func(*EventLogger)

// WithAppID sets the application id, used as document namespace and app build.
func WithAppID(id string) Option {
	return func(e *EventLogger) { e.appID = id }
}

// WithAppDisplayVersion sets the application version reported in client_info.
func WithAppDisplayVersion(version string) Option {
	return func(e *EventLogger) { e.appDisplayVersion = version }
}

// WithAppChannel sets the release channel reported in client_info.
func WithAppChannel(channel string) Option {
	return func(e *EventLogger) { e.appChannel = channel }
}

// WithClock replaces [time.Now] as the source of event and ping times.
func WithClock(now func() time.Time) Option {
	return func(e *EventLogger) { e.now = now }
}

// WithDocumentIDGenerator replaces the random UUID document ids.
func WithDocumentIDGenerator(gen func() string) Option {
	return func(e *EventLogger) { e.newID = gen }
}

// NewEventLogger creates an EventLogger writing through logger, which is
// tagged with [LoggerName].
func NewEventLogger(logger *slog.Logger, opts ...Option) (*EventLogger, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	e := &EventLogger{
		appID:      DefaultAppID,
		appChannel: DefaultChannel,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.appID == "" {
		return nil, ErrEmptyAppID
	}

	e.logger = logger.With(logging.LoggerKey, LoggerName)
	e.start = e.now()
	return e, nil
}

type pingEvent struct {
	Category  string            `json:"category"`
	Name      string            `json:"name"`
	Timestamp string            `json:"timestamp"`
	Extra     map[string]string `json:"extra"`
}

type pingInfo struct {
	Seq       int    `json:"seq"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type clientInfo struct {
	TelemetrySDKBuild string `json:"telemetry_sdk_build"`
	FirstRunDate      string `json:"first_run_date"`
	OS                string `json:"os"`
	OSVersion         string `json:"os_version"`
	Architecture      string `json:"architecture"`
	AppBuild          string `json:"app_build"`
	AppDisplayVersion string `json:"app_display_version"`
	AppChannel        string `json:"app_channel"`
}

type ping struct {
	Metrics    map[string]map[string]any `json:"metrics"`
	Events     []pingEvent               `json:"events"`
	PingInfo   pingInfo                  `json:"ping_info"`
	ClientInfo clientInfo                `json:"client_info"`
}

// RecordEvent writes ev as a server event. An empty timestamp is filled
// from the logger's clock.
func (e *EventLogger) RecordEvent(ctx context.Context, req RequestInfo, ev Event) error {
	if ev.Category == "" {
		return ErrEmptyCategory
	}
	if ev.Name == "" {
		return ErrEmptyName
	}

	now := e.now()
	if ev.Timestamp == "" {
		ev.Timestamp = strconv.FormatInt(now.UnixMilli(), 10)
	}
	extra := ev.Extra
	if extra == nil {
		extra = map[string]string{}
	}

	body := ping{
		Metrics: map[string]map[string]any{},
		Events: []pingEvent{{
			Category:  ev.Category,
			Name:      ev.Name,
			Timestamp: ev.Timestamp,
			Extra:     extra,
		}},
		PingInfo: pingInfo{
			StartTime: e.start.Format(time.RFC3339),
			EndTime:   now.Format(time.RFC3339),
		},
		ClientInfo: clientInfo{
			TelemetrySDKBuild: "relay-glean-go",
			FirstRunDate:      "Unknown",
			OS:                "Unknown",
			OSVersion:         "Unknown",
			Architecture:      runtime.GOARCH,
			AppBuild:          e.appID,
			AppDisplayVersion: e.appDisplayVersion,
			AppChannel:        e.appChannel,
		},
	}

	payload, err := json.MarshalToString(body)
	if err != nil {
		return fmt.Errorf("glean: encode %s.%s payload: %w", ev.Category, ev.Name, err)
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, EventType,
		slog.Int64(AttrTimestamp, now.UnixNano()),
		slog.String(AttrType, EventType),
		slog.String(AttrDocumentNamespace, e.appID),
		slog.String(AttrDocumentType, DocumentType),
		slog.String(AttrDocumentVersion, DocumentVersion),
		slog.String(AttrDocumentID, e.newID()),
		slog.String(AttrUserAgent, req.UserAgent),
		slog.String(AttrIPAddress, req.IPAddress),
		slog.String(AttrPayload, payload),
	)
	return nil
}

// userEvent builds an event whose extras are the user's extras plus more.
func userEvent(category, name string, user UserInfo, more ...map[string]string) Event {
	extra := user.Extras()
	for _, m := range more {
		for k, v := range m {
			extra[k] = v
		}
	}
	return Event{Category: category, Name: name, Extra: extra}
}

// LogEmailMaskCreated records email_mask.created.
func (e *EventLogger) LogEmailMaskCreated(ctx context.Context, req RequestInfo, user UserInfo, mask MaskInfo, createdByAPI bool) error {
	return e.RecordEvent(ctx, req, userEvent("email_mask", "created", user, mask.extras(), map[string]string{
		ExtraCreatedByAPI: strconv.FormatBool(createdByAPI),
		ExtraHasWebsite:   strconv.FormatBool(mask.HasWebsite),
	}))
}

// LogEmailMaskLabelUpdated records email_mask.label_updated.
func (e *EventLogger) LogEmailMaskLabelUpdated(ctx context.Context, req RequestInfo, user UserInfo, mask MaskInfo) error {
	return e.RecordEvent(ctx, req, userEvent("email_mask", "label_updated", user, mask.extras()))
}

// LogEmailMaskDeleted records email_mask.deleted.
func (e *EventLogger) LogEmailMaskDeleted(ctx context.Context, req RequestInfo, user UserInfo, mask MaskInfo) error {
	return e.RecordEvent(ctx, req, userEvent("email_mask", "deleted", user, mask.extras()))
}

// LogEmailForwarded records email.forwarded.
func (e *EventLogger) LogEmailForwarded(ctx context.Context, user UserInfo, mask MaskInfo, isReply bool) error {
	return e.RecordEvent(ctx, RequestInfo{}, userEvent("email", "forwarded", user, mask.extras(), map[string]string{
		ExtraIsReply: strconv.FormatBool(isReply),
	}))
}

// LogEmailBlocked records email.blocked with the reason the message was
// not forwarded, e.g. "block_all" or "block_promotional".
func (e *EventLogger) LogEmailBlocked(ctx context.Context, user UserInfo, mask MaskInfo, isReply bool, reason string) error {
	return e.RecordEvent(ctx, RequestInfo{}, userEvent("email", "blocked", user, mask.extras(), map[string]string{
		ExtraIsReply: strconv.FormatBool(isReply),
		ExtraReason:  reason,
	}))
}

// LogAPIAccessed records api.accessed. Only the FxA id of the user is sent.
func (e *EventLogger) LogAPIAccessed(ctx context.Context, req RequestInfo, fxaID, endpoint, method string) error {
	return e.RecordEvent(ctx, req, Event{
		Category: "api",
		Name:     "accessed",
		Extra: map[string]string{
			ExtraFxAID:    fxaID,
			ExtraEndpoint: endpoint,
			ExtraMethod:   method,
		},
	})
}
