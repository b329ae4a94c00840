// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

import (
	"encoding/json"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// DefaultEntity is used when an event does not name the entity kind.
const DefaultEntity = "task"

// IDGenerator yields unique event identifiers.
type IDGenerator interface {
	Generate() string
}

// EventInput describes a mutation to be recorded. Payload may be any value
// that marshals to JSON, including a json.RawMessage.
type EventInput struct {
	Type       models.EventType
	Entity     string
	EntityID   string
	Payload    any
	DeviceID   string
	AppVersion string
}

// Recorder is the only constructor of audit events.
type Recorder struct {
	clock utils.Clock
	ids   IDGenerator
}

// NewRecorder returns a recorder stamping events with clock and ids.
// A nil clock means the system clock.
func NewRecorder(clock utils.Clock, ids IDGenerator) *Recorder {
	if clock == nil {
		clock = utils.SystemClock
	}
	if ids == nil {
		ids = utils.NewUUIDGenerator()
	}
	return &Recorder{clock: clock, ids: ids}
}

// Append records in as the newest event of log. It returns a new log value
// whose Events slice is a fresh copy; the input log is never modified, so
// snapshots that still reference it keep their history intact.
//
// The verification cache fields are carried over unchanged. Callers that
// need an up-to-date verdict call [Recheck].
func (r *Recorder) Append(log models.AuditLog, in EventInput) (models.AuditLog, models.AuditEvent, error) {
	if in.Type == "" {
		return log, models.AuditEvent{}, ErrEmptyEventType
	}

	payload, err := marshalPayload(in.Payload)
	if err != nil {
		return log, models.AuditEvent{}, err
	}
	canonical, err := Canonicalize(payload)
	if err != nil {
		return log, models.AuditEvent{}, err
	}

	entity := in.Entity
	if entity == "" {
		entity = DefaultEntity
	}

	event := models.AuditEvent{
		ID:         r.ids.Generate(),
		Type:       in.Type,
		Entity:     entity,
		EntityID:   optional(in.EntityID),
		DeviceID:   optional(in.DeviceID),
		AppVersion: optional(in.AppVersion),
		Payload:    json.RawMessage(canonical),
		Timestamp:  r.clock.NowMillis(),
		PrevHash:   log.LastHash(),
	}
	event.Hash = utils.DigestHex([]byte(hashInput(event.PrevHash, event, canonical)))

	next := copyLog(log, 1)
	next.Events = append(next.Events, event)

	return next, event, nil
}

func marshalPayload(v any) (json.RawMessage, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return p, nil
	case []byte:
		return json.RawMessage(p), nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return raw, nil
}

// copyLog clones log with spare capacity for extra events.
func copyLog(log models.AuditLog, extra int) models.AuditLog {
	events := make([]models.AuditEvent, len(log.Events), len(log.Events)+extra)
	copy(events, log.Events)

	next := models.AuditLog{Events: events}
	if log.OK != nil {
		ok := *log.OK
		next.OK = &ok
	}
	if log.BadIndex != nil {
		bad := *log.BadIndex
		next.BadIndex = &bad
	}
	if log.LastCheckedAt != nil {
		at := *log.LastCheckedAt
		next.LastCheckedAt = &at
	}
	if log.Anchor != nil {
		anchor := *log.Anchor
		next.Anchor = &anchor
	}
	return next
}
