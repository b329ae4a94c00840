package models

import "encoding/json"

// EventType names the kind of mutation an [AuditEvent] records.
type EventType string

const (
	EventTaskCreate     EventType = "TASK_CREATE"
	EventTaskEdit       EventType = "TASK_EDIT"
	EventTaskDelete     EventType = "TASK_DELETE"
	EventTaskDone       EventType = "TASK_DONE"
	EventTemplateCreate EventType = "TEMPLATE_CREATE"
	EventSettingsChange EventType = "SETTINGS_CHANGE"
	EventVaultImport    EventType = "VAULT_IMPORT"
	EventVaultRestore   EventType = "VAULT_RESTORE"

	// EventCheckpoint is appended by compaction. Its payload records the
	// anchor hash and how many events were dropped before it.
	EventCheckpoint EventType = "CHECKPOINT"
)

// AuditEvent is one immutable link of the audit chain.
//
// Hash commits to PrevHash, Timestamp, Type, EntityID, DeviceID, AppVersion
// and the canonical form of Payload. Any edit of those fields, reordering,
// insertion or deletion of events breaks verification at or after the
// edited position.
type AuditEvent struct {
	// ID is a UUIDv7. It is not covered by the hash.
	ID string `json:"id"`

	Type   EventType `json:"type"`
	Entity string    `json:"entity"`

	EntityID   *string `json:"entityId"`
	DeviceID   *string `json:"deviceId"`
	AppVersion *string `json:"appVersion"`

	// Payload is arbitrary JSON (typically before/after snapshots of the
	// touched entity). It is canonicalized before hashing.
	Payload json.RawMessage `json:"payload"`

	// Timestamp is Unix milliseconds taken from the recorder clock.
	Timestamp int64 `json:"timestamp"`

	// PrevHash is the Hash of the preceding event, nil for the first event
	// of a never-compacted log.
	PrevHash *string `json:"prevHash"`

	// Hash is lowercase hex SHA-256, 64 characters.
	Hash string `json:"hash"`
}

// AuditAnchor marks where a compacted log starts. Hash is the hash of the
// last dropped event and becomes the expected PrevHash of the first
// retained one.
type AuditAnchor struct {
	Hash    string `json:"hash"`
	Trimmed int    `json:"trimmed"`
}

// AuditLog is the ordered chain plus its cached verification result.
// OK, BadIndex and LastCheckedAt are a cache of the last verification and
// must only be written by the recheck routine.
type AuditLog struct {
	Events        []AuditEvent `json:"events"`
	OK            *bool        `json:"ok"`
	BadIndex      *int         `json:"badIndex"`
	LastCheckedAt *int64       `json:"lastCheckedAt"`
	Anchor        *AuditAnchor `json:"anchor,omitempty"`
}

// NewAuditLog returns an empty, healthy log.
func NewAuditLog() AuditLog {
	ok := true
	return AuditLog{Events: []AuditEvent{}, OK: &ok}
}

// Healthy reports the cached verification result. An unknown result is
// treated as healthy, matching a log that was never checked.
func (l AuditLog) Healthy() bool {
	return l.OK == nil || *l.OK
}

// LastHash returns the hash of the newest event, falling back to the
// anchor of a compacted log, or nil for an empty log.
func (l AuditLog) LastHash() *string {
	if n := len(l.Events); n > 0 {
		h := l.Events[n-1].Hash
		return &h
	}
	if l.Anchor != nil {
		h := l.Anchor.Hash
		return &h
	}
	return nil
}

// VerifyResult is the outcome of walking an audit chain. BadIndex is set
// only when OK is false and points at the first event that failed.
type VerifyResult struct {
	OK       bool `json:"ok"`
	BadIndex *int `json:"badIndex"`
}
