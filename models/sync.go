// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncAction is the outcome of comparing the local snapshot with the
// remote one.
type SyncAction string

const (
	// ActionNoRemote means the remote store holds nothing for this account.
	ActionNoRemote SyncAction = "no_remote"

	// ActionUseLocal means local is authoritative; push if it is newer than
	// the marker.
	ActionUseLocal SyncAction = "use_local"

	// ActionUseRemote means remote is authoritative and should replace local.
	ActionUseRemote SyncAction = "use_remote"

	// ActionConflict means both sides changed since the last agreed point.
	// Nothing is replaced until the user picks a side.
	ActionConflict SyncAction = "conflict"
)

// SyncDecision is returned by the comparison step. RemoteMeta is set
// whenever a remote record exists. Newest is only meaningful for
// conflicts and is a hint, never applied automatically.
type SyncDecision struct {
	Action     SyncAction `json:"action"`
	Newest     SyncAction `json:"newest,omitempty"`
	RemoteMeta *VaultMeta `json:"remoteMeta,omitempty"`
}

// ConflictPreview summarizes two divergent snapshots for the user.
type ConflictPreview struct {
	LocalUpdatedAt  int64    `json:"localUpdatedAt"`
	RemoteUpdatedAt int64    `json:"remoteUpdatedAt"`
	LocalTasks      int      `json:"localTasks"`
	RemoteTasks     int      `json:"remoteTasks"`
	LocalEvents     int      `json:"localEvents"`
	RemoteEvents    int      `json:"remoteEvents"`
	TaskTitleDiff   []string `json:"taskTitleDiff"`
	DoneCountDiff   int      `json:"doneCountDiff"`
}

// ConflictRecord is held in memory while a conflict awaits resolution.
// It is never persisted.
type ConflictRecord struct {
	Newest          SyncAction      `json:"newest"`
	RemoteUpdatedAt int64           `json:"remoteUpdatedAt"`
	Preview         ConflictPreview `json:"preview"`
}

// SyncStatus is the user-visible state of the sync subsystem.
type SyncStatus string

const (
	StatusReady    SyncStatus = "Ready"
	StatusSyncing  SyncStatus = "Syncing"
	StatusSynced   SyncStatus = "Synced"
	StatusOffline  SyncStatus = "Offline"
	StatusError    SyncStatus = "Error"
	StatusConflict SyncStatus = "Conflict"
	StatusLocked   SyncStatus = "Locked"
)
