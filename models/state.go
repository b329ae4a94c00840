// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// CurrentSchema is the schema number written into every freshly created
// [State]. Older snapshots without a schema are migrated to it by [EnsureState].
const CurrentSchema = 2

// TaskStatus is the lifecycle state of a [Task].
type TaskStatus string

const (
	TaskOpen   TaskStatus = "Open"
	TaskDone   TaskStatus = "Done"
	TaskMissed TaskStatus = "Missed"
)

// DefaultSection is the list every task belongs to unless sections are enabled.
const DefaultSection = "General"

// State is the user's whole application snapshot. It is the unit of sync:
// the remote store holds exactly one encrypted State per account and
// conflicts are resolved by choosing one snapshot over the other.
//
// UpdatedAt is Unix milliseconds and strictly increases on every local
// mutation. It is the only clock the sync engine compares.
type State struct {
	Schema    int   `json:"schema"`
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	User          UserRef        `json:"user"`
	Settings      Settings       `json:"settings"`
	Stats         Stats          `json:"stats"`
	Tasks         []Task         `json:"tasks"`
	Templates     []Template     `json:"templates"`
	Notifications []Notification `json:"notifications"`

	// Audit is the hash-chained record of every mutation that produced
	// this snapshot. It travels inside the encrypted vault.
	Audit AuditLog `json:"audit"`

	// History is the legacy, unchained activity list. It carries no
	// integrity guarantees and is capped together with audit compaction.
	History []HistoryEntry `json:"history"`

	Undo UndoState `json:"undo"`
}

// UserRef identifies the account a snapshot belongs to.
type UserRef struct {
	Login  *string `json:"login"`
	UserID *int64  `json:"userId"`
}

// Settings holds user preferences stored inside the snapshot.
type Settings struct {
	HardMode             string  `json:"hardMode"`
	AutoFailMin          int     `json:"autoFailMin"`
	IdleLockMin          int     `json:"idleLockMin"`
	UpdateChannel        string  `json:"updateChannel"`
	AnalyticsEnabled     bool    `json:"analyticsEnabled"`
	IntegrityEnabled     bool    `json:"integrityEnabled"`
	PerformanceMode      bool    `json:"performanceMode"`
	NotificationsEnabled bool    `json:"notificationsEnabled"`
	Wallpaper            *string `json:"wallpaper"`
}

// Stats is the gamification counter block.
type Stats struct {
	XP           int     `json:"xp"`
	Level        int     `json:"level"`
	Rank         string  `json:"rank"`
	Streak       int     `json:"streak"`
	LastDoneDate *string `json:"lastDoneDate"`
}

// Task is a single to-do item.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Section   string     `json:"section"`
	Notes     string     `json:"notes"`
	Status    TaskStatus `json:"status"`
	Priority  int        `json:"priority"`
	Tags      []string   `json:"tags"`
	Subtasks  []Subtask  `json:"subtasks"`
	CreatedAt int64      `json:"createdAt"`
	UpdatedAt int64      `json:"updatedAt"`
	DueAt     *int64     `json:"dueAt"`
	XP        int        `json:"xp"`
	Recurring *Recurring `json:"recurring"`
}

// Subtask is a checklist line inside a [Task].
type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Recurring describes how a task repeats after it is done.
type Recurring struct {
	Freq     string `json:"freq"`
	Interval int    `json:"interval"`
	Unit     string `json:"unit,omitempty"`
}

// Template is a reusable task blueprint.
type Template struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Task TemplateTask `json:"task"`
}

// TemplateTask is the task part of a [Template]. DueOffsetMin, when set,
// is added to the creation time to produce the new task's due date.
type TemplateTask struct {
	Title        string     `json:"title"`
	Notes        string     `json:"notes"`
	DueOffsetMin *int       `json:"dueOffsetMin"`
	Priority     int        `json:"priority"`
	Tags         []string   `json:"tags"`
	Subtasks     []Subtask  `json:"subtasks"`
	Recurring    *Recurring `json:"recurring"`
}

// Notification is an in-app message.
type Notification struct {
	ID    string `json:"id"`
	T     int64  `json:"t"`
	Level string `json:"level"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// HistoryEntry is one line of the legacy activity list.
type HistoryEntry struct {
	T    int64           `json:"t"`
	Type string          `json:"type"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// UndoState keeps the edit undo/redo stacks.
type UndoState struct {
	Stack []UndoEntry `json:"stack"`
	Redo  []UndoEntry `json:"redo"`
}

// UndoEntry stores the editable fields of a task before and after an edit.
type UndoEntry struct {
	ID   string          `json:"id"`
	Prev json.RawMessage `json:"prev"`
	Next json.RawMessage `json:"next"`
	At   int64           `json:"at"`
}

// DefaultSettings returns the settings a brand new snapshot starts with.
func DefaultSettings() Settings {
	return Settings{
		HardMode:             "Medium",
		AutoFailMin:          60,
		IdleLockMin:          10,
		UpdateChannel:        "stable",
		AnalyticsEnabled:     true,
		IntegrityEnabled:     true,
		NotificationsEnabled: true,
	}
}

// DefaultStats returns zeroed stats with the starting rank.
func DefaultStats() Stats {
	return Stats{Rank: "Beginner"}
}

// NewState creates an empty snapshot stamped with nowMs.
func NewState(nowMs int64) *State {
	return &State{
		Schema:        CurrentSchema,
		CreatedAt:     nowMs,
		UpdatedAt:     nowMs,
		Settings:      DefaultSettings(),
		Stats:         DefaultStats(),
		Tasks:         []Task{},
		Templates:     []Template{},
		Notifications: []Notification{},
		Audit:         NewAuditLog(),
		History:       []HistoryEntry{},
		Undo:          UndoState{Stack: []UndoEntry{}, Redo: []UndoEntry{}},
	}
}

// EnsureState normalizes a decoded snapshot: every collection is non-nil,
// a missing schema is set to [CurrentSchema] and the audit cache has a
// defined ok flag. It is applied to everything that comes from outside
// (pull, import, local cache load). A nil input yields a fresh snapshot.
func EnsureState(s *State, nowMs int64) *State {
	if s == nil {
		return NewState(nowMs)
	}
	if s.Schema == 0 {
		s.Schema = CurrentSchema
	}
	if s.Settings == (Settings{}) {
		s.Settings = DefaultSettings()
	}
	if s.Stats.Rank == "" {
		s.Stats.Rank = DefaultStats().Rank
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Templates == nil {
		s.Templates = []Template{}
	}
	if s.Notifications == nil {
		s.Notifications = []Notification{}
	}
	if s.History == nil {
		s.History = []HistoryEntry{}
	}
	if s.Audit.Events == nil {
		s.Audit.Events = []AuditEvent{}
	}
	if s.Audit.OK == nil {
		ok := true
		s.Audit.OK = &ok
	}
	if s.Undo.Stack == nil {
		s.Undo.Stack = []UndoEntry{}
	}
	if s.Undo.Redo == nil {
		s.Undo.Redo = []UndoEntry{}
	}
	return s
}

// Clone returns a deep copy of the snapshot. Mutations always operate on
// a clone so that previously published snapshots stay untouched.
func (s *State) Clone() (*State, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("clone state: %w", err)
	}
	var out State
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("clone state: %w", err)
	}
	return &out, nil
}

// FindTask returns the index of the task with the given id or -1.
func (s *State) FindTask(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// DoneCount counts tasks whose status is [TaskDone].
func (s *State) DoneCount() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Status == TaskDone {
			n++
		}
	}
	return n
}
