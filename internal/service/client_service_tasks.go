package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// maxMutationAttempts bounds how often a mutation is replayed after a sync
// replaced the snapshot it started from.
const maxMutationAttempts = 3

// TaskEditPayload is recorded by TASK_EDIT.
type TaskEditPayload struct {
	Before models.Task `json:"before"`
	After  models.Task `json:"after"`
}

// TaskDonePayload is recorded by TASK_DONE.
type TaskDonePayload struct {
	ID string `json:"id"`
	XP int    `json:"xp"`
}

type taskService struct {
	local    LocalStateService
	sess     *SyncSession
	recorder *audit.Recorder
	ids      audit.IDGenerator
	notifier MutationNotifier
	clock    utils.Clock

	// mu orders mutations so that each one starts from the previous result.
	mu sync.Mutex

	logger *logger.Logger
}

func NewTaskService(
	local LocalStateService,
	sess *SyncSession,
	recorder *audit.Recorder,
	ids audit.IDGenerator,
	notifier MutationNotifier,
	clock utils.Clock,
	logger *logger.Logger,
) TaskService {
	if clock == nil {
		clock = utils.SystemClock
	}
	if ids == nil {
		ids = utils.NewUUIDGenerator()
	}
	return &taskService{
		local:    local,
		sess:     sess,
		recorder: recorder,
		ids:      ids,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

func (s *taskService) AddTask(ctx context.Context, in TaskInput) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}

	var created models.Task
	err := s.mutate(ctx, func(st *models.State, now int64) (audit.EventInput, error) {
		created = newTask(s.ids.Generate(), in, now)
		st.Tasks = append(st.Tasks, created)
		return audit.EventInput{
			Type:     models.EventTaskCreate,
			EntityID: created.ID,
			Payload:  created,
		}, nil
	})
	return created, err
}

func (s *taskService) EditTask(ctx context.Context, id string, in TaskInput) (models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Task{}, ErrEmptyTitle
	}

	var edited models.Task
	err := s.mutate(ctx, func(st *models.State, now int64) (audit.EventInput, error) {
		i := st.FindTask(id)
		if i < 0 {
			return audit.EventInput{}, ErrTaskNotFound
		}

		before := st.Tasks[i]
		edited = applyInput(before, in, now)
		st.Tasks[i] = edited

		prev, err := json.Marshal(before)
		if err != nil {
			return audit.EventInput{}, fmt.Errorf("marshal undo entry: %w", err)
		}
		next, err := json.Marshal(edited)
		if err != nil {
			return audit.EventInput{}, fmt.Errorf("marshal undo entry: %w", err)
		}
		st.Undo.Stack = append(st.Undo.Stack, models.UndoEntry{ID: id, Prev: prev, Next: next, At: now})
		st.Undo.Redo = []models.UndoEntry{}

		return audit.EventInput{
			Type:     models.EventTaskEdit,
			EntityID: id,
			Payload:  TaskEditPayload{Before: before, After: edited},
		}, nil
	})
	return edited, err
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, _ int64) (audit.EventInput, error) {
		i := st.FindTask(id)
		if i < 0 {
			return audit.EventInput{}, ErrTaskNotFound
		}

		removed := st.Tasks[i]
		st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)

		return audit.EventInput{
			Type:     models.EventTaskDelete,
			EntityID: id,
			Payload:  removed,
		}, nil
	})
}

// MarkDone completes a task and adds its XP to the stats.
func (s *taskService) MarkDone(ctx context.Context, id string) (models.Task, error) {
	var done models.Task
	err := s.mutate(ctx, func(st *models.State, now int64) (audit.EventInput, error) {
		i := st.FindTask(id)
		if i < 0 {
			return audit.EventInput{}, ErrTaskNotFound
		}
		if st.Tasks[i].Status == models.TaskDone {
			return audit.EventInput{}, fmt.Errorf("%w: task already done", ErrInvalidDataProvided)
		}

		st.Tasks[i].Status = models.TaskDone
		st.Tasks[i].UpdatedAt = now
		st.Stats.XP += st.Tasks[i].XP
		done = st.Tasks[i]

		return audit.EventInput{
			Type:     models.EventTaskDone,
			EntityID: id,
			Payload:  TaskDonePayload{ID: id, XP: done.XP},
		}, nil
	})
	return done, err
}

func (s *taskService) AddTemplate(ctx context.Context, name string, task models.TemplateTask) (models.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(task.Title) == "" {
		return models.Template{}, ErrEmptyTitle
	}

	var tpl models.Template
	err := s.mutate(ctx, func(st *models.State, _ int64) (audit.EventInput, error) {
		tpl = models.Template{ID: s.ids.Generate(), Name: name, Task: task}
		st.Templates = append(st.Templates, tpl)
		return audit.EventInput{
			Type:     models.EventTemplateCreate,
			Entity:   "template",
			EntityID: tpl.ID,
			Payload:  tpl,
		}, nil
	})
	return tpl, err
}

func (s *taskService) CreateTaskFromTemplate(ctx context.Context, templateID string) (models.Task, error) {
	var created models.Task
	err := s.mutate(ctx, func(st *models.State, now int64) (audit.EventInput, error) {
		var tpl *models.Template
		for i := range st.Templates {
			if st.Templates[i].ID == templateID {
				tpl = &st.Templates[i]
				break
			}
		}
		if tpl == nil {
			return audit.EventInput{}, ErrTemplateNotFound
		}

		in := TaskInput{
			Title:     tpl.Task.Title,
			Notes:     tpl.Task.Notes,
			Priority:  tpl.Task.Priority,
			Tags:      tpl.Task.Tags,
			Subtasks:  tpl.Task.Subtasks,
			Recurring: tpl.Task.Recurring,
		}
		if tpl.Task.DueOffsetMin != nil {
			due := now + int64(*tpl.Task.DueOffsetMin)*60_000
			in.DueAt = &due
		}

		created = newTask(s.ids.Generate(), in, now)
		st.Tasks = append(st.Tasks, created)
		return audit.EventInput{
			Type:     models.EventTaskCreate,
			EntityID: created.ID,
			Payload:  map[string]any{"task": created, "templateId": templateID},
		}, nil
	})
	return created, err
}

// mutate applies fn to a copy of the current snapshot, records the event
// fn describes and commits the result. The published snapshot is never
// touched, so a push in flight keeps encrypting a consistent value. When a
// sync replaced the snapshot in between, fn is replayed on the new one.
func (s *taskService) mutate(ctx context.Context, fn func(st *models.State, now int64) (audit.EventInput, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		event models.AuditEvent
		err   error
	)
	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		event, err = s.apply(ctx, fn)
		if !errors.Is(err, ErrStaleSnapshot) {
			break
		}
	}
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().
		Str("event", string(event.Type)).
		Str("event_id", event.ID).
		Msg("local mutation committed")

	if s.notifier != nil {
		s.notifier.NotifyMutation()
	}
	return nil
}

func (s *taskService) apply(ctx context.Context, fn func(st *models.State, now int64) (audit.EventInput, error)) (models.AuditEvent, error) {
	current := s.local.Current()
	next, err := current.Clone()
	if err != nil {
		return models.AuditEvent{}, err
	}

	now := s.clock.NowMillis()
	in, err := fn(next, now)
	if err != nil {
		return models.AuditEvent{}, err
	}

	in.DeviceID = s.sess.DeviceID()
	in.AppVersion = s.sess.AppVersion()

	log, event, err := s.recorder.Append(next.Audit, in)
	if err != nil {
		return models.AuditEvent{}, fmt.Errorf("record %s: %w", in.Type, err)
	}
	next.Audit = log
	next.History = append(next.History, models.HistoryEntry{T: event.Timestamp, Type: string(event.Type)})
	next.UpdatedAt = nextUpdatedAt(current.UpdatedAt, now)

	if _, err = s.local.Commit(ctx, current, next); err != nil {
		return models.AuditEvent{}, err
	}
	return event, nil
}

func newTask(id string, in TaskInput, now int64) models.Task {
	t := models.Task{
		ID:        id,
		Status:    models.TaskOpen,
		CreatedAt: now,
	}
	return applyInput(t, in, now)
}

func applyInput(t models.Task, in TaskInput, now int64) models.Task {
	t.Title = strings.TrimSpace(in.Title)
	t.Section = strings.TrimSpace(in.Section)
	if t.Section == "" {
		t.Section = models.DefaultSection
	}
	t.Notes = in.Notes
	t.Priority = in.Priority
	t.DueAt = in.DueAt
	t.XP = in.XP
	t.Recurring = in.Recurring

	t.Tags = append([]string{}, in.Tags...)
	t.Subtasks = append([]models.Subtask{}, in.Subtasks...)
	t.UpdatedAt = now
	return t
}
