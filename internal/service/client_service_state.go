package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type integrityService struct {
	clock utils.Clock
}

func NewIntegrityService(clock utils.Clock) IntegrityService {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &integrityService{clock: clock}
}

// Evaluate implements [IntegrityService]. Appending to a broken chain never
// repairs it, so restricted mode lasts until the snapshot is replaced by a
// verified one.
func (i *integrityService) Evaluate(sess *SyncSession, state *models.State) *models.State {
	state.Audit = audit.Recheck(state.Audit, i.clock.NowMillis())
	sess.SetRestricted(state.Settings.IntegrityEnabled && !state.Audit.Healthy())
	return state
}

type localStateService struct {
	repo      store.LocalStateRepository
	integrity IntegrityService
	recorder  *audit.Recorder
	sess      *SyncSession
	clock     utils.Clock

	auditKeep int

	// writeMu serializes Load, Commit and Clear so the base check in
	// Commit and the write that follows it are one step.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current *models.State

	logger *logger.Logger
}

// NewLocalStateService builds the owner of the current snapshot. A positive
// auditKeep compacts the audit log to that many events when the mirror is
// loaded.
func NewLocalStateService(
	repo store.LocalStateRepository,
	integrity IntegrityService,
	recorder *audit.Recorder,
	sess *SyncSession,
	clock utils.Clock,
	auditKeep int,
	logger *logger.Logger,
) LocalStateService {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &localStateService{
		repo:      repo,
		integrity: integrity,
		recorder:  recorder,
		sess:      sess,
		clock:     clock,
		auditKeep: auditKeep,
		current:   models.NewState(clock.NowMillis()),
		logger:    logger,
	}
}

func (l *localStateService) Load(ctx context.Context) (*models.State, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	now := l.clock.NowMillis()

	state, err := l.repo.LoadState(ctx)
	if errors.Is(err, store.ErrLocalStateNotFound) {
		state = nil
	} else if err != nil {
		return nil, fmt.Errorf("load local state: %w", err)
	}

	state = models.EnsureState(state, now)
	state = l.integrity.Evaluate(l.sess, state)

	if l.auditKeep > 0 && len(state.Audit.Events) > l.auditKeep && state.Audit.Healthy() {
		if state, err = l.compact(state); err != nil {
			l.logger.Warn().Err(err).Msg("audit compaction skipped")
		} else if err = l.repo.SaveState(ctx, state); err != nil {
			return nil, fmt.Errorf("save compacted state: %w", err)
		}
	}

	l.mu.Lock()
	l.current = state
	l.mu.Unlock()

	return state, nil
}

func (l *localStateService) compact(state *models.State) (*models.State, error) {
	next, err := state.Clone()
	if err != nil {
		return state, err
	}

	log, err := l.recorder.Compact(next.Audit, l.auditKeep, l.sess.DeviceID(), l.sess.AppVersion())
	if err != nil {
		return state, err
	}
	next.Audit = audit.Recheck(log, l.clock.NowMillis())

	if over := len(next.History) - l.auditKeep; over > 0 {
		next.History = next.History[over:]
	}
	next.UpdatedAt = nextUpdatedAt(state.UpdatedAt, l.clock.NowMillis())

	return next, nil
}

func (l *localStateService) Current() *models.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Commit implements [LocalStateService]. base is compared by identity with
// the published snapshot.
func (l *localStateService) Commit(ctx context.Context, base, state *models.State) (*models.State, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if l.Current() != base {
		return nil, ErrStaleSnapshot
	}

	state = models.EnsureState(state, l.clock.NowMillis())
	state = l.integrity.Evaluate(l.sess, state)

	if err := l.repo.SaveState(ctx, state); err != nil {
		return nil, fmt.Errorf("save local state: %w", err)
	}

	l.mu.Lock()
	l.current = state
	l.mu.Unlock()

	return state, nil
}

func (l *localStateService) Clear(ctx context.Context) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if err := l.repo.ClearState(ctx); err != nil {
		return fmt.Errorf("clear local state: %w", err)
	}

	l.mu.Lock()
	l.current = models.NewState(l.clock.NowMillis())
	l.mu.Unlock()

	l.sess.SetRestricted(false)
	return nil
}

// nextUpdatedAt returns a timestamp strictly greater than prev.
func nextUpdatedAt(prev, now int64) int64 {
	if now <= prev {
		return prev + 1
	}
	return now
}
