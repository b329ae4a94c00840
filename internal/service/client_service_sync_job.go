package service

import (
	"context"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/workers"
)

type syncScheduler struct {
	coordinator SyncCoordinator
	devices     ClientDeviceService
	sess        *SyncSession

	push *workers.Debouncer
	idle *workers.IdleTimer
	all  *workers.Workers

	onLock func()

	logger *logger.Logger
}

// NewSyncScheduler wires the background loops of the client:
//
//   - push debounce: NotifyMutation re-arms it, expiry calls AutoPush;
//   - remote poll: calls AutoSync every PollInterval;
//   - heartbeat: touches last_seen every HeartbeatInterval;
//   - idle lock: expiry locks the session, Touch re-arms it.
//
// Errors are logged and never stop a loop: the next cycle is the retry.
// onLock may be nil.
func NewSyncScheduler(
	coordinator SyncCoordinator,
	devices ClientDeviceService,
	sess *SyncSession,
	cfg config.ClientWorkers,
	onLock func(),
	logger *logger.Logger,
) SyncScheduler {
	s := &syncScheduler{
		coordinator: coordinator,
		devices:     devices,
		sess:        sess,
		onLock:      onLock,
		logger:      logger,
	}

	s.push = workers.NewDebouncer(cfg.PushDebounce, s.autoPush)
	s.idle = workers.NewIdleTimer(cfg.IdleLock, s.lock)
	s.all = workers.New(
		s.push,
		s.idle,
		workers.NewPeriodic(cfg.PollInterval, s.autoSync),
		workers.NewPeriodic(cfg.HeartbeatInterval, s.heartbeat),
	)

	return s
}

// Start implements [SyncScheduler]. A running scheduler is stopped first.
func (s *syncScheduler) Start(ctx context.Context) {
	s.all.Start(ctx)
}

// Stop implements [SyncScheduler]. It blocks until every loop has exited.
func (s *syncScheduler) Stop() {
	s.all.Stop()
}

func (s *syncScheduler) NotifyMutation() {
	s.push.Trigger()
	s.idle.Touch()
}

func (s *syncScheduler) Touch() {
	s.idle.Touch()
}

func (s *syncScheduler) autoPush(ctx context.Context) {
	if err := s.coordinator.AutoPush(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("scheduled push failed")
	}
}

func (s *syncScheduler) autoSync(ctx context.Context) {
	if err := s.coordinator.AutoSync(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("scheduled sync failed")
	}
}

func (s *syncScheduler) heartbeat(ctx context.Context) {
	if s.sess.Locked() {
		return
	}
	if err := s.devices.Heartbeat(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("device heartbeat failed")
	}
}

func (s *syncScheduler) lock(context.Context) {
	if s.sess.Locked() {
		return
	}
	s.sess.Lock()
	s.logger.Info().Msg("vault locked after inactivity")
	if s.onLock != nil {
		s.onLock()
	}
}
