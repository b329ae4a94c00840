package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// RestorePayload is recorded by the VAULT_RESTORE event.
type RestorePayload struct {
	CreatedAt         time.Time `json:"createdAt"`
	RestoredUpdatedAt int64     `json:"restoredUpdatedAt"`
}

// syncCoordinator serializes sync attempts with mu. Local edits never take
// mu: they go through LocalStateService and only ask for a push.
type syncCoordinator struct {
	engine   ClientSyncService
	local    LocalStateService
	sess     *SyncSession
	recorder *audit.Recorder
	clock    utils.Clock

	mu sync.Mutex

	logger *logger.Logger
}

func NewSyncCoordinator(
	engine ClientSyncService,
	local LocalStateService,
	sess *SyncSession,
	recorder *audit.Recorder,
	clock utils.Clock,
	logger *logger.Logger,
) SyncCoordinator {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &syncCoordinator{
		engine:   engine,
		local:    local,
		sess:     sess,
		recorder: recorder,
		clock:    clock,
		logger:   logger,
	}
}

func (c *syncCoordinator) Status() models.SyncStatus {
	return c.sess.Status()
}

func (c *syncCoordinator) Conflict() *models.ConflictRecord {
	return c.sess.Conflict()
}

func (c *syncCoordinator) Synchronize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finish(c.synchronize(ctx, false))
}

func (c *syncCoordinator) AutoSync(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.ConflictPending() || c.sess.Locked() {
		return nil
	}
	return c.finish(c.synchronize(ctx, true))
}

func (c *syncCoordinator) AutoPush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess.ConflictPending() || c.sess.Locked() || c.sess.Restricted() {
		return nil
	}

	local := c.local.Current()
	if marker := c.sess.Marker(); marker != nil && local.UpdatedAt <= *marker {
		return nil
	}
	// a push without a compare could overwrite a remote change, so the
	// scheduled push goes through the full attempt
	return c.finish(c.synchronize(ctx, true))
}

// PushNow is the manual push. It still compares first, so a remote change
// the device has not seen is pulled or raised as a conflict, never
// overwritten.
func (c *syncCoordinator) PushNow(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finish(c.synchronize(ctx, false))
}

func (c *syncCoordinator) KeepLocal(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conflict := c.sess.Conflict()
	if conflict == nil {
		return ErrNoConflict
	}

	local := c.local.Current()
	if local.UpdatedAt <= conflict.RemoteUpdatedAt {
		// other devices only notice the overwrite if updatedAt moves past
		// the snapshot they already hold
		next, err := local.Clone()
		if err != nil {
			return c.finish(err)
		}
		next.UpdatedAt = nextUpdatedAt(conflict.RemoteUpdatedAt, c.clock.NowMillis())
		if local, err = c.local.Commit(ctx, local, next); err != nil {
			return c.finish(err)
		}
	}

	if err := c.engine.Push(ctx, c.sess, local); err != nil {
		return c.finish(err)
	}
	c.sess.ClearConflict()
	return c.finish(nil)
}

func (c *syncCoordinator) UseRemote(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.sess.ConflictPending() {
		return ErrNoConflict
	}
	if err := c.adoptRemote(ctx, false); err != nil {
		return c.finish(err)
	}
	c.sess.ClearConflict()
	return c.finish(nil)
}

func (c *syncCoordinator) RecoverFromRemote(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.adoptRemote(ctx, true); err != nil {
		return c.finish(err)
	}
	c.sess.ClearConflict()
	return c.finish(nil)
}

func (c *syncCoordinator) RestoreVersion(ctx context.Context, createdAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.sess.Restricted():
		return ErrRestricted
	case c.sess.ConflictPending():
		return ErrConflictPending
	}

	snapshot, err := c.engine.PullVersion(ctx, c.sess, createdAt)
	if err != nil {
		return c.finish(err)
	}
	if snapshot == nil {
		return ErrNotFound
	}
	if err = audit.Check(snapshot.Audit); err != nil {
		return c.finish(err)
	}

	local := c.local.Current()
	restoredAt := snapshot.UpdatedAt

	snapshot.Audit, _, err = c.recorder.Append(snapshot.Audit, audit.EventInput{
		Type:       models.EventVaultRestore,
		Entity:     "vault",
		Payload:    RestorePayload{CreatedAt: createdAt.UTC(), RestoredUpdatedAt: restoredAt},
		DeviceID:   c.sess.DeviceID(),
		AppVersion: c.sess.AppVersion(),
	})
	if err != nil {
		return c.finish(fmt.Errorf("record restore: %w", err))
	}
	snapshot.UpdatedAt = nextUpdatedAt(max(local.UpdatedAt, restoredAt), c.clock.NowMillis())

	committed, err := c.local.Commit(ctx, local, snapshot)
	if err != nil {
		return c.finish(err)
	}

	c.logger.Info().Time("created_at", createdAt).Msg("history snapshot restored")
	return c.finish(c.engine.Push(ctx, c.sess, committed))
}

// synchronize runs one attempt:
//
//	Comparing → no_remote  → push
//	          → use_remote → pull, replace local
//	          → use_local  → push if local is ahead of the marker
//	          → conflict   → pull once, keep a preview, await a decision
func (c *syncCoordinator) synchronize(ctx context.Context, auto bool) error {
	if c.sess.ConflictPending() {
		return ErrConflictPending
	}
	if c.sess.Locked() {
		return ErrVaultLocked
	}
	c.sess.SetStatus(models.StatusSyncing)

	local := c.local.Current()
	marker := c.sess.Marker()

	decision, err := c.engine.Compare(ctx, local, marker)
	if err != nil {
		return err
	}

	switch decision.Action {
	case models.ActionNoRemote:
		return c.push(ctx, local, auto)

	case models.ActionUseRemote:
		remote, err := c.engine.Pull(ctx, c.sess)
		if err != nil {
			return err
		}
		if remote == nil {
			return c.push(ctx, local, auto)
		}
		if _, err = c.local.Commit(ctx, local, remote); err != nil {
			if errors.Is(err, ErrStaleSnapshot) {
				// edited while pulling; the next attempt sees a conflict
				return nil
			}
			return err
		}
		return c.engine.MarkSynced(ctx, c.sess, remote.UpdatedAt)

	case models.ActionUseLocal:
		remoteMeta := decision.RemoteMeta
		if remoteMeta.UpdatedAt == local.UpdatedAt && sameHash(remoteMeta.LastEventHash, audit.LastEventHash(local.Audit)) {
			if marker == nil || *marker != local.UpdatedAt {
				return c.engine.MarkSynced(ctx, c.sess, local.UpdatedAt)
			}
			return nil
		}
		if marker != nil && local.UpdatedAt <= *marker {
			return nil
		}
		return c.push(ctx, local, auto)

	case models.ActionConflict:
		remote, err := c.engine.Pull(ctx, c.sess)
		if err != nil {
			return err
		}
		c.sess.SetConflict(models.ConflictRecord{
			Newest:          decision.Newest,
			RemoteUpdatedAt: decision.RemoteMeta.UpdatedAt,
			Preview:         BuildConflictPreview(local, remote),
		})
		c.logger.Info().
			Int64("local_updated_at", local.UpdatedAt).
			Int64("remote_updated_at", decision.RemoteMeta.UpdatedAt).
			Str("newest", string(decision.Newest)).
			Msg("sync conflict, waiting for a decision")
		return nil
	}

	return fmt.Errorf("unknown sync action %q", decision.Action)
}

func (c *syncCoordinator) push(ctx context.Context, local *models.State, auto bool) error {
	if auto && c.sess.Restricted() {
		return ErrRestricted
	}
	return c.engine.Push(ctx, c.sess, local)
}

// adoptRemote replaces local with the remote snapshot. With verify set the
// remote chain must be healthy.
func (c *syncCoordinator) adoptRemote(ctx context.Context, verify bool) error {
	if c.sess.Locked() {
		return ErrVaultLocked
	}
	c.sess.SetStatus(models.StatusSyncing)

	base := c.local.Current()
	remote, err := c.engine.Pull(ctx, c.sess)
	if err != nil {
		return err
	}
	if remote == nil {
		return ErrNoRemoteVault
	}
	if verify {
		if err = audit.Check(remote.Audit); err != nil {
			return err
		}
	}

	if _, err = c.local.Commit(ctx, base, remote); err != nil {
		return err
	}
	return c.engine.MarkSynced(ctx, c.sess, remote.UpdatedAt)
}

// finish maps the outcome of an attempt onto the session status.
func (c *syncCoordinator) finish(err error) error {
	switch {
	case err == nil:
		if c.sess.ConflictPending() {
			c.sess.SetStatus(models.StatusConflict)
		} else {
			c.sess.SetStatus(models.StatusSynced)
		}
	case errors.Is(err, ErrNetwork):
		c.sess.SetStatus(models.StatusOffline)
	case errors.Is(err, ErrVaultLocked):
		c.sess.SetStatus(models.StatusLocked)
	case errors.Is(err, ErrConflictPending):
		c.sess.SetStatus(models.StatusConflict)
	case errors.Is(err, ErrRestricted):
		c.sess.SetStatus(models.StatusReady)
	default:
		c.sess.SetStatus(models.StatusError)
	}

	if err != nil && !errors.Is(err, ErrConflictPending) {
		c.logger.Warn().Err(err).Str("status", string(c.sess.Status())).Msg("sync attempt failed")
	}
	return err
}

func sameHash(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
