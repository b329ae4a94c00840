package service

import (
	"context"
	"time"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientCryptoService seals and opens whole snapshots with the passphrase
// held by the session.
type ClientCryptoService interface {
	// Seal encrypts state and returns the blob in its transport encoding.
	// Returns ErrVaultLocked when the session has no passphrase.
	Seal(sess *SyncSession, state *models.State) (models.EncryptedBlob, string, error)

	// Open decodes and decrypts a transport-encoded blob into a normalized
	// state. A wrong passphrase or a modified blob yields ErrAuthentication.
	Open(sess *SyncSession, blob string) (*models.State, error)

	// OpenBlob is Open for an already decoded blob.
	OpenBlob(sess *SyncSession, blob models.EncryptedBlob) (*models.State, error)

	// Fingerprint is the SHA-256 hex of data.
	Fingerprint(data []byte) string
}

// ClientAuthService registers and signs in the account. The account
// password only authenticates against the server; it never unlocks the
// vault.
type ClientAuthService interface {
	// Register derives the account credentials from user.Password and
	// creates the account. The session token is stored locally.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login derives the auth hash from the stored salt and signs in.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// RestoreSession loads a previously stored, unexpired token.
	// ok is false when the user has to sign in again.
	RestoreSession(ctx context.Context) (session models.Session, ok bool)

	// Logout forgets the stored token.
	Logout(ctx context.Context) error
}

// ClientDeviceService manages the identity of this installation.
type ClientDeviceService interface {
	// DeviceID returns the stable id of this installation, creating and
	// storing a new UUIDv7 on first use.
	DeviceID(ctx context.Context) (string, error)

	Register(ctx context.Context) (models.Device, error)
	Heartbeat(ctx context.Context) error

	// EnsureActive answers "is this device revoked?" before a push or pull.
	// An unknown device is registered on the fly.
	EnsureActive(ctx context.Context) error

	List(ctx context.Context) ([]models.Device, error)
	Revoke(ctx context.Context, deviceID string) error
}

// LocalStateService owns the current snapshot of this device and its
// plaintext offline mirror.
type LocalStateService interface {
	// Load reads the mirror, normalizes it and rechecks the audit chain.
	// A missing mirror yields a fresh snapshot.
	Load(ctx context.Context) (*models.State, error)

	// Current returns the snapshot in memory. Callers must not mutate it.
	Current() *models.State

	// Commit makes state current: it is normalized, its chain rechecked,
	// the restricted flag refreshed and the mirror rewritten. base is the
	// snapshot state was derived from; when another commit replaced it in
	// the meantime nothing is written and ErrStaleSnapshot is returned.
	Commit(ctx context.Context, base, state *models.State) (*models.State, error)

	// Clear removes the mirror and resets the snapshot.
	Clear(ctx context.Context) error
}

// IntegrityService applies the restricted-mode policy.
type IntegrityService interface {
	// Evaluate rechecks the chain of state and returns the rechecked copy.
	// The session becomes restricted when integrity checking is enabled and
	// the chain is broken.
	Evaluate(sess *SyncSession, state *models.State) *models.State
}

// ClientSyncService is the sync engine. It never mutates domain fields of
// the snapshots it is given.
type ClientSyncService interface {
	// Push encrypts state and uploads it with its plaintext meta, then
	// best-effort records a history snapshot. On success the marker is
	// moved to state.UpdatedAt.
	Push(ctx context.Context, sess *SyncSession, state *models.State) error

	// Pull returns the decrypted remote snapshot or nil when there is none.
	Pull(ctx context.Context, sess *SyncSession) (*models.State, error)

	// PullVersion is Pull for the history snapshot taken at createdAt.
	PullVersion(ctx context.Context, sess *SyncSession, createdAt time.Time) (*models.State, error)

	ListVersions(ctx context.Context, limit int) ([]models.VersionInfo, error)

	// Compare classifies local against the remote meta.
	Compare(ctx context.Context, local *models.State, marker *int64) (models.SyncDecision, error)

	// Wipe deletes the remote vault with its history and clears the marker.
	Wipe(ctx context.Context, sess *SyncSession) error

	// MarkSynced moves the marker to updatedAt and persists it.
	MarkSynced(ctx context.Context, sess *SyncSession, updatedAt int64) error
	// RestoreMarker loads the persisted marker into sess.
	RestoreMarker(ctx context.Context, sess *SyncSession) error
	// ForgetMarker clears the marker in sess and in local storage. The next
	// attempt compares as if this device never synced.
	ForgetMarker(ctx context.Context, sess *SyncSession) error
}

// SyncCoordinator runs sync attempts one at a time and owns conflict
// resolution.
type SyncCoordinator interface {
	// Synchronize compares and acts on the decision. While a conflict is
	// pending it returns ErrConflictPending without contacting the server.
	Synchronize(ctx context.Context) error

	// PushNow is a user-requested attempt; it compares before pushing.
	PushNow(ctx context.Context) error

	// KeepLocal resolves a conflict by overwriting the remote vault.
	KeepLocal(ctx context.Context) error
	// UseRemote resolves a conflict by replacing the local snapshot.
	UseRemote(ctx context.Context) error

	// RecoverFromRemote replaces local with the remote snapshot if its chain
	// verifies. It is the exit from restricted mode.
	RecoverFromRemote(ctx context.Context) error

	// RestoreVersion replaces local with a history snapshot.
	RestoreVersion(ctx context.Context, createdAt time.Time) error

	// AutoPush and AutoSync are the scheduled variants. They are no-ops
	// while a conflict is pending or the vault is locked.
	AutoPush(ctx context.Context) error
	AutoSync(ctx context.Context) error

	Status() models.SyncStatus
	Conflict() *models.ConflictRecord
}

// SyncScheduler drives the coordinator from timers and user activity.
type SyncScheduler interface {
	Start(ctx context.Context)
	Stop()

	// NotifyMutation restarts the push debounce window.
	NotifyMutation()
	// Touch restarts the idle lock timer.
	Touch()
}

// ExportService produces and consumes the portable files.
type ExportService interface {
	// Export returns a signed, encrypted export file.
	Export(ctx context.Context) ([]byte, error)

	// Import validates, verifies and adopts an export file. On success the
	// imported snapshot becomes current and a push is scheduled.
	Import(ctx context.Context, data []byte) (*models.State, error)

	EmergencyBundle(ctx context.Context) ([]byte, error)
	AnalyticsCSV(ctx context.Context) ([]byte, error)
}

// TaskInput is the editable part of a task.
type TaskInput struct {
	Title     string
	Section   string
	Notes     string
	Priority  int
	Tags      []string
	DueAt     *int64
	XP        int
	Recurring *models.Recurring
	Subtasks  []models.Subtask
}

// TaskService is the mutation layer. Every call produces a new snapshot
// with exactly one new audit event and a strictly greater UpdatedAt.
type TaskService interface {
	AddTask(ctx context.Context, in TaskInput) (models.Task, error)
	EditTask(ctx context.Context, id string, in TaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string) (models.Task, error)

	AddTemplate(ctx context.Context, name string, task models.TemplateTask) (models.Template, error)
	CreateTaskFromTemplate(ctx context.Context, templateID string) (models.Task, error)
}

// MutationNotifier is told about every committed local mutation.
type MutationNotifier interface {
	NotifyMutation()
}
