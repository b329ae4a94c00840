package service

import (
	"sync"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

// SyncSession is the in-memory state of one signed-in client: the vault
// passphrase, the sync marker, a pending conflict, the user-visible status
// and the restricted flag. It is owned by the host and passed to the sync
// services explicitly. The passphrase is never persisted.
//
// All methods are safe for concurrent use.
type SyncSession struct {
	mu sync.RWMutex

	passphrase string
	unlocked   bool

	marker   *int64
	conflict *models.ConflictRecord

	status     models.SyncStatus
	restricted bool

	deviceID   string
	appVersion string
}

// NewSyncSession returns a locked session.
func NewSyncSession(deviceID, appVersion string) *SyncSession {
	return &SyncSession{
		status:     models.StatusLocked,
		deviceID:   deviceID,
		appVersion: appVersion,
	}
}

// Unlock stores the passphrase. An empty passphrase is ignored.
func (s *SyncSession) Unlock(passphrase string) {
	if passphrase == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passphrase = passphrase
	s.unlocked = true
	if s.status == models.StatusLocked {
		s.status = models.StatusReady
	}
}

// Lock forgets the passphrase. Cached local data stays available.
func (s *SyncSession) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passphrase = ""
	s.unlocked = false
	s.status = models.StatusLocked
}

func (s *SyncSession) Passphrase() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passphrase, s.unlocked
}

func (s *SyncSession) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.unlocked
}

// Marker returns the updatedAt both sides last agreed on, or nil before the
// first successful sync.
func (s *SyncSession) Marker() *int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.marker == nil {
		return nil
	}
	m := *s.marker
	return &m
}

func (s *SyncSession) SetMarker(updatedAt int64) {
	s.mu.Lock()
	s.marker = &updatedAt
	s.mu.Unlock()
}

func (s *SyncSession) ClearMarker() {
	s.mu.Lock()
	s.marker = nil
	s.mu.Unlock()
}

func (s *SyncSession) Conflict() *models.ConflictRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conflict == nil {
		return nil
	}
	c := *s.conflict
	return &c
}

func (s *SyncSession) SetConflict(c models.ConflictRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflict = &c
	s.status = models.StatusConflict
}

func (s *SyncSession) ClearConflict() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflict = nil
	if s.status == models.StatusConflict {
		s.status = models.StatusReady
	}
}

func (s *SyncSession) ConflictPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conflict != nil
}

func (s *SyncSession) Status() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetStatus updates the status. A pending conflict keeps the Conflict
// status until it is resolved.
func (s *SyncSession) SetStatus(status models.SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflict != nil && status != models.StatusLocked {
		s.status = models.StatusConflict
		return
	}
	s.status = status
}

// Restricted reports whether the local audit chain failed verification
// while integrity checking is enabled.
func (s *SyncSession) Restricted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restricted
}

func (s *SyncSession) SetRestricted(restricted bool) {
	s.mu.Lock()
	s.restricted = restricted
	s.mu.Unlock()
}

func (s *SyncSession) DeviceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceID
}

func (s *SyncSession) SetDeviceID(deviceID string) {
	s.mu.Lock()
	s.deviceID = deviceID
	s.mu.Unlock()
}

func (s *SyncSession) AppVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appVersion
}
