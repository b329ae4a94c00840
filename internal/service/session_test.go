package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

func TestSyncSession_LockUnlock(t *testing.T) {
	s := NewSyncSession("dev", "1.0.0")
	assert.True(t, s.Locked())
	assert.Equal(t, models.StatusLocked, s.Status())

	s.Unlock("")
	assert.True(t, s.Locked(), "empty passphrase must not unlock")

	s.Unlock("secret")
	pass, ok := s.Passphrase()
	require.True(t, ok)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, models.StatusReady, s.Status())

	s.Lock()
	pass, ok = s.Passphrase()
	assert.False(t, ok)
	assert.Empty(t, pass)
	assert.Equal(t, models.StatusLocked, s.Status())
}

func TestSyncSession_MarkerIsCopied(t *testing.T) {
	s := NewSyncSession("dev", "1.0.0")
	assert.Nil(t, s.Marker())

	s.SetMarker(100)
	m := s.Marker()
	require.NotNil(t, m)
	*m = 5
	assert.Equal(t, int64(100), *s.Marker())

	s.ClearMarker()
	assert.Nil(t, s.Marker())
}

func TestSyncSession_ConflictOverridesStatus(t *testing.T) {
	s := NewSyncSession("dev", "1.0.0")
	s.Unlock("secret")

	s.SetConflict(models.ConflictRecord{Newest: models.ActionUseLocal})
	assert.True(t, s.ConflictPending())
	assert.Equal(t, models.StatusConflict, s.Status())

	s.SetStatus(models.StatusSynced)
	assert.Equal(t, models.StatusConflict, s.Status())

	s.SetStatus(models.StatusLocked)
	assert.Equal(t, models.StatusLocked, s.Status())

	s.SetStatus(models.StatusConflict)
	s.ClearConflict()
	assert.False(t, s.ConflictPending())
	assert.Nil(t, s.Conflict())
	assert.Equal(t, models.StatusReady, s.Status())
}

func TestSyncSession_Concurrent(t *testing.T) {
	s := NewSyncSession("dev", "1.0.0")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Unlock("secret")
			s.SetMarker(int64(i))
			_ = s.Marker()
			s.SetRestricted(i%2 == 0)
			_ = s.Restricted()
			s.SetStatus(models.StatusSyncing)
		}(i)
	}
	wg.Wait()

	assert.False(t, s.Locked())
	assert.NotNil(t, s.Marker())
}
