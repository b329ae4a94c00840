package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

const testPassphrase = "correct horse battery staple"

// memRemote: общий для нескольких устройств удалённый стор в памяти.
type memRemote struct {
	mu       sync.Mutex
	vault    *models.VaultRecord
	versions []models.VaultVersion
	next     time.Time

	offline       bool
	failVersions  bool
	putCalls      int
	versionWrites int
}

func newMemRemote() *memRemote {
	return &memRemote{next: time.UnixMilli(1_700_000_000_000).UTC()}
}

func (m *memRemote) GetVault(_ context.Context) (*models.VaultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return nil, adapter.ErrNetwork
	}
	if m.vault == nil {
		return nil, nil
	}
	v := *m.vault
	return &v, nil
}

func (m *memRemote) PutVault(_ context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return models.VaultRecord{}, adapter.ErrNetwork
	}
	m.putCalls++
	m.vault = &record
	return record, nil
}

func (m *memRemote) DeleteVault(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vault = nil
	m.versions = nil
	return nil
}

func (m *memRemote) InsertVersion(_ context.Context, version models.VaultVersion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failVersions {
		return fmt.Errorf("%w: history table is gone", adapter.ErrInternalServerError)
	}
	m.next = m.next.Add(time.Second)
	version.CreatedAt = m.next
	m.versions = append(m.versions, version)
	m.versionWrites++
	return nil
}

func (m *memRemote) ListVersions(_ context.Context, limit int) ([]models.VersionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.VersionInfo, 0, len(m.versions))
	for i := len(m.versions) - 1; i >= 0 && len(out) < limit; i-- {
		v := m.versions[i]
		out = append(out, models.VersionInfo{CreatedAt: v.CreatedAt, AppVersion: v.AppVersion, Meta: v.Meta})
	}
	return out, nil
}

func (m *memRemote) GetVersion(_ context.Context, createdAt time.Time) (*models.VaultVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.versions {
		if v.CreatedAt.Equal(createdAt) {
			found := v
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memRemote) PruneVersions(_ context.Context, keep int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sort.Slice(m.versions, func(i, j int) bool { return m.versions[i].CreatedAt.Before(m.versions[j].CreatedAt) })
	over := len(m.versions) - keep
	if over <= 0 {
		return 0, nil
	}
	m.versions = m.versions[over:]
	return int64(over), nil
}

func (m *memRemote) setOffline(offline bool) {
	m.mu.Lock()
	m.offline = offline
	m.mu.Unlock()
}

func (m *memRemote) remoteMeta() models.VaultMeta {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vault == nil {
		return models.VaultMeta{}
	}
	return m.vault.Meta
}

// memStateRepo хранит снимок так же, как SQLite-зеркало: сериализованным.
type memStateRepo struct {
	mu    sync.Mutex
	state *models.State
	saves int
}

func (r *memStateRepo) LoadState(_ context.Context) (*models.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil, store.ErrLocalStateNotFound
	}
	return r.state.Clone()
}

func (r *memStateRepo) SaveState(_ context.Context, state *models.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp, err := state.Clone()
	if err != nil {
		return err
	}
	r.state = cp
	r.saves++
	return nil
}

func (r *memStateRepo) ClearState(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = nil
	return nil
}

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (k *memKV) Get(_ context.Context, key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	if !ok {
		return "", store.ErrKeyNotFound
	}
	return v, nil
}

func (k *memKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
	return nil
}

func (k *memKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, key)
	return nil
}

// activeDevice is a ClientDeviceService that is always registered.
type activeDevice struct {
	revoked bool
}

func (d *activeDevice) DeviceID(context.Context) (string, error) { return "dev", nil }
func (d *activeDevice) Register(context.Context) (models.Device, error) {
	return models.Device{DeviceID: "dev"}, nil
}
func (d *activeDevice) Heartbeat(context.Context) error { return nil }
func (d *activeDevice) EnsureActive(context.Context) error {
	if d.revoked {
		return ErrDeviceRevoked
	}
	return nil
}
func (d *activeDevice) List(context.Context) ([]models.Device, error) { return nil, nil }
func (d *activeDevice) Revoke(context.Context, string) error { return nil }

type seqIDs struct {
	prefix string
	mu     sync.Mutex
	n      int
}

func (s *seqIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

// stepClock advances by one millisecond on every reading.
func stepClock(start int64) utils.Clock {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now++
		return time.UnixMilli(now)
	}
}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) NotifyMutation() {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

// testDevice is one client installation wired to a shared remote.
type testDevice struct {
	sess     *SyncSession
	kv       *memKV
	repo     *memStateRepo
	devices  *activeDevice
	notifier *countingNotifier
	recorder *audit.Recorder
	crypto   ClientCryptoService
	local    LocalStateService
	engine   ClientSyncService
	coord    SyncCoordinator
	tasks    TaskService
	clock    utils.Clock
}

func newTestDevice(t *testing.T, remote adapter.RemoteStore, name string, start int64) *testDevice {
	t.Helper()

	clock := stepClock(start)
	d := &testDevice{
		sess:     NewSyncSession(name, "1.2.0"),
		kv:       newMemKV(),
		repo:     &memStateRepo{},
		devices:  &activeDevice{},
		notifier: &countingNotifier{},
		clock:    clock,
	}
	d.sess.Unlock(testPassphrase)

	d.recorder = audit.NewRecorder(clock, &seqIDs{prefix: name + "-ev"})
	d.crypto = NewClientCryptoService(crypto.NewVault(crypto.WithIterations(1000)), clock)
	d.local = NewLocalStateService(d.repo, NewIntegrityService(clock), d.recorder, d.sess, clock, 0, logger.Nop())
	d.engine = NewClientSyncService(remote, d.devices, d.crypto, d.kv, config.ClientVault{VersionKeep: 5}, logger.Nop())
	d.coord = NewSyncCoordinator(d.engine, d.local, d.sess, d.recorder, clock, logger.Nop())
	d.tasks = NewTaskService(d.local, d.sess, d.recorder, &seqIDs{prefix: name + "-task"}, d.notifier, clock, logger.Nop())

	_, err := d.local.Load(context.Background())
	require.NoError(t, err)
	return d
}

func (d *testDevice) addTasks(t *testing.T, titles ...string) []models.Task {
	t.Helper()
	out := make([]models.Task, 0, len(titles))
	for _, title := range titles {
		task, err := d.tasks.AddTask(context.Background(), TaskInput{Title: title, XP: 10})
		require.NoError(t, err)
		out = append(out, task)
	}
	return out
}

func titles(st *models.State) []string {
	out := make([]string, 0, len(st.Tasks))
	for _, task := range st.Tasks {
		out = append(out, task.Title)
	}
	return out
}
