package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/crypto"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/mock"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// newTestSyncSvc: хелпер для создания clientSyncService с моками
func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller) (
	ClientSyncService,
	*mock.MockRemoteStore,
	*mock.MockClientDeviceService,
	*mock.MockKVRepository,
	*SyncSession,
) {
	t.Helper()
	remote := mock.NewMockRemoteStore(ctrl)
	devices := mock.NewMockClientDeviceService(ctrl)
	kv := mock.NewMockKVRepository(ctrl)

	cryptoSvc := NewClientCryptoService(crypto.NewVault(crypto.WithIterations(1000)), stepClock(startA))
	svc := NewClientSyncService(remote, devices, cryptoSvc, kv, config.ClientVault{VersionKeep: 7}, logger.Nop())

	sess := NewSyncSession("dev-1", "1.2.0")
	sess.Unlock(testPassphrase)
	return svc, remote, devices, kv, sess
}

func stateAt(updatedAt int64) *models.State {
	st := models.NewState(updatedAt)
	st.Tasks = append(st.Tasks, models.Task{ID: "t1", Title: "Read", Status: models.TaskOpen, Tags: []string{}, Subtasks: []models.Subtask{}})
	return st
}

// ── Push ─────────────────────────────────────────────────────────────────────

func TestClientSyncService_Push_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, devices, kv, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	st := stateAt(1_700_000_000_500)

	gomock.InOrder(
		devices.EXPECT().EnsureActive(ctx).Return(nil),
		remote.EXPECT().PutVault(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, r models.VaultRecord) (models.VaultRecord, error) {
				assert.NotEmpty(t, r.Blob)
				assert.Equal(t, st.UpdatedAt, r.Meta.UpdatedAt)
				assert.Equal(t, models.CurrentSchema, r.Meta.Schema)
				assert.Nil(t, r.Meta.LastEventHash)
				assert.Equal(t, "dev-1", r.DeviceID)
				assert.Equal(t, "1.2.0", r.AppVersion)
				return r, nil
			},
		),
		remote.EXPECT().InsertVersion(ctx, gomock.Any()).Return(nil),
		remote.EXPECT().PruneVersions(ctx, 7).Return(int64(0), nil),
		kv.EXPECT().Set(ctx, store.KeySyncMarker, strconv.FormatInt(st.UpdatedAt, 10)).Return(nil),
	)

	require.NoError(t, svc.Push(ctx, sess, st))

	marker := sess.Marker()
	require.NotNil(t, marker)
	assert.Equal(t, st.UpdatedAt, *marker)
}

func TestClientSyncService_Push_VersionFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, devices, kv, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	devices.EXPECT().EnsureActive(ctx).Return(nil)
	remote.EXPECT().PutVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.VaultRecord) (models.VaultRecord, error) { return r, nil },
	)
	remote.EXPECT().InsertVersion(ctx, gomock.Any()).Return(adapter.ErrInternalServerError)
	// PruneVersions не должен вызываться
	kv.EXPECT().Set(ctx, store.KeySyncMarker, gomock.Any()).Return(nil)

	assert.NoError(t, svc.Push(ctx, sess, stateAt(10)))
}

func TestClientSyncService_Push_Locked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestSyncSvc(t, ctrl)
	sess := NewSyncSession("dev-1", "1.2.0")

	err := svc.Push(context.Background(), sess, stateAt(10))
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestClientSyncService_Push_DeviceRevoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, devices, _, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	devices.EXPECT().EnsureActive(ctx).Return(ErrDeviceRevoked)

	err := svc.Push(ctx, sess, stateAt(10))
	assert.ErrorIs(t, err, ErrDeviceRevoked)
	assert.Nil(t, sess.Marker())
}

func TestClientSyncService_Push_Network(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, devices, _, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	devices.EXPECT().EnsureActive(ctx).Return(nil)
	remote.EXPECT().PutVault(ctx, gomock.Any()).Return(models.VaultRecord{}, adapter.ErrNetwork)

	err := svc.Push(ctx, sess, stateAt(10))
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Nil(t, sess.Marker())
}

// ── Pull / Compare ───────────────────────────────────────────────────────────

func TestClientSyncService_Pull_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, devices, kv, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	st := stateAt(42)

	var stored models.VaultRecord
	devices.EXPECT().EnsureActive(ctx).Return(nil).Times(2)
	remote.EXPECT().PutVault(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.VaultRecord) (models.VaultRecord, error) {
			stored = r
			return r, nil
		},
	)
	remote.EXPECT().InsertVersion(ctx, gomock.Any()).Return(nil)
	remote.EXPECT().PruneVersions(ctx, gomock.Any()).Return(int64(0), nil)
	kv.EXPECT().Set(ctx, store.KeySyncMarker, "42").Return(nil)
	remote.EXPECT().GetVault(ctx).DoAndReturn(func(context.Context) (*models.VaultRecord, error) {
		return &stored, nil
	})

	require.NoError(t, svc.Push(ctx, sess, st))
	got, err := svc.Pull(ctx, sess)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.UpdatedAt)
	assert.Equal(t, "Read", got.Tasks[0].Title)
}

func TestClientSyncService_Pull_NoRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, devices, _, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	devices.EXPECT().EnsureActive(ctx).Return(nil)
	remote.EXPECT().GetVault(ctx).Return(nil, nil)

	got, err := svc.Pull(ctx, sess)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientSyncService_Pull_WrongPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, devices, _, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	cryptoSvc := NewClientCryptoService(crypto.NewVault(crypto.WithIterations(1000)), stepClock(1))
	other := NewSyncSession("dev-2", "1.2.0")
	other.Unlock("another passphrase")
	_, blob, err := cryptoSvc.Seal(other, stateAt(5))
	require.NoError(t, err)

	devices.EXPECT().EnsureActive(ctx).Return(nil)
	remote.EXPECT().GetVault(ctx).Return(&models.VaultRecord{Blob: blob}, nil)

	_, err = svc.Pull(ctx, sess)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestClientSyncService_Compare(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, _, _, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	marker := int64(100)

	remote.EXPECT().GetVault(ctx).Return(nil, nil)
	decision, err := svc.Compare(ctx, stateAt(150), &marker)
	require.NoError(t, err)
	assert.Equal(t, models.ActionNoRemote, decision.Action)

	remote.EXPECT().GetVault(ctx).Return(&models.VaultRecord{Meta: models.VaultMeta{UpdatedAt: 120}}, nil)
	decision, err = svc.Compare(ctx, stateAt(150), &marker)
	require.NoError(t, err)
	assert.Equal(t, models.ActionConflict, decision.Action)
	assert.Equal(t, models.ActionUseLocal, decision.Newest)

	remote.EXPECT().GetVault(ctx).Return(nil, adapter.ErrNetwork)
	_, err = svc.Compare(ctx, stateAt(150), &marker)
	assert.ErrorIs(t, err, ErrNetwork)
}

// ── Wipe / markers ───────────────────────────────────────────────────────────

func TestClientSyncService_Wipe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, _, kv, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	sess.SetMarker(5)

	remote.EXPECT().DeleteVault(ctx).Return(nil)
	kv.EXPECT().Delete(ctx, store.KeySyncMarker).Return(nil)

	require.NoError(t, svc.Wipe(ctx, sess))
	assert.Nil(t, sess.Marker())
}

func TestClientSyncService_RestoreMarker(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		err     error
		want    *int64
		wantErr bool
	}{
		{name: "stored", raw: "1700000000123", want: ms(1700000000123)},
		{name: "never synced", err: store.ErrKeyNotFound},
		{name: "garbage is ignored", raw: "yesterday"},
		{name: "storage failure", err: errors.New("disk I/O error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, _, kv, sess := newTestSyncSvc(t, ctrl)
			ctx := context.Background()
			sess.SetMarker(1)

			kv.EXPECT().Get(ctx, store.KeySyncMarker).Return(tt.raw, tt.err)

			err := svc.RestoreMarker(ctx, sess)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sess.Marker())
		})
	}
}

func TestClientSyncService_ForgetMarker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, kv, sess := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	sess.SetMarker(42)

	kv.EXPECT().Delete(ctx, store.KeySyncMarker).Return(errors.New("database is locked"))

	// маркер в памяти сбрасывается даже если хранилище не ответило
	require.Error(t, svc.ForgetMarker(ctx, sess))
	assert.Nil(t, sess.Marker())
}

func TestClientSyncService_ListVersions_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, remote, _, _, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	remote.EXPECT().ListVersions(ctx, DefaultVersionListLimit).Return([]models.VersionInfo{}, nil)

	list, err := svc.ListVersions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
