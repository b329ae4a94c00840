// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/validators"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

func newTestExportSvc(t *testing.T, d *testDevice) *exportService {
	t.Helper()
	v, err := validators.NewExportValidator()
	require.NoError(t, err)

	svc := NewExportService(d.local, d.crypto, d.sess, d.recorder, v, d.notifier, d.clock,
		models.NewAppBuildInfo("1.2.0", "2026-10-01", "abc1234"), logger.Nop())
	return svc.(*exportService)
}

func decodeExport(t *testing.T, raw []byte) models.ExportFile {
	t.Helper()
	var f models.ExportFile
	require.NoError(t, json.Unmarshal(raw, &f))
	return f
}

func encodeExport(t *testing.T, f models.ExportFile) []byte {
	t.Helper()
	raw, err := json.Marshal(f)
	require.NoError(t, err)
	return raw
}

func TestExportService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestDevice(t, newMemRemote(), "A", startA)
	src.addTasks(t, "Buy milk", "Write report")

	raw, err := newTestExportSvc(t, src).Export(ctx)
	require.NoError(t, err)

	file := decodeExport(t, raw)
	assert.Equal(t, models.ExportFileType, file.Meta.Type)
	assert.Equal(t, "1.2.0", file.Meta.AppVersion)
	assert.Equal(t, "2026-10-01+abc1234", file.Meta.Build)
	assert.True(t, file.Meta.Integrity.OK)
	assert.Len(t, file.Signature, 64)

	// импорт на другом устройстве с той же парольной фразой
	dst := newTestDevice(t, newMemRemote(), "B", startB)
	imported, err := newTestExportSvc(t, dst).Import(ctx, raw)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Buy milk", "Write report"}, titles(imported))
	assert.Same(t, imported, dst.local.Current())
	assert.True(t, audit.Verify(imported.Audit).OK)
	assert.Greater(t, imported.UpdatedAt, src.local.Current().UpdatedAt)

	last := imported.Audit.Events[len(imported.Audit.Events)-1]
	assert.Equal(t, models.EventVaultImport, last.Type)
	require.NotNil(t, last.DeviceID)
	assert.Equal(t, "B", *last.DeviceID)
	assert.Equal(t, 1, dst.notifier.count())
}

func TestExportService_Import_TamperedCiphertext(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	d.addTasks(t, "Secret plan")
	svc := newTestExportSvc(t, d)

	raw, err := svc.Export(ctx)
	require.NoError(t, err)

	file := decodeExport(t, raw)
	ct := []byte(file.Vault.CtB64)
	if ct[0] == 'A' {
		ct[0] = 'B'
	} else {
		ct[0] = 'A'
	}
	file.Vault.CtB64 = string(ct)

	before := d.local.Current()
	_, err = svc.Import(ctx, encodeExport(t, file))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Same(t, before, d.local.Current())
}

func TestExportService_Import_UnsignedExtraField(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	d.addTasks(t, "Secret plan")
	svc := newTestExportSvc(t, d)

	raw, err := svc.Export(ctx)
	require.NoError(t, err)

	// поле вне подписи не должно проходить молча
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	doc["meta"].(map[string]any)["note"] = "edited by hand"
	edited, err := json.Marshal(doc)
	require.NoError(t, err)

	before := d.local.Current()
	_, err = svc.Import(ctx, edited)
	assert.ErrorIs(t, err, ErrInvalidExport)
	assert.Same(t, before, d.local.Current())
}

func TestExportService_Import_ResignedTamperIsCaughtByAEAD(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	d.addTasks(t, "Secret plan")
	svc := newTestExportSvc(t, d)

	raw, err := svc.Export(ctx)
	require.NoError(t, err)

	// подпись не MAC: злоумышленник может её пересчитать, но AEAD не обманешь
	file := decodeExport(t, raw)
	ct := []byte(file.Vault.CtB64)
	if ct[0] == 'A' {
		ct[0] = 'B'
	} else {
		ct[0] = 'A'
	}
	file.Vault.CtB64 = string(ct)
	file.Signature, err = svc.sign(models.SignedExportBody{Meta: file.Meta, Vault: file.Vault})
	require.NoError(t, err)

	_, err = svc.Import(ctx, encodeExport(t, file))
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestExportService_Import_SchemaViolation(t *testing.T) {
	d := newTestDevice(t, newMemRemote(), "A", startA)
	svc := newTestExportSvc(t, d)

	for name, raw := range map[string]string{
		"not json":          `{"meta":`,
		"missing signature": `{"meta":{"type":"lifeos_vault_export","exportedAt":1,"appVersion":"1.0.0","integrity":{"ok":true,"restricted":false,"lastEventHash":null}},"vault":{"v":1,"iters":1000,"saltB64":"AA==","ivB64":"AA==","ctB64":"AA=="}}`,
		"wrong type":        `{"type":"lifeos_emergency_bundle"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Import(context.Background(), []byte(raw))
			assert.ErrorIs(t, err, ErrInvalidExport)
		})
	}
}

func TestExportService_Import_NewerMajorVersion(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	d.addTasks(t, "One")
	svc := newTestExportSvc(t, d)

	raw, err := svc.Export(ctx)
	require.NoError(t, err)

	file := decodeExport(t, raw)
	file.Meta.AppVersion = "2.0.0"
	file.Signature, err = svc.sign(models.SignedExportBody{Meta: file.Meta, Vault: file.Vault})
	require.NoError(t, err)

	_, err = svc.Import(ctx, encodeExport(t, file))
	assert.ErrorIs(t, err, ErrInvalidExport)

	file.Meta.AppVersion = "1.9.3"
	file.Signature, err = svc.sign(models.SignedExportBody{Meta: file.Meta, Vault: file.Vault})
	require.NoError(t, err)

	_, err = svc.Import(ctx, encodeExport(t, file))
	assert.NoError(t, err)
}

func TestExportService_Import_BrokenChain(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	svc := newTestExportSvc(t, d)

	forged := chainedState(t, 3)
	forged.Audit.Events[2].Payload = []byte(`{"n":99}`)

	blob, _, err := d.crypto.Seal(d.sess, forged)
	require.NoError(t, err)
	file := models.ExportFile{
		Meta: models.ExportMeta{
			Type:       models.ExportFileType,
			ExportedAt: startA,
			AppVersion: "1.2.0",
			Integrity:  models.ExportIntegrity{OK: true},
		},
		Vault: blob,
	}
	file.Signature, err = svc.sign(models.SignedExportBody{Meta: file.Meta, Vault: file.Vault})
	require.NoError(t, err)

	before := d.local.Current()
	_, err = svc.Import(ctx, encodeExport(t, file))
	assert.ErrorIs(t, err, ErrChainBroken)
	assert.Same(t, before, d.local.Current())
}

func TestExportService_Import_Locked(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	svc := newTestExportSvc(t, d)

	raw, err := svc.Export(ctx)
	require.NoError(t, err)

	d.sess.Lock()
	_, err = svc.Import(ctx, raw)
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestExportService_Import_ClearsConflict(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	svc := newTestExportSvc(t, d)

	raw, err := svc.Export(ctx)
	require.NoError(t, err)

	d.sess.SetConflict(models.ConflictRecord{Newest: models.ActionUseRemote})
	_, err = svc.Import(ctx, raw)
	require.NoError(t, err)
	assert.False(t, d.sess.ConflictPending())
}

func TestExportService_RestrictedBlocksExports(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	d.addTasks(t, "One")
	breakChain(t, d)
	svc := newTestExportSvc(t, d)

	_, err := svc.Export(ctx)
	assert.ErrorIs(t, err, ErrRestricted)
	_, err = svc.EmergencyBundle(ctx)
	assert.ErrorIs(t, err, ErrRestricted)
	_, err = svc.AnalyticsCSV(ctx)
	assert.ErrorIs(t, err, ErrRestricted)
}

func TestExportService_EmergencyBundle(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)
	d.addTasks(t, "One", "Two")
	svc := newTestExportSvc(t, d)

	raw, err := svc.EmergencyBundle(ctx)
	require.NoError(t, err)

	v, err := validators.NewExportValidator()
	require.NoError(t, err)
	require.NoError(t, v.Validate(ctx, raw, validators.FieldEmergencyBundle))

	var bundle models.EmergencyBundle
	require.NoError(t, json.Unmarshal(raw, &bundle))
	assert.Equal(t, models.EmergencyBundleType, bundle.Type)
	assert.Equal(t, 2, bundle.Report.Tasks)
	assert.Equal(t, 2, bundle.Report.Events)

	opened, err := d.crypto.OpenBlob(d.sess, bundle.Vault)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"One", "Two"}, titles(opened))
}

func TestExportService_AnalyticsCSV(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, newMemRemote(), "A", startA)

	due := int64(1_700_000_200_000)
	_, err := d.tasks.AddTask(ctx, TaskInput{Title: "Taxes, finally", Tags: []string{"money", "q4"}, Priority: 2, DueAt: &due, XP: 30})
	require.NoError(t, err)
	d.addTasks(t, "Walk")

	raw, err := newTestExportSvc(t, d).AnalyticsCSV(ctx)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "Taxes, finally", first[1])
	assert.Equal(t, "Open", first[3])
	assert.Equal(t, "2", first[4])
	assert.Equal(t, "money;q4", first[5])
	assert.Equal(t, "2023-11-14T22:16:40Z", first[8])
	assert.Equal(t, "30", first[9])
	assert.Empty(t, rows[2][8])
}
