package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/pentagon14032008-ux/Life-OS/internal/audit"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/internal/validators"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// ImportPayload is recorded by the VAULT_IMPORT event.
type ImportPayload struct {
	ExportedAt int64  `json:"exportedAt"`
	AppVersion string `json:"appVersion"`
	Signature  string `json:"signature"`
}

var csvHeader = []string{
	"id", "title", "section", "status", "priority", "tags",
	"created_at", "updated_at", "due_at", "xp",
}

type exportService struct {
	local     LocalStateService
	crypto    ClientCryptoService
	sess      *SyncSession
	recorder  *audit.Recorder
	validator validators.Validator
	notifier  MutationNotifier
	clock     utils.Clock
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewExportService(
	local LocalStateService,
	cryptoSvc ClientCryptoService,
	sess *SyncSession,
	recorder *audit.Recorder,
	validator validators.Validator,
	notifier MutationNotifier,
	clock utils.Clock,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) ExportService {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &exportService{
		local:     local,
		crypto:    cryptoSvc,
		sess:      sess,
		recorder:  recorder,
		validator: validator,
		notifier:  notifier,
		clock:     clock,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

func (e *exportService) Export(ctx context.Context) ([]byte, error) {
	state, err := e.exportable()
	if err != nil {
		return nil, err
	}

	blob, _, err := e.crypto.Seal(e.sess, state)
	if err != nil {
		return nil, err
	}

	body := models.SignedExportBody{
		Meta: models.ExportMeta{
			Type:       models.ExportFileType,
			ExportedAt: e.clock.NowMillis(),
			AppVersion: e.buildInfo.BuildVersion(),
			Build:      e.buildInfo.Build(),
			Integrity:  e.integrity(state),
		},
		Vault: blob,
	}
	signature, err := e.sign(body)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(models.ExportFile{Meta: body.Meta, Vault: body.Vault, Signature: signature}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}

	logger.FromContext(ctx).Info().Int("tasks", len(state.Tasks)).Msg("vault exported")
	return out, nil
}

// Import checks, in order: structure, version compatibility, signature,
// passphrase and the embedded audit chain. Nothing is decrypted before the
// signature matched and nothing replaces local state before the chain
// verified.
func (e *exportService) Import(ctx context.Context, data []byte) (*models.State, error) {
	if err := e.validator.Validate(ctx, data, validators.FieldExportFile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	var file models.ExportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	if err := e.checkCompatible(file.Meta.AppVersion); err != nil {
		return nil, err
	}

	expected, err := e.sign(models.SignedExportBody{Meta: file.Meta, Vault: file.Vault})
	if err != nil {
		return nil, err
	}
	if !utils.EqualHex(expected, file.Signature) {
		return nil, ErrSignatureMismatch
	}

	if e.sess.Locked() {
		return nil, ErrVaultLocked
	}

	imported, err := e.crypto.OpenBlob(e.sess, file.Vault)
	if err != nil {
		return nil, err
	}

	if err = audit.Check(imported.Audit); err != nil {
		return nil, err
	}

	imported.Audit, _, err = e.recorder.Append(imported.Audit, audit.EventInput{
		Type:   models.EventVaultImport,
		Entity: "vault",
		Payload: ImportPayload{
			ExportedAt: file.Meta.ExportedAt,
			AppVersion: file.Meta.AppVersion,
			Signature:  file.Signature,
		},
		DeviceID:   e.sess.DeviceID(),
		AppVersion: e.sess.AppVersion(),
	})
	if err != nil {
		return nil, fmt.Errorf("record import: %w", err)
	}

	current := e.local.Current()
	imported.UpdatedAt = nextUpdatedAt(max(current.UpdatedAt, imported.UpdatedAt), e.clock.NowMillis())

	committed, err := e.local.Commit(ctx, current, imported)
	if err != nil {
		return nil, err
	}
	e.sess.ClearConflict()
	if e.notifier != nil {
		e.notifier.NotifyMutation()
	}

	logger.FromContext(ctx).Info().
		Int("tasks", len(committed.Tasks)).
		Int("events", len(committed.Audit.Events)).
		Msg("vault imported")
	return committed, nil
}

func (e *exportService) EmergencyBundle(ctx context.Context) ([]byte, error) {
	state, err := e.exportable()
	if err != nil {
		return nil, err
	}

	blob, _, err := e.crypto.Seal(e.sess, state)
	if err != nil {
		return nil, err
	}

	bundle := models.EmergencyBundle{
		Type: models.EmergencyBundleType,
		Report: models.EmergencyReport{
			ExportedAt: e.clock.NowMillis(),
			AppVersion: e.buildInfo.BuildVersion(),
			Build:      e.buildInfo.Build(),
			Integrity:  e.integrity(state),
			Tasks:      len(state.Tasks),
			Events:     len(state.Audit.Events),
		},
		Vault: blob,
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal emergency bundle: %w", err)
	}
	return out, nil
}

func (e *exportService) AnalyticsCSV(ctx context.Context) ([]byte, error) {
	state, err := e.exportable()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err = w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	for _, t := range state.Tasks {
		due := ""
		if t.DueAt != nil {
			due = formatMillis(*t.DueAt)
		}
		row := []string{
			t.ID,
			t.Title,
			t.Section,
			string(t.Status),
			strconv.Itoa(t.Priority),
			strings.Join(t.Tags, ";"),
			formatMillis(t.CreatedAt),
			formatMillis(t.UpdatedAt),
			due,
			strconv.Itoa(t.XP),
		}
		if err = w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// exportable returns the current snapshot if it may leave the device.
func (e *exportService) exportable() (*models.State, error) {
	if e.sess.Locked() {
		return nil, ErrVaultLocked
	}
	if e.sess.Restricted() {
		return nil, ErrRestricted
	}
	return e.local.Current(), nil
}

func (e *exportService) integrity(state *models.State) models.ExportIntegrity {
	return models.ExportIntegrity{
		OK:            state.Audit.Healthy(),
		Restricted:    e.sess.Restricted(),
		LastEventHash: audit.LastEventHash(state.Audit),
	}
}

func (e *exportService) sign(body models.SignedExportBody) (string, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal signed body: %w", err)
	}
	return e.crypto.Fingerprint(raw), nil
}

// checkCompatible rejects files written by a newer major version. A
// development build without a semantic version accepts everything.
func (e *exportService) checkCompatible(fileVersion string) error {
	current, err := semver.NewVersion(e.buildInfo.BuildVersion())
	if err != nil {
		return nil
	}
	version, err := semver.NewVersion(fileVersion)
	if err != nil {
		return fmt.Errorf("%w: app version %q: %w", ErrInvalidExport, fileVersion, err)
	}
	if version.Major() > current.Major() {
		return fmt.Errorf("%w: written by %s, this is %s", ErrInvalidExport, version, current)
	}
	return nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
