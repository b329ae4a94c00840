package audit

import (
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// CheckpointPayload is recorded by the CHECKPOINT event that compaction
// appends.
type CheckpointPayload struct {
	AnchorHash string `json:"anchorHash"`
	Trimmed    int    `json:"trimmed"`
}

// Compact keeps the newest keep events of log and drops the rest. The hash
// of the last dropped event becomes the log anchor, so the retained suffix
// keeps verifying, and a CHECKPOINT event recording the anchor is appended.
//
// keep <= 0, or a log that is already short enough, is returned unchanged.
// A log that fails verification is refused with ErrChainBroken: compaction
// must never launder a tampered prefix.
func (r *Recorder) Compact(log models.AuditLog, keep int, deviceID, appVersion string) (models.AuditLog, error) {
	if keep <= 0 || len(log.Events) <= keep {
		return log, nil
	}
	if err := Check(log); err != nil {
		return log, err
	}

	cut := len(log.Events) - keep
	trimmed := cut
	if log.Anchor != nil {
		trimmed += log.Anchor.Trimmed
	}
	anchor := &models.AuditAnchor{Hash: log.Events[cut-1].Hash, Trimmed: trimmed}

	next := copyLog(models.AuditLog{
		Events:        log.Events[cut:],
		OK:            log.OK,
		BadIndex:      log.BadIndex,
		LastCheckedAt: log.LastCheckedAt,
		Anchor:        anchor,
	}, 1)

	next, _, err := r.Append(next, EventInput{
		Type:       models.EventCheckpoint,
		Entity:     "audit",
		Payload:    CheckpointPayload{AnchorHash: anchor.Hash, Trimmed: trimmed},
		DeviceID:   deviceID,
		AppVersion: appVersion,
	})
	if err != nil {
		return log, err
	}
	return next, nil
}
