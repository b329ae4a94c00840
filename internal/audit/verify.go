package audit

import (
	"encoding/json"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

// Verify walks the chain from the oldest event and stops at the first
// event whose PrevHash does not link to its predecessor or whose Hash does
// not match its content. An empty log verifies.
//
// An anchored log must carry a CHECKPOINT event recording that anchor,
// otherwise it is reported broken at index 0: the anchor field itself is
// not hashed.
func Verify(log models.AuditLog) models.VerifyResult {
	var expectedPrev *string
	if log.Anchor != nil {
		if !checkpointed(log) {
			return broken(0)
		}
		h := log.Anchor.Hash
		expectedPrev = &h
	}

	for i, e := range log.Events {
		if !sameLink(e.PrevHash, expectedPrev) {
			return broken(i)
		}
		h, err := ComputeHash(expectedPrev, e)
		if err != nil || h != e.Hash {
			return broken(i)
		}
		hash := e.Hash
		expectedPrev = &hash
	}

	return models.VerifyResult{OK: true}
}

// Check is Verify for callers that must reject a broken chain. The error
// wraps [ErrChainBroken] and names the first bad index.
func Check(log models.AuditLog) error {
	res := Verify(log)
	if res.OK {
		return nil
	}
	return fmt.Errorf("%w at event %d", ErrChainBroken, *res.BadIndex)
}

// Recheck verifies log and returns a copy with the cached verdict
// (OK, BadIndex, LastCheckedAt) refreshed. It is the only writer of those
// fields.
func Recheck(log models.AuditLog, nowMs int64) models.AuditLog {
	res := Verify(log)

	next := copyLog(log, 0)
	ok := res.OK
	next.OK = &ok
	next.BadIndex = res.BadIndex
	next.LastCheckedAt = &nowMs
	return next
}

// LastEventHash returns the hash the next appended event would link to.
func LastEventHash(log models.AuditLog) *string {
	return log.LastHash()
}

// checkpointed reports whether some CHECKPOINT event of log records
// exactly log.Anchor.
func checkpointed(log models.AuditLog) bool {
	for _, e := range log.Events {
		if e.Type != models.EventCheckpoint {
			continue
		}
		var p CheckpointPayload
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			continue
		}
		if p.AnchorHash == log.Anchor.Hash && p.Trimmed == log.Anchor.Trimmed {
			return true
		}
	}
	return false
}

func sameLink(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func broken(i int) models.VerifyResult {
	idx := i
	return models.VerifyResult{OK: false, BadIndex: &idx}
}
