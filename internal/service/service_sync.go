package service

import (
	"sort"
	"strings"

	"github.com/pentagon14032008-ux/Life-OS/models"
)

// ClassifyDivergence decides what a sync attempt should do given the local
// updatedAt, the remote meta (nil when the account has no vault) and the
// marker of the last successful sync (nil before the first one).
//
//   - no remote                  → no_remote
//   - no marker                  → the side with the greater updatedAt;
//     local wins a tie
//   - neither changed since marker → use_local (nothing to do)
//   - only remote changed        → use_remote
//   - only local changed         → use_local
//   - both changed               → conflict, Newest names the more recent
//     side as a hint (remote wins a tie)
func ClassifyDivergence(localUpdatedAt int64, remote *models.VaultMeta, marker *int64) models.SyncDecision {
	if remote == nil {
		return models.SyncDecision{Action: models.ActionNoRemote}
	}

	decision := models.SyncDecision{RemoteMeta: remote}

	if marker == nil {
		if remote.UpdatedAt > localUpdatedAt {
			decision.Action = models.ActionUseRemote
		} else {
			decision.Action = models.ActionUseLocal
		}
		return decision
	}

	localChanged := localUpdatedAt > *marker
	remoteChanged := remote.UpdatedAt > *marker

	switch {
	case localChanged && remoteChanged:
		decision.Action = models.ActionConflict
		decision.Newest = models.ActionUseLocal
		if remote.UpdatedAt >= localUpdatedAt {
			decision.Newest = models.ActionUseRemote
		}
	case remoteChanged:
		decision.Action = models.ActionUseRemote
	default:
		decision.Action = models.ActionUseLocal
	}

	return decision
}

// BuildConflictPreview summarizes how two snapshots differ. TaskTitleDiff
// is the sorted symmetric difference of the trimmed, non-empty task titles.
func BuildConflictPreview(local, remote *models.State) models.ConflictPreview {
	if local == nil {
		local = &models.State{}
	}
	if remote == nil {
		remote = &models.State{}
	}

	diff := local.DoneCount() - remote.DoneCount()
	if diff < 0 {
		diff = -diff
	}

	return models.ConflictPreview{
		LocalUpdatedAt:  local.UpdatedAt,
		RemoteUpdatedAt: remote.UpdatedAt,
		LocalTasks:      len(local.Tasks),
		RemoteTasks:     len(remote.Tasks),
		LocalEvents:     len(local.Audit.Events),
		RemoteEvents:    len(remote.Audit.Events),
		TaskTitleDiff:   titleDiff(local.Tasks, remote.Tasks),
		DoneCountDiff:   diff,
	}
}

func titleDiff(a, b []models.Task) []string {
	left := titleSet(a)
	right := titleSet(b)

	out := make([]string, 0)
	for t := range left {
		if _, ok := right[t]; !ok {
			out = append(out, t)
		}
	}
	for t := range right {
		if _, ok := left[t]; !ok {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func titleSet(tasks []models.Task) map[string]struct{} {
	set := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if title := strings.TrimSpace(t.Title); title != "" {
			set[title] = struct{}{}
		}
	}
	return set
}
