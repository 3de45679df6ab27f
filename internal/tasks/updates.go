package tasks

import (
	"fmt"

	"github.com/dokusho-app/dokusho/internal/models"
)

// Phase identifies a stage of a migration run.
type Phase int

const (
	PhaseDetect Phase = iota
	PhaseSaveArticles
	PhaseClearLegacy
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseDetect:
		return "detect"
	case PhaseSaveArticles:
		return "save"
	case PhaseClearLegacy:
		return "clear"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressUpdate is a point-in-time status message emitted during a migration.
type ProgressUpdate struct {
	Identity models.Identity
	Phase    Phase
	Message  string
	Current  int // Position within the phase, 1-based (0 when not applicable)
	Total    int // Phase size (0 when not applicable)
}

func detectUpdate(identity models.Identity) ProgressUpdate {
	return ProgressUpdate{
		Identity: identity,
		Phase:    PhaseDetect,
		Message:  fmt.Sprintf("found legacy data for %s", identity),
	}
}

func noLegacyDataUpdate(identity models.Identity) ProgressUpdate {
	return ProgressUpdate{
		Identity: identity,
		Phase:    PhaseDone,
		Message:  fmt.Sprintf("no legacy data for %s", identity),
	}
}

func saveUpdate(identity models.Identity, current, total int, topic string) ProgressUpdate {
	return ProgressUpdate{
		Identity: identity,
		Phase:    PhaseSaveArticles,
		Message:  fmt.Sprintf("saving %q (%d/%d)", topic, current, total),
		Current:  current,
		Total:    total,
	}
}

func doneUpdate(identity models.Identity, migrated int) ProgressUpdate {
	return ProgressUpdate{
		Identity: identity,
		Phase:    PhaseDone,
		Message:  fmt.Sprintf("migrated %d articles for %s", migrated, identity),
		Current:  migrated,
		Total:    migrated,
	}
}
