package store

import "boothq/internal/models"

// canonicalFrom lists the statuses each queue action normally fires from.
// Every action is still permitted from any status so operators can fix
// mistakes (walk-ins skip the called step, completed entries can be
// reverted); callers use Canonical only to attach a warning to responses.
var canonicalFrom = map[string][]string{
	"call":     {models.StatusWaiting},
	"recall":   {models.StatusCalled},
	"complete": {models.StatusCalled},
	"revert":   {models.StatusCalled, models.StatusCompleted},
	"cancel":   {models.StatusWaiting, models.StatusCalled},
}

func Canonical(action, fromStatus string) bool {
	allowed, ok := canonicalFrom[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
