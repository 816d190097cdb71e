package grievance

import (
	"strings"
	"time"

	"gramalert/backend/internal/config"
)

// ResolutionDeadline returns the resolve-by timestamp for a grievance
// submitted in the given category at submittedAt. Matching is
// case-insensitive; categories outside the table get the default window.
// The result is fixed at submission and never recomputed.
func ResolutionDeadline(category string, submittedAt time.Time) time.Time {
	if window, ok := config.ResolutionWindows[strings.ToLower(category)]; ok {
		return submittedAt.Add(window)
	}
	return submittedAt.Add(config.DefaultResolutionWindow)
}
