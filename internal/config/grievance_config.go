package config

import "time"

const (
	// Workflow defaults
	InitialStatus     = "Received"
	ResolvedStatus    = "Resolved"
	InitialPriority   = "Medium"
	EscalatedPriority = "High"

	// Escalation
	SweepInterval      = time.Hour
	EscalatedLevel     = 1
	InitialReportCount = 1

	// Deadline fallback for categories outside the table
	DefaultResolutionWindow = 240 * time.Hour

	// Auth glue
	TokenTTL = 72 * time.Hour

	// Display
	UnknownUserName = "Unknown User"
)

// ResolutionWindows maps a lower-cased grievance category to the time the
// authority has to resolve it, counted from submission.
var ResolutionWindows = map[string]time.Duration{
	"water":       48 * time.Hour,
	"electricity": 48 * time.Hour,
	"health":      72 * time.Hour,
	"roads":       168 * time.Hour,
	"sanitation":  168 * time.Hour,
}
