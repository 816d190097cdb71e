package grievance_test

import (
	"testing"
	"time"

	"gramalert/backend/internal/grievance"

	"github.com/stretchr/testify/assert"
)

func TestResolutionDeadline(t *testing.T) {
	submitted := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		category string
		window   time.Duration
	}{
		{"water", "water", 48 * time.Hour},
		{"electricity", "electricity", 48 * time.Hour},
		{"health", "health", 72 * time.Hour},
		{"roads", "roads", 168 * time.Hour},
		{"sanitation", "sanitation", 168 * time.Hour},
		{"unknown category falls back", "street dogs", 240 * time.Hour},
		{"empty category falls back", "", 240 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grievance.ResolutionDeadline(tt.category, submitted)
			assert.Equal(t, submitted.Add(tt.window), got)
		})
	}
}

// TestResolutionDeadline_CaseInsensitive verifies that category matching
// ignores case, so "Water" and "WATER" get the water window rather than the
// fallback.
func TestResolutionDeadline_CaseInsensitive(t *testing.T) {
	submitted := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	for _, category := range []string{"Water", "WATER", "wAtEr"} {
		got := grievance.ResolutionDeadline(category, submitted)
		assert.Equal(t, submitted.Add(48*time.Hour), got, "category %q", category)
	}

	assert.Equal(t,
		submitted.Add(168*time.Hour),
		grievance.ResolutionDeadline("Sanitation", submitted))
}

func TestResolutionDeadline_IsPure(t *testing.T) {
	submitted := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	first := grievance.ResolutionDeadline("health", submitted)
	second := grievance.ResolutionDeadline("health", submitted)

	assert.Equal(t, first, second)
}
