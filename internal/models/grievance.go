package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Grievance is a filed civic complaint tracked through a resolution workflow.
// The deadline is fixed at submission from the category and is never
// recomputed, even if the category is edited later.
type Grievance struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:text;not null"`
	Description string `gorm:"type:text;not null"`
	Category    string `gorm:"type:text;not null"`

	// Status is an open string set: "Received" initially, "Resolved" terminal,
	// anything non-empty in between is accepted as-is.
	Status   string `gorm:"type:text;not null"`
	Priority string `gorm:"type:text;not null"`

	// OwnerID is the submitting user's ID. Set once, never reassigned.
	OwnerID string `gorm:"type:text;not null;index"`

	Latitude  *float64
	Longitude *float64

	// FileURL is an opaque reference handed out by the file-storage layer.
	FileURL string `gorm:"type:text"`

	Deadline *time.Time

	// IsOverdue flips to true once the deadline passes unresolved and is
	// never cleared afterwards.
	IsOverdue       bool `gorm:"default:false"`
	ReportCount     int  `gorm:"default:1"`
	EscalationLevel int  `gorm:"default:0"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// BeforeCreate is a GORM hook that assigns a UUID when none is set.
func (g *Grievance) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return
}
