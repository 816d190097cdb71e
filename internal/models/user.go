package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered resident or administrator. The grievance core only
// reads users to resolve owner IDs and display names; everything else about
// them belongs to the auth glue.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `json:"email"`
	// Password holds the bcrypt hash, never the plain text.
	Password string `json:"-"`
	Role     string `json:"role"` // "VILLAGER" or "ADMIN"
}

// BeforeCreate is a GORM hook that assigns a UUID when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
