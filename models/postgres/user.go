package postgres

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	UserTypeLookingForRoom = "looking_for_room"
	UserTypeHasRoom        = "has_room"
	UserTypeLookingForMate = "looking_for_roommate"
)

// ValidUserType reports whether t is one of the matching buckets.
func ValidUserType(t string) bool {
	switch t {
	case UserTypeLookingForRoom, UserTypeHasRoom, UserTypeLookingForMate:
		return true
	}
	return false
}

/*
 * 'User' is a Roomio account together with its public profile. Matching
 * candidates are users sharing the same UserType.
 */
type User struct {
	ID           string         `gorm:"primaryKey;size:36"`
	Email        string         `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string         `gorm:"size:255;not null"`
	FullName     string         `gorm:"size:100"`
	AvatarURL    string         `gorm:"size:500"`
	UserType     string         `gorm:"size:30;not null;index:idx_users_user_type"`
	Bio          string         `gorm:"size:1000"`
	City         string         `gorm:"size:100"`
	BudgetCents  int64          `gorm:"default:0"`
	Preferences  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}
