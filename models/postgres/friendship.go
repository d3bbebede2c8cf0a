package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

/*
 * 'Friendship' represents an undirected friendship between two users, stored
 * once in canonical (low, high) order.
 */
type Friendship struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserLow   string `gorm:"size:36;not null;uniqueIndex:idx_friendships_pair"`
	UserHigh  string `gorm:"size:36;not null;uniqueIndex:idx_friendships_pair;index:idx_friendships_user_high"`
	CreatedAt time.Time

	// Relationships
	Low  User `gorm:"foreignKey:UserLow;constraint:OnDelete:CASCADE"`
	High User `gorm:"foreignKey:UserHigh;constraint:OnDelete:CASCADE"`
}

func NewFriendship(a, b string) *Friendship {
	low, high := CanonicalPair(a, b)
	return &Friendship{UserLow: low, UserHigh: high}
}

// Other returns the friend of userID in this friendship.
func (f *Friendship) Other(userID string) string {
	if f.UserLow == userID {
		return f.UserHigh
	}
	return f.UserLow
}

// GORM hook to keep the pair canonical and reject self friendships
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.UserLow == f.UserHigh {
		return errors.New("cannot create a friendship between the same user")
	}
	f.UserLow, f.UserHigh = CanonicalPair(f.UserLow, f.UserHigh)
	return nil
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = newID()
	}
	return nil
}
