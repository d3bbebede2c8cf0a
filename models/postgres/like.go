package postgres

import (
	"time"

	"gorm.io/gorm"
)

/*
 * 'Like' is one directed swipe. Swiping the same person again updates Liked
 * in place, so (LikerID, LikedID) is unique.
 */
type Like struct {
	ID        string `gorm:"primaryKey;size:36"`
	LikerID   string `gorm:"size:36;not null;uniqueIndex:idx_likes_pair,priority:1"`
	LikedID   string `gorm:"size:36;not null;uniqueIndex:idx_likes_pair,priority:2;index:idx_likes_liked"`
	Liked     bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = newID()
	}
	return nil
}
