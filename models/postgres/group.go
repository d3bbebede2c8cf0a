package postgres

import (
	"time"

	"gorm.io/gorm"
)

const (
	GroupRoleOwner  = "owner"
	GroupRoleMember = "member"
)

/*
 * 'Group' is a household sharing expenses. Members join through invite links.
 */
type Group struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null"`
	OwnerID   string `gorm:"size:36;not null"`
	CreatedAt time.Time

	Members []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = newID()
	}
	return nil
}

type GroupMember struct {
	GroupID  string `gorm:"primaryKey;size:36"`
	UserID   string `gorm:"primaryKey;size:36;index:idx_group_members_user"`
	Role     string `gorm:"size:20;not null;default:'member'"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

/*
 * 'GroupInvite' is a shareable link token. It stays redeemable until it is
 * revoked, expires, or runs out of uses.
 */
type GroupInvite struct {
	ID        string    `gorm:"primaryKey;size:36"`
	GroupID   string    `gorm:"size:36;not null;index:idx_group_invites_group"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedBy string    `gorm:"size:36;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	MaxUses   int       `gorm:"not null;default:1"`
	Uses      int       `gorm:"not null;default:0"`
	Revoked   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time

	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// Usable reports whether the invite can still admit a new member at now.
func (i *GroupInvite) Usable(now time.Time) bool {
	return !i.Revoked && now.Before(i.ExpiresAt) && i.Uses < i.MaxUses
}

func (i *GroupInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}
