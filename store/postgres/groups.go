package postgres

import (
	"context"
	"time"

	models "Roomio/models/postgres"
	"Roomio/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateGroup inserts the group and its Members association in one transaction.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	return translate(s.db.WithContext(ctx).Create(group).Error)
}

func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var g models.Group
	if err := s.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (s *Store) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at ASC").
		Find(&groups).Error
	return groups, translate(err)
}

func (s *Store) GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	var m models.GroupMember
	err := s.db.WithContext(ctx).Where("group_id = ? AND user_id = ?", groupID, userID).First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *Store) ListMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := s.db.WithContext(ctx).Where("group_id = ?", groupID).
		Order("joined_at ASC, user_id ASC").Find(&members).Error
	return members, translate(err)
}

func (s *Store) RemoveMember(ctx context.Context, groupID, userID string) error {
	res := s.db.WithContext(ctx).Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateInvite(ctx context.Context, invite *models.GroupInvite) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(invite).Error)
}

func (s *Store) GetInvite(ctx context.Context, id string) (*models.GroupInvite, error) {
	var inv models.GroupInvite
	if err := s.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (s *Store) ListActiveInvites(ctx context.Context, groupID string, now time.Time) ([]models.GroupInvite, error) {
	var invites []models.GroupInvite
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND revoked = ? AND expires_at > ? AND uses < max_uses", groupID, false, now).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, translate(err)
}

func (s *Store) RevokeInvite(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.GroupInvite{}).Where("id = ?", id).Update("revoked", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// RedeemInvite locks the invite row so concurrent redemptions cannot exceed MaxUses.
func (s *Store) RedeemInvite(ctx context.Context, token, userID string, now time.Time) (*models.GroupInvite, bool, error) {
	var inv models.GroupInvite
	alreadyMember := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).First(&inv).Error; err != nil {
			return err
		}
		if inv.Revoked || !now.Before(inv.ExpiresAt) {
			return store.ErrNotFound
		}

		var count int64
		if err := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ?", inv.GroupID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			alreadyMember = true
			return nil
		}
		if inv.Uses >= inv.MaxUses {
			return store.ErrNotFound
		}

		member := models.GroupMember{
			GroupID:  inv.GroupID,
			UserID:   userID,
			Role:     models.GroupRoleMember,
			JoinedAt: time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
			return err
		}
		inv.Uses++
		return tx.Model(&models.GroupInvite{}).Where("id = ?", inv.ID).Update("uses", inv.Uses).Error
	})
	if err != nil {
		return nil, false, translate(err)
	}
	return &inv, alreadyMember, nil
}
