package postgres

import (
	"context"
	"time"

	models "Roomio/models/postgres"

	"gorm.io/gorm/clause"
)

func (s *Store) RecordLike(ctx context.Context, like *models.Like) error {
	like.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "liker_id"}, {Name: "liked_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
	}).Create(like).Error
	return translate(err)
}

func (s *Store) HasLike(ctx context.Context, likerID, likedID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("liker_id = ? AND liked_id = ? AND liked = ?", likerID, likedID, true).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *Store) ListMutualLikes(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Table("likes AS mine").
		Joins("JOIN likes AS theirs ON theirs.liker_id = mine.liked_id AND theirs.liked_id = mine.liker_id").
		Where("mine.liker_id = ? AND mine.liked = ? AND theirs.liked = ?", userID, true, true).
		Order("mine.liked_id").
		Pluck("mine.liked_id", &ids).Error
	return ids, translate(err)
}
