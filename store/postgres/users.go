package postgres

import (
	"context"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUsers(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, translate(err)
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
		Select("full_name", "avatar_url", "user_type", "bio", "city", "budget_cents", "preferences", "updated_at").
		Updates(user)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListCandidates(ctx context.Context, userID, userType string, limit int) ([]models.User, error) {
	swiped := s.db.Model(&models.Like{}).Select("liked_id").Where("liker_id = ?", userID)

	q := s.db.WithContext(ctx).
		Where("user_type = ? AND id <> ?", userType, userID).
		Where("id NOT IN (?)", swiped).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var users []models.User
	err := q.Find(&users).Error
	return users, translate(err)
}
