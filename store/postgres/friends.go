package postgres

import (
	"context"
	"time"

	models "Roomio/models/postgres"
	"Roomio/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateFriendRequest(ctx context.Context, req *models.FriendRequest) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error)
}

func (s *Store) GetFriendRequest(ctx context.Context, id string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := s.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *Store) FindOpenFriendRequest(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	low, high := models.CanonicalPair(a, b)
	var req models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("pair_low = ? AND pair_high = ? AND status = ?", low, high, models.FriendRequestPending).
		First(&req).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *Store) ListPendingFriendRequests(ctx context.Context, userID string) (sent, received []models.FriendRequest, err error) {
	db := s.db.WithContext(ctx)
	if err = db.Where("sender_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").Find(&sent).Error; err != nil {
		return nil, nil, translate(err)
	}
	if err = db.Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").Find(&received).Error; err != nil {
		return nil, nil, translate(err)
	}
	return sent, received, nil
}

// AcceptFriendRequest flips the request with a guarded UPDATE and inserts the
// friendship in the same transaction. A concurrent accept of the mirror
// request hits ON CONFLICT and reads back the existing friendship.
func (s *Store) AcceptFriendRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, *models.Friendship, error) {
	var req models.FriendRequest
	var friendship models.Friendship

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND receiver_id = ? AND status = ?", requestID, receiverID, models.FriendRequestPending).
			Updates(map[string]interface{}{"status": models.FriendRequestAccepted, "responded_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			return err
		}

		f := models.NewFriendship(req.SenderID, req.ReceiverID)
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(f).Error; err != nil {
			return err
		}
		return tx.Where("user_low = ? AND user_high = ?", f.UserLow, f.UserHigh).First(&friendship).Error
	})
	if err != nil {
		return nil, nil, translate(err)
	}
	return &req, &friendship, nil
}

func (s *Store) DeclineFriendRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND receiver_id = ? AND status = ?", requestID, receiverID, models.FriendRequestPending).
			Updates(map[string]interface{}{"status": models.FriendRequestDeclined, "responded_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return tx.First(&req, "id = ?", requestID).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *Store) DeletePendingFriendRequest(ctx context.Context, requestID, senderID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND sender_id = ? AND status = ?", requestID, senderID, models.FriendRequestPending).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) GetFriendship(ctx context.Context, a, b string) (*models.Friendship, error) {
	low, high := models.CanonicalPair(a, b)
	var f models.Friendship
	if err := s.db.WithContext(ctx).Where("user_low = ? AND user_high = ?", low, high).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *Store) ListFriendships(ctx context.Context, userID string) ([]models.Friendship, error) {
	var out []models.Friendship
	err := s.db.WithContext(ctx).
		Where("user_low = ? OR user_high = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, translate(err)
}
