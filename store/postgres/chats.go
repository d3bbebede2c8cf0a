package postgres

import (
	"context"
	"time"

	models "Roomio/models/postgres"
	"Roomio/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateChat relies on idx_chats_pair: the loser of a concurrent insert
// gets zero rows affected and reads the winner's chat.
func (s *Store) GetOrCreateChat(ctx context.Context, a, b string) (*models.Chat, bool, error) {
	chat := models.NewChat(a, b)
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(chat)
	if res.Error != nil {
		return nil, false, translate(res.Error)
	}
	if res.RowsAffected == 1 {
		return chat, true, nil
	}

	existing, err := s.FindChat(ctx, a, b)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *Store) GetChat(ctx context.Context, id string) (*models.Chat, error) {
	var chat models.Chat
	if err := s.db.WithContext(ctx).First(&chat, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &chat, nil
}

func (s *Store) FindChat(ctx context.Context, a, b string) (*models.Chat, error) {
	low, high := models.CanonicalPair(a, b)
	var chat models.Chat
	err := s.db.WithContext(ctx).
		Where("participant_low = ? AND participant_high = ?", low, high).
		First(&chat).Error
	if err != nil {
		return nil, translate(err)
	}
	return &chat, nil
}

func (s *Store) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.db.WithContext(ctx).
		Where("participant_low = ? OR participant_high = ?", userID, userID).
		Order("created_at DESC").
		Find(&chats).Error
	return chats, translate(err)
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(msg).Error)
}

func (s *Store) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	if err := s.db.WithContext(ctx).First(&msg, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (s *Store) ListMessages(ctx context.Context, chatID string, before time.Time, limit int) ([]models.Message, error) {
	q := s.db.WithContext(ctx).Where("chat_id = ?", chatID)
	if !before.IsZero() {
		q = q.Where("created_at < ?", before)
	}
	q = q.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var msgs []models.Message
	if err := q.Find(&msgs).Error; err != nil {
		return nil, translate(err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *Store) LastMessage(ctx context.Context, chatID string) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").First(&msg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (s *Store) PinMessage(ctx context.Context, pin *models.PinnedMessage) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(pin)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}
		return tx.Where("chat_id = ? AND message_id = ?", pin.ChatID, pin.MessageID).First(pin).Error
	}))
}

func (s *Store) UnpinMessage(ctx context.Context, chatID, messageID string) error {
	res := s.db.WithContext(ctx).
		Where("chat_id = ? AND message_id = ?", chatID, messageID).
		Delete(&models.PinnedMessage{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListPins(ctx context.Context, chatID string) ([]models.PinnedMessage, error) {
	var pins []models.PinnedMessage
	err := s.db.WithContext(ctx).Where("chat_id = ?", chatID).Order("created_at ASC").Find(&pins).Error
	return pins, translate(err)
}
