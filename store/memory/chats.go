package memory

import (
	"context"
	"time"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) GetOrCreateChat(ctx context.Context, a, b string) (*models.Chat, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(a, b)
	if id, ok := s.chatPairs[key]; ok {
		out := *s.chats[id]
		return &out, false, nil
	}

	chat := models.NewChat(a, b)
	ensureID(&chat.ID)
	chat.CreatedAt = s.now()
	s.chats[chat.ID] = chat
	s.chatPairs[key] = chat.ID
	s.chatOrder = append(s.chatOrder, chat.ID)

	out := *chat
	return &out, true, nil
}

func (s *Store) GetChat(ctx context.Context, id string) (*models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *Store) FindChat(ctx context.Context, a, b string) (*models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.chatPairs[pairKey(a, b)]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *s.chats[id]
	return &out, nil
}

func (s *Store) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Chat
	for i := len(s.chatOrder) - 1; i >= 0; i-- {
		c := s.chats[s.chatOrder[i]]
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[msg.ChatID]; !ok {
		return store.ErrNotFound
	}
	ensureID(&msg.ID)
	msg.CreatedAt = s.now()
	stored := *msg
	s.messages[msg.ID] = &stored
	s.chatMessages[msg.ChatID] = append(s.chatMessages[msg.ChatID], msg.ID)
	return nil
}

func (s *Store) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (s *Store) ListMessages(ctx context.Context, chatID string, before time.Time, limit int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.chatMessages[chatID]
	var newestFirst []models.Message
	for i := len(ids) - 1; i >= 0; i-- {
		m := s.messages[ids[i]]
		if !before.IsZero() && !m.CreatedAt.Before(before) {
			continue
		}
		newestFirst = append(newestFirst, *m)
		if limit > 0 && len(newestFirst) == limit {
			break
		}
	}

	out := make([]models.Message, len(newestFirst))
	for i, m := range newestFirst {
		out[len(newestFirst)-1-i] = m
	}
	return out, nil
}

func (s *Store) LastMessage(ctx context.Context, chatID string) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.chatMessages[chatID]
	if len(ids) == 0 {
		return nil, store.ErrNotFound
	}
	out := *s.messages[ids[len(ids)-1]]
	return &out, nil
}

func (s *Store) PinMessage(ctx context.Context, pin *models.PinnedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.pins[pin.ChatID] {
		if existing.MessageID == pin.MessageID {
			*pin = *existing
			return nil
		}
	}
	ensureID(&pin.ID)
	pin.CreatedAt = s.now()
	stored := *pin
	s.pins[pin.ChatID] = append(s.pins[pin.ChatID], &stored)
	return nil
}

func (s *Store) UnpinMessage(ctx context.Context, chatID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pins := s.pins[chatID]
	for i, p := range pins {
		if p.MessageID == messageID {
			s.pins[chatID] = append(pins[:i], pins[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListPins(ctx context.Context, chatID string) ([]models.PinnedMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PinnedMessage, 0, len(s.pins[chatID]))
	for _, p := range s.pins[chatID] {
		out = append(out, *p)
	}
	return out, nil
}
