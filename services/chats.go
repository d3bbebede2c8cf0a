package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/store"
	"Roomio/utils"
)

const maxMessageLength = 2000

type ChatService struct {
	store    store.Store
	notifier Notifier
}

type PinInput struct {
	ChatID    string
	MessageID string
	UserID    string
}

func (s *ChatService) ListChats(ctx context.Context, userID string) ([]ChatView, error) {
	chats, err := s.store.ListChats(ctx, userID)
	if err != nil {
		return nil, internal(err, "list chats")
	}

	ids := make([]string, 0, len(chats))
	for i := range chats {
		ids = append(ids, chats[i].Other(userID))
	}
	users, err := usersByID(ctx, s.store, ids)
	if err != nil {
		return nil, internal(err, "load chat participants")
	}

	out := make([]ChatView, 0, len(chats))
	for i := range chats {
		c := &chats[i]
		other := users[c.Other(userID)]
		view := ChatView{ID: c.ID, CreatedAt: c.CreatedAt, Participant: summaryOf(&other)}
		view.Participant.ID = c.Other(userID)

		last, err := s.store.LastMessage(ctx, c.ID)
		switch {
		case err == nil:
			mv := messageViewOf(last)
			view.LastMessage = &mv
		case !errors.Is(err, store.ErrNotFound):
			return nil, internal(err, "last message")
		}
		out = append(out, view)
	}
	return out, nil
}

// ChatIDs lists the chats userID takes part in, used to join socket rooms.
func (s *ChatService) ChatIDs(ctx context.Context, userID string) ([]string, error) {
	chats, err := s.store.ListChats(ctx, userID)
	if err != nil {
		return nil, internal(err, "list chats")
	}
	ids := make([]string, 0, len(chats))
	for _, c := range chats {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// Authorize returns the chat when userID is one of its participants.
func (s *ChatService) Authorize(ctx context.Context, userID, chatID string) (*models.Chat, error) {
	if strings.TrimSpace(chatID) == "" {
		return nil, apperror.Validation("chatId is required")
	}
	chat, err := s.store.GetChat(ctx, chatID)
	if err != nil {
		return nil, notFoundOr(err, "Chat not found", "get chat")
	}
	if !chat.HasParticipant(userID) {
		return nil, apperror.Forbidden("You are not a participant in this chat")
	}
	return chat, nil
}

// Messages pages backwards from before (zero means latest) and returns the
// page oldest first.
func (s *ChatService) Messages(ctx context.Context, userID, chatID string, limit int, before time.Time) ([]MessageView, error) {
	if _, err := s.Authorize(ctx, userID, chatID); err != nil {
		return nil, err
	}
	msgs, err := s.store.ListMessages(ctx, chatID, before, clampLimit(limit, 50, 100))
	if err != nil {
		return nil, internal(err, "list messages")
	}
	out := make([]MessageView, 0, len(msgs))
	for i := range msgs {
		out = append(out, messageViewOf(&msgs[i]))
	}
	return out, nil
}

func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, content string) (*MessageView, error) {
	if _, err := s.Authorize(ctx, userID, chatID); err != nil {
		return nil, err
	}

	content = utils.SanitizeText(content)
	if content == "" {
		return nil, apperror.Validation("Message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, apperror.Validation("Message must be at most 2000 characters")
	}

	msg := &models.Message{ChatID: chatID, SenderID: userID, Content: content}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, notFoundOr(err, "Chat not found", "create message")
	}

	view := messageViewOf(msg)
	s.notifier.Emit(ChatRoom(chatID), EventNewMessage, view)
	return &view, nil
}

// OpenChat returns the chat with otherID, creating it when the two users are
// friends or a mutual match.
func (s *ChatService) OpenChat(ctx context.Context, userID, otherID string) (*ChatView, error) {
	otherID = strings.TrimSpace(otherID)
	if otherID == "" {
		return nil, apperror.Validation("userId is required")
	}
	if otherID == userID {
		return nil, apperror.Validation("Cannot open a chat with yourself")
	}
	other, err := s.store.GetUser(ctx, otherID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "get chat counterpart")
	}

	allowed, err := s.connected(ctx, userID, otherID)
	if err != nil {
		return nil, internal(err, "check chat eligibility")
	}
	if !allowed {
		return nil, apperror.Forbidden("You can only chat with friends or matches")
	}

	chat, _, err := s.store.GetOrCreateChat(ctx, userID, otherID)
	if err != nil {
		return nil, internal(err, "get or create chat")
	}
	return &ChatView{ID: chat.ID, CreatedAt: chat.CreatedAt, Participant: summaryOf(other)}, nil
}

func (s *ChatService) connected(ctx context.Context, a, b string) (bool, error) {
	if _, err := s.store.GetFriendship(ctx, a, b); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	ab, err := s.store.HasLike(ctx, a, b)
	if err != nil || !ab {
		return false, err
	}
	return s.store.HasLike(ctx, b, a)
}

func (s *ChatService) authorizePin(ctx context.Context, userID string, in PinInput) error {
	if strings.TrimSpace(in.ChatID) == "" || strings.TrimSpace(in.MessageID) == "" {
		return apperror.Validation("chatId and messageId are required")
	}
	if in.UserID != "" && in.UserID != userID {
		return apperror.Forbidden("userId does not match the authenticated user")
	}
	if _, err := s.Authorize(ctx, userID, in.ChatID); err != nil {
		return err
	}
	msg, err := s.store.GetMessage(ctx, in.MessageID)
	if err != nil {
		return notFoundOr(err, "Message not found", "get message")
	}
	if msg.ChatID != in.ChatID {
		return apperror.NotFound("Message not found")
	}
	return nil
}

// Pin is idempotent: pinning a pinned message succeeds without a new row.
func (s *ChatService) Pin(ctx context.Context, userID string, in PinInput) error {
	if err := s.authorizePin(ctx, userID, in); err != nil {
		return err
	}
	pin := &models.PinnedMessage{ChatID: in.ChatID, MessageID: in.MessageID, PinnedBy: userID}
	if err := s.store.PinMessage(ctx, pin); err != nil {
		return internal(err, "pin message")
	}
	return nil
}

func (s *ChatService) Unpin(ctx context.Context, userID string, in PinInput) error {
	if err := s.authorizePin(ctx, userID, in); err != nil {
		return err
	}
	if err := s.store.UnpinMessage(ctx, in.ChatID, in.MessageID); err != nil {
		return notFoundOr(err, "Message is not pinned", "unpin message")
	}
	return nil
}

func (s *ChatService) ListPins(ctx context.Context, userID, chatID string) ([]PinView, error) {
	if _, err := s.Authorize(ctx, userID, chatID); err != nil {
		return nil, err
	}
	pins, err := s.store.ListPins(ctx, chatID)
	if err != nil {
		return nil, internal(err, "list pins")
	}

	out := make([]PinView, 0, len(pins))
	for _, p := range pins {
		msg, err := s.store.GetMessage(ctx, p.MessageID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, internal(err, "get pinned message")
		}
		out = append(out, PinView{
			MessageID: p.MessageID,
			PinnedBy:  p.PinnedBy,
			PinnedAt:  p.CreatedAt,
			Message:   messageViewOf(msg),
		})
	}
	return out, nil
}
