package services

import (
	"context"
	"strings"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"
	"Roomio/store"
)

// candidateDeckSize is how many candidates are fetched and cached per user.
const candidateDeckSize = 100

type MatchService struct {
	store    store.Store
	notifier Notifier
	cache    CandidateCache
}

type SwipeResult struct {
	Liked bool      `json:"liked"`
	Match bool      `json:"match"`
	Chat  *ChatView `json:"chat,omitempty"`
}

// MatchEvent is pushed to both users when their likes become mutual.
type MatchEvent struct {
	ChatID string      `json:"chatId"`
	User   UserSummary `json:"user"`
}

// Swipe records userID's decision on targetID. A like that completes a
// mutual pair opens (or reuses) the pair's chat.
func (s *MatchService) Swipe(ctx context.Context, userID, targetID string, liked bool) (*SwipeResult, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return nil, apperror.Validation("targetId is required")
	}
	if targetID == userID {
		return nil, apperror.Validation("Cannot swipe on yourself")
	}
	target, err := s.store.GetUser(ctx, targetID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "get swipe target")
	}

	if err := s.store.RecordLike(ctx, &models.Like{LikerID: userID, LikedID: targetID, Liked: liked}); err != nil {
		return nil, internal(err, "record like")
	}
	s.invalidate(ctx, userID)

	result := &SwipeResult{Liked: liked}
	if !liked {
		return result, nil
	}

	mutual, err := s.store.HasLike(ctx, targetID, userID)
	if err != nil {
		return nil, internal(err, "check reverse like")
	}
	if !mutual {
		return result, nil
	}

	chat, created, err := s.store.GetOrCreateChat(ctx, userID, targetID)
	if err != nil {
		return nil, internal(err, "get or create chat")
	}
	result.Match = true
	result.Chat = &ChatView{ID: chat.ID, CreatedAt: chat.CreatedAt, Participant: summaryOf(target)}

	if created {
		logger.Info("Mutual match", "chat_id", chat.ID, "user_a", userID, "user_b", targetID)
		s.notifier.Emit(UserRoom(userID), EventMatch, MatchEvent{ChatID: chat.ID, User: summaryOf(target)})
		if me, err := s.store.GetUser(ctx, userID); err == nil {
			s.notifier.Emit(UserRoom(targetID), EventMatch, MatchEvent{ChatID: chat.ID, User: summaryOf(me)})
		}
	}
	return result, nil
}

// Candidates returns users in the caller's userType bucket they have not swiped yet.
func (s *MatchService) Candidates(ctx context.Context, userID string, limit int) ([]UserView, error) {
	limit = clampLimit(limit, 20, candidateDeckSize)

	me, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "get user")
	}

	ids, ok := s.cached(ctx, userID)
	if !ok {
		users, err := s.store.ListCandidates(ctx, userID, me.UserType, candidateDeckSize)
		if err != nil {
			return nil, internal(err, "list candidates")
		}
		ids = make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		if s.cache != nil {
			if err := s.cache.CacheCandidates(ctx, userID, ids); err != nil {
				logger.Warn("Failed to cache candidates", "user_id", userID, "error", err)
			}
		}
	}

	if len(ids) > limit {
		ids = ids[:limit]
	}
	users, err := usersByID(ctx, s.store, ids)
	if err != nil {
		return nil, internal(err, "load candidates")
	}
	out := make([]UserView, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			out = append(out, userViewOf(&u))
		}
	}
	return out, nil
}

// Matches lists users with a mutual like, along with the chat they share.
func (s *MatchService) Matches(ctx context.Context, userID string) ([]MatchView, error) {
	ids, err := s.store.ListMutualLikes(ctx, userID)
	if err != nil {
		return nil, internal(err, "list mutual likes")
	}
	users, err := usersByID(ctx, s.store, ids)
	if err != nil {
		return nil, internal(err, "load matches")
	}

	out := make([]MatchView, 0, len(ids))
	for _, id := range ids {
		u, ok := users[id]
		if !ok {
			continue
		}
		view := MatchView{User: userViewOf(&u)}
		if chat, err := s.store.FindChat(ctx, userID, id); err == nil {
			view.ChatID = chat.ID
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *MatchService) cached(ctx context.Context, userID string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	ids, ok, err := s.cache.GetCachedCandidates(ctx, userID)
	if err != nil {
		logger.Warn("Candidate cache read failed", "user_id", userID, "error", err)
		return nil, false
	}
	return ids, ok
}

func (s *MatchService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCandidates(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate candidate cache", "user_id", userID, "error", err)
	}
}
