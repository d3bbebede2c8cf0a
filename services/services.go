// Package services holds Roomio's use cases. Handlers and socket events call
// into these; persistence goes through store.Store and realtime fan-out
// through a Notifier.
package services

import (
	"context"
	"errors"
	"time"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"
	"Roomio/store"

	"golang.org/x/crypto/bcrypt"
)

// Socket events emitted to clients.
const (
	EventNewMessage            = "new_message"
	EventMatch                 = "match"
	EventFriendRequest         = "friend_request"
	EventFriendRequestAccepted = "friend_request_accepted"
	EventTyping                = "typing"
)

func UserRoom(userID string) string { return "user:" + userID }
func ChatRoom(chatID string) string { return "chat:" + chatID }

// Notifier pushes an event to every socket joined to room.
type Notifier interface {
	Emit(room, event string, payload interface{})
}

type NopNotifier struct{}

func (NopNotifier) Emit(string, string, interface{}) {}

// CandidateCache keeps a user's swipe deck between requests.
type CandidateCache interface {
	CacheCandidates(ctx context.Context, userID string, ids []string) error
	GetCachedCandidates(ctx context.Context, userID string) ([]string, bool, error)
	InvalidateCandidates(ctx context.Context, userID string) error
}

type Options struct {
	Notifier   Notifier
	Cache      CandidateCache
	Now        func() time.Time
	BcryptCost int
}

type Services struct {
	Users       *UserService
	Friends     *FriendService
	Matches     *MatchService
	Chats       *ChatService
	Groups      *GroupService
	Expenses    *ExpenseService
	Marketplace *MarketplaceService
}

func New(st store.Store, opts Options) *Services {
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	groups := &GroupService{store: st, now: opts.Now}
	return &Services{
		Users:       &UserService{store: st, cache: opts.Cache, cost: opts.BcryptCost},
		Friends:     &FriendService{store: st, notifier: opts.Notifier},
		Matches:     &MatchService{store: st, notifier: opts.Notifier, cache: opts.Cache},
		Chats:       &ChatService{store: st, notifier: opts.Notifier},
		Groups:      groups,
		Expenses:    &ExpenseService{store: st, groups: groups},
		Marketplace: &MarketplaceService{store: st},
	}
}

// internal logs the cause and hides it behind a generic message.
func internal(err error, op string) error {
	logger.Error("Store operation failed", "op", op, "error", err)
	return apperror.Internal(err, "Internal server error")
}

// notFoundOr maps store.ErrNotFound to a 404 carrying msg and anything else to a 500.
func notFoundOr(err error, msg, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return internal(err, op)
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// usersByID loads the given users keyed by id. Missing ids are skipped.
func usersByID(ctx context.Context, st store.UserStore, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := st.GetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
