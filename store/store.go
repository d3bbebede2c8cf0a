// Package store is the persistence boundary. Services depend on these
// interfaces; the postgres package implements them with gorm and the memory
// package with mutex-guarded maps for local runs and tests.
//
// Check-then-write sequences that must hold under concurrent requests
// (friendship on accept, chat on mutual match, invite redemption) are single
// store calls so each implementation can make them atomic.
package store

import (
	"context"
	"errors"
	"time"

	models "Roomio/models/postgres"
)

var (
	// ErrNotFound is returned when no row matches, including guarded updates
	// whose precondition no longer holds.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("store: conflict")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context, ids []string) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// ListCandidates returns users with the given type, excluding userID and
	// everyone userID has already swiped on, oldest accounts first.
	ListCandidates(ctx context.Context, userID, userType string, limit int) ([]models.User, error)
}

type FriendStore interface {
	// CreateFriendRequest returns ErrConflict when an open request already
	// exists for the unordered pair.
	CreateFriendRequest(ctx context.Context, req *models.FriendRequest) error
	GetFriendRequest(ctx context.Context, id string) (*models.FriendRequest, error)
	// FindOpenFriendRequest looks for a pending request in either direction.
	FindOpenFriendRequest(ctx context.Context, a, b string) (*models.FriendRequest, error)
	ListPendingFriendRequests(ctx context.Context, userID string) (sent, received []models.FriendRequest, err error)
	// AcceptFriendRequest atomically moves a pending request addressed to
	// receiverID to accepted and makes sure the friendship row exists.
	AcceptFriendRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, *models.Friendship, error)
	DeclineFriendRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, error)
	// DeletePendingFriendRequest removes a pending request sent by senderID.
	DeletePendingFriendRequest(ctx context.Context, requestID, senderID string) error
	GetFriendship(ctx context.Context, a, b string) (*models.Friendship, error)
	ListFriendships(ctx context.Context, userID string) ([]models.Friendship, error)
}

type MatchStore interface {
	// RecordLike inserts the swipe or updates Liked when the pair was swiped before.
	RecordLike(ctx context.Context, like *models.Like) error
	// HasLike reports whether likerID liked likedID (Liked = true).
	HasLike(ctx context.Context, likerID, likedID string) (bool, error)
	// ListMutualLikes returns the ids of users who liked userID and were liked back.
	ListMutualLikes(ctx context.Context, userID string) ([]string, error)
}

type ChatStore interface {
	// GetOrCreateChat returns the chat for the unordered pair, creating it when
	// missing. created is false when the chat already existed.
	GetOrCreateChat(ctx context.Context, a, b string) (chat *models.Chat, created bool, err error)
	GetChat(ctx context.Context, id string) (*models.Chat, error)
	FindChat(ctx context.Context, a, b string) (*models.Chat, error)
	ListChats(ctx context.Context, userID string) ([]models.Chat, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessage(ctx context.Context, id string) (*models.Message, error)
	// ListMessages returns up to limit messages older than before, oldest first.
	ListMessages(ctx context.Context, chatID string, before time.Time, limit int) ([]models.Message, error)
	LastMessage(ctx context.Context, chatID string) (*models.Message, error)
	// PinMessage is idempotent; pinning an already pinned message is not an error.
	PinMessage(ctx context.Context, pin *models.PinnedMessage) error
	UnpinMessage(ctx context.Context, chatID, messageID string) error
	ListPins(ctx context.Context, chatID string) ([]models.PinnedMessage, error)
}

type GroupStore interface {
	// CreateGroup stores the group and its owner membership together.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroups(ctx context.Context, userID string) ([]models.Group, error)
	GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error)
	ListMembers(ctx context.Context, groupID string) ([]models.GroupMember, error)
	RemoveMember(ctx context.Context, groupID, userID string) error
	CreateInvite(ctx context.Context, invite *models.GroupInvite) error
	GetInvite(ctx context.Context, id string) (*models.GroupInvite, error)
	ListActiveInvites(ctx context.Context, groupID string, now time.Time) ([]models.GroupInvite, error)
	RevokeInvite(ctx context.Context, id string) error
	// RedeemInvite admits userID through the invite token. Existing members get
	// alreadyMember = true and consume no use. Unknown, revoked, expired or
	// exhausted tokens return ErrNotFound.
	RedeemInvite(ctx context.Context, token, userID string, now time.Time) (invite *models.GroupInvite, alreadyMember bool, err error)
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	// ListExpenses returns the group's expenses newest first, shares included.
	ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error)
}

type ItemFilter struct {
	Category string
	Status   string
	SellerID string
	Query    string
	Limit    int
	Offset   int
}

type MarketplaceStore interface {
	CreateItem(ctx context.Context, item *models.MarketplaceItem) error
	GetItem(ctx context.Context, id string) (*models.MarketplaceItem, error)
	UpdateItem(ctx context.Context, item *models.MarketplaceItem) error
	DeleteItem(ctx context.Context, id string) error
	// ListItems returns matching items newest first.
	ListItems(ctx context.Context, filter ItemFilter) ([]models.MarketplaceItem, error)
}

type Store interface {
	UserStore
	FriendStore
	MatchStore
	ChatStore
	GroupStore
	ExpenseStore
	MarketplaceStore
}
