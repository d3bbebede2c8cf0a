// Package memory implements store.Store in process memory. It backs
// STORE_DRIVER=memory for local runs and the service and controller tests.
// A single mutex serialises writes, which gives every compound operation the
// same atomicity the postgres implementation gets from transactions.
package memory

import (
	"sync"
	"time"

	models "Roomio/models/postgres"
	"Roomio/store"

	"github.com/google/uuid"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users        map[string]*models.User
	emails       map[string]string
	userOrder    []string
	requests     map[string]*models.FriendRequest
	requestOrder []string
	friendships  map[string]*models.Friendship
	likes        map[string]*models.Like

	chats        map[string]*models.Chat
	chatPairs    map[string]string
	chatOrder    []string
	messages     map[string]*models.Message
	chatMessages map[string][]string
	pins         map[string][]*models.PinnedMessage

	groups       map[string]*models.Group
	groupOrder   []string
	members      map[string]map[string]*models.GroupMember
	invites      map[string]*models.GroupInvite
	inviteTokens map[string]string
	expenses     map[string][]*models.Expense

	items     map[string]*models.MarketplaceItem
	itemOrder []string
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:          time.Now,
		users:        make(map[string]*models.User),
		emails:       make(map[string]string),
		requests:     make(map[string]*models.FriendRequest),
		friendships:  make(map[string]*models.Friendship),
		likes:        make(map[string]*models.Like),
		chats:        make(map[string]*models.Chat),
		chatPairs:    make(map[string]string),
		messages:     make(map[string]*models.Message),
		chatMessages: make(map[string][]string),
		pins:         make(map[string][]*models.PinnedMessage),
		groups:       make(map[string]*models.Group),
		members:      make(map[string]map[string]*models.GroupMember),
		invites:      make(map[string]*models.GroupInvite),
		inviteTokens: make(map[string]string),
		expenses:     make(map[string][]*models.Expense),
		items:        make(map[string]*models.MarketplaceItem),
	}
}

// SetClock replaces the time source used for CreatedAt stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func pairKey(a, b string) string {
	low, high := models.CanonicalPair(a, b)
	return low + "|" + high
}

func likeKey(liker, liked string) string {
	return liker + ">" + liked
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
