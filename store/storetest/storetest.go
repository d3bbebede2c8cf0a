// Package storetest is a behavioural suite every store.Store implementation
// must pass. Rows are keyed by fresh uuids so the suite can run against a
// shared database.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	models "Roomio/models/postgres"
	"Roomio/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run executes the suite against stores built by newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("friend requests", func(t *testing.T) { testFriendRequests(t, newStore(t)) })
	t.Run("concurrent accept", func(t *testing.T) { testConcurrentAccept(t, newStore(t)) })
	t.Run("likes", func(t *testing.T) { testLikes(t, newStore(t)) })
	t.Run("concurrent chat creation", func(t *testing.T) { testConcurrentChat(t, newStore(t)) })
	t.Run("messages and pins", func(t *testing.T) { testMessages(t, newStore(t)) })
	t.Run("invites", func(t *testing.T) { testInvites(t, newStore(t)) })
	t.Run("expenses", func(t *testing.T) { testExpenses(t, newStore(t)) })
}

func newUser(t *testing.T, st store.Store, userType string) *models.User {
	t.Helper()
	u := &models.User{
		Email:        uuid.NewString() + "@roomio.test",
		PasswordHash: "x",
		FullName:     "Test User",
		UserType:     userType,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	require.NotEmpty(t, u.ID)
	return u
}

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()
	bucket := "bucket-" + uuid.NewString()[:8]
	a := newUser(t, st, bucket)
	b := newUser(t, st, bucket)
	c := newUser(t, st, bucket)

	dup := &models.User{Email: a.Email, PasswordHash: "x", UserType: bucket}
	assert.ErrorIs(t, st.CreateUser(ctx, dup), store.ErrConflict)

	got, err := st.GetUserByEmail(ctx, a.Email)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = st.GetUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.RecordLike(ctx, &models.Like{LikerID: a.ID, LikedID: b.ID, Liked: false}))
	candidates, err := st.ListCandidates(ctx, a.ID, bucket, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, c.ID, candidates[0].ID)

	a.City = "Zaragoza"
	require.NoError(t, st.UpdateUser(ctx, a))
	got, err = st.GetUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zaragoza", got.City)
}

func testFriendRequests(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := newUser(t, st, models.UserTypeHasRoom)
	b := newUser(t, st, models.UserTypeHasRoom)

	req := models.NewFriendRequest(a.ID, b.ID)
	require.NoError(t, st.CreateFriendRequest(ctx, req))
	assert.ErrorIs(t, st.CreateFriendRequest(ctx, models.NewFriendRequest(b.ID, a.ID)), store.ErrConflict)

	open, err := st.FindOpenFriendRequest(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, open.ID)

	// only the receiver can decline
	_, err = st.DeclineFriendRequest(ctx, req.ID, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	declined, err := st.DeclineFriendRequest(ctx, req.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestDeclined, declined.Status)

	_, _, err = st.AcceptFriendRequest(ctx, req.ID, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// a declined request frees the pair
	again := models.NewFriendRequest(a.ID, b.ID)
	require.NoError(t, st.CreateFriendRequest(ctx, again))

	sent, received, err := st.ListPendingFriendRequests(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, sent)
	require.Len(t, received, 1)

	assert.ErrorIs(t, st.DeletePendingFriendRequest(ctx, again.ID, b.ID), store.ErrNotFound)
	require.NoError(t, st.DeletePendingFriendRequest(ctx, again.ID, a.ID))
	_, err = st.GetFriendRequest(ctx, again.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testConcurrentAccept(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := newUser(t, st, models.UserTypeHasRoom)
	b := newUser(t, st, models.UserTypeHasRoom)
	req := models.NewFriendRequest(a.ID, b.ID)
	require.NoError(t, st.CreateFriendRequest(ctx, req))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = st.AcceptFriendRequest(ctx, req.ID, b.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, store.ErrNotFound)
	}
	assert.Equal(t, 1, succeeded)

	friendships, err := st.ListFriendships(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, friendships, 1)
}

func testLikes(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := newUser(t, st, models.UserTypeLookingForRoom)
	b := newUser(t, st, models.UserTypeLookingForRoom)

	require.NoError(t, st.RecordLike(ctx, &models.Like{LikerID: a.ID, LikedID: b.ID, Liked: false}))
	liked, err := st.HasLike(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// re-swiping updates the existing row
	require.NoError(t, st.RecordLike(ctx, &models.Like{LikerID: a.ID, LikedID: b.ID, Liked: true}))
	liked, err = st.HasLike(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	mutual, err := st.ListMutualLikes(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, mutual)

	require.NoError(t, st.RecordLike(ctx, &models.Like{LikerID: b.ID, LikedID: a.ID, Liked: true}))
	mutual, err = st.ListMutualLikes(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, mutual)
}

func testConcurrentChat(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := newUser(t, st, models.UserTypeLookingForRoom)
	b := newUser(t, st, models.UserTypeLookingForRoom)

	const workers = 8
	var wg sync.WaitGroup
	ids := make([]string, workers)
	created := make([]bool, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x, y := a.ID, b.ID
			if i%2 == 1 {
				x, y = y, x
			}
			chat, c, err := st.GetOrCreateChat(ctx, x, y)
			errs[i], created[i] = err, c
			if err == nil {
				ids[i] = chat.ID
			}
		}(i)
	}
	wg.Wait()

	creations := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
		if created[i] {
			creations++
		}
	}
	assert.Equal(t, 1, creations)

	chats, err := st.ListChats(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func testMessages(t *testing.T, st store.Store) {
	ctx := context.Background()
	a := newUser(t, st, models.UserTypeHasRoom)
	b := newUser(t, st, models.UserTypeHasRoom)
	chat, _, err := st.GetOrCreateChat(ctx, a.ID, b.ID)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)
	var msgs []*models.Message
	for i := 0; i < 5; i++ {
		m := &models.Message{ChatID: chat.ID, SenderID: a.ID, Content: "m", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, st.CreateMessage(ctx, m))
		msgs = append(msgs, m)
	}
	assert.ErrorIs(t, st.CreateMessage(ctx, &models.Message{ChatID: uuid.NewString(), SenderID: a.ID, Content: "x"}), store.ErrNotFound)

	latest, err := st.ListMessages(ctx, chat.ID, time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, msgs[3].ID, latest[0].ID)
	assert.Equal(t, msgs[4].ID, latest[1].ID)

	older, err := st.ListMessages(ctx, chat.ID, latest[0].CreatedAt, 10)
	require.NoError(t, err)
	assert.Len(t, older, 3)

	last, err := st.LastMessage(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, msgs[4].ID, last.ID)

	pin := &models.PinnedMessage{ChatID: chat.ID, MessageID: msgs[0].ID, PinnedBy: a.ID}
	require.NoError(t, st.PinMessage(ctx, pin))
	require.NoError(t, st.PinMessage(ctx, &models.PinnedMessage{ChatID: chat.ID, MessageID: msgs[0].ID, PinnedBy: b.ID}))
	pins, err := st.ListPins(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, a.ID, pins[0].PinnedBy)

	require.NoError(t, st.UnpinMessage(ctx, chat.ID, msgs[0].ID))
	assert.ErrorIs(t, st.UnpinMessage(ctx, chat.ID, msgs[0].ID), store.ErrNotFound)
}

func testInvites(t *testing.T, st store.Store) {
	ctx := context.Background()
	owner := newUser(t, st, models.UserTypeHasRoom)
	guest := newUser(t, st, models.UserTypeHasRoom)
	third := newUser(t, st, models.UserTypeHasRoom)

	group := &models.Group{Name: "Flat", OwnerID: owner.ID, Members: []models.GroupMember{{UserID: owner.ID, Role: models.GroupRoleOwner}}}
	require.NoError(t, st.CreateGroup(ctx, group))

	now := time.Now()
	invite := &models.GroupInvite{GroupID: group.ID, Token: uuid.NewString(), CreatedBy: owner.ID, ExpiresAt: now.Add(time.Hour), MaxUses: 1}
	require.NoError(t, st.CreateInvite(ctx, invite))
	assert.ErrorIs(t, st.CreateInvite(ctx, &models.GroupInvite{
		GroupID: group.ID, Token: invite.Token, CreatedBy: owner.ID, ExpiresAt: now.Add(time.Hour), MaxUses: 1,
	}), store.ErrConflict)

	_, already, err := st.RedeemInvite(ctx, invite.Token, owner.ID, now)
	require.NoError(t, err)
	assert.True(t, already)

	redeemed, already, err := st.RedeemInvite(ctx, invite.Token, guest.ID, now)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, 1, redeemed.Uses)

	// exhausted
	_, _, err = st.RedeemInvite(ctx, invite.Token, third.ID, now)
	assert.ErrorIs(t, err, store.ErrNotFound)

	members, err := st.ListMembers(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
	for _, m := range members {
		assert.False(t, m.JoinedAt.IsZero(), "member %s has no join time", m.UserID)
	}

	expired := &models.GroupInvite{GroupID: group.ID, Token: uuid.NewString(), CreatedBy: owner.ID, ExpiresAt: now.Add(-time.Minute), MaxUses: 5}
	require.NoError(t, st.CreateInvite(ctx, expired))
	_, _, err = st.RedeemInvite(ctx, expired.Token, third.ID, now)
	assert.ErrorIs(t, err, store.ErrNotFound)

	active, err := st.ListActiveInvites(ctx, group.ID, now)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, st.RemoveMember(ctx, group.ID, guest.ID))
	_, err = st.GetMember(ctx, group.ID, guest.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testExpenses(t *testing.T, st store.Store) {
	ctx := context.Background()
	owner := newUser(t, st, models.UserTypeHasRoom)
	mate := newUser(t, st, models.UserTypeHasRoom)
	group := &models.Group{Name: "Flat", OwnerID: owner.ID, Members: []models.GroupMember{{UserID: owner.ID, Role: models.GroupRoleOwner}}}
	require.NoError(t, st.CreateGroup(ctx, group))

	expense := &models.Expense{
		GroupID:     group.ID,
		PaidBy:      owner.ID,
		Description: "internet",
		AmountCents: 3000,
		Shares: []models.ExpenseShare{
			{UserID: owner.ID, ShareCents: 1500},
			{UserID: mate.ID, ShareCents: 1500},
		},
	}
	require.NoError(t, st.CreateExpense(ctx, expense))

	list, err := st.ListExpenses(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Shares, 2)
	assert.EqualValues(t, 3000, list[0].AmountCents)
}
