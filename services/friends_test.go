package services

import (
	"context"
	"sync"
	"testing"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequestScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice", models.UserTypeHasRoom)
	bob := f.signUp(t, "bob", models.UserTypeLookingForRoom)

	req, err := f.svc.Friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, req.Status)
	assert.Equal(t, bob, req.User.ID)
	assert.Equal(t, "bob", req.User.FullName)

	events := f.notifier.byEvent(EventFriendRequest)
	require.Len(t, events, 1)
	assert.Equal(t, UserRoom(bob), events[0].Room)

	list, err := f.svc.Friends.ListRequests(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list.ReceivedRequests, 1)
	assert.Equal(t, alice, list.ReceivedRequests[0].User.ID)
	assert.Equal(t, 1, list.TotalPending)
	assert.Empty(t, list.SentRequests)

	res, err := f.svc.Friends.Respond(ctx, bob, req.ID, ActionAccept)
	require.NoError(t, err)
	require.NotNil(t, res.Friendship)
	assert.Equal(t, alice, res.Friendship.FriendID)
	require.Len(t, f.notifier.byEvent(EventFriendRequestAccepted), 1)

	for _, pair := range [][2]string{{alice, bob}, {bob, alice}} {
		friends, err := f.svc.Friends.ListFriends(ctx, pair[0])
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, pair[1], friends[0].User.ID)
		assert.Equal(t, res.Friendship.ID, friends[0].FriendshipID)
	}

	_, err = f.svc.Friends.SendRequest(ctx, bob, alice)
	assertCode(t, err, apperror.ErrCodeConflict)
}

func TestSendRequestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice", models.UserTypeHasRoom)
	bob := f.signUp(t, "bob", models.UserTypeHasRoom)

	_, err := f.svc.Friends.SendRequest(ctx, alice, "")
	assertCode(t, err, apperror.ErrCodeValidation)
	assert.Equal(t, "receiverId is required", apperror.PublicMessage(err))

	_, err = f.svc.Friends.SendRequest(ctx, alice, alice)
	assertCode(t, err, apperror.ErrCodeValidation)

	_, err = f.svc.Friends.SendRequest(ctx, alice, "ghost")
	assertCode(t, err, apperror.ErrCodeNotFound)
	assert.Equal(t, "Receiver not found", apperror.PublicMessage(err))

	_, err = f.svc.Friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	t.Run("duplicate in either direction", func(t *testing.T) {
		_, err := f.svc.Friends.SendRequest(ctx, alice, bob)
		assertCode(t, err, apperror.ErrCodeConflict)
		assert.Contains(t, apperror.PublicMessage(err), "already exists")

		_, err = f.svc.Friends.SendRequest(ctx, bob, alice)
		assertCode(t, err, apperror.ErrCodeConflict)
	})
}

func TestOnlyReceiverCanRespond(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice", models.UserTypeHasRoom)
	bob := f.signUp(t, "bob", models.UserTypeHasRoom)
	carol := f.signUp(t, "carol", models.UserTypeHasRoom)

	req, err := f.svc.Friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	for _, caller := range []string{alice, carol} {
		_, err := f.svc.Friends.Respond(ctx, caller, req.ID, ActionAccept)
		assertCode(t, err, apperror.ErrCodeNotFound)
		_, err = f.svc.Friends.Respond(ctx, caller, req.ID, ActionDecline)
		assertCode(t, err, apperror.ErrCodeNotFound)
	}

	_, err = f.svc.Friends.Respond(ctx, bob, req.ID, "maybe")
	assertCode(t, err, apperror.ErrCodeValidation)

	_, err = f.svc.Friends.Respond(ctx, bob, req.ID, ActionAccept)
	require.NoError(t, err)

	_, err = f.svc.Friends.Respond(ctx, bob, req.ID, ActionAccept)
	assertCode(t, err, apperror.ErrCodeNotFound)
	assert.Equal(t, "Friend request not found or already processed", apperror.PublicMessage(err))
}

func TestDeclineThenRequestAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice", models.UserTypeHasRoom)
	bob := f.signUp(t, "bob", models.UserTypeHasRoom)

	req, err := f.svc.Friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	res, err := f.svc.Friends.Respond(ctx, bob, req.ID, ActionDecline)
	require.NoError(t, err)
	assert.Nil(t, res.Friendship)

	_, err = f.svc.Friends.Respond(ctx, bob, req.ID, ActionAccept)
	assertCode(t, err, apperror.ErrCodeNotFound)

	friends, err := f.svc.Friends.ListFriends(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, friends)

	again, err := f.svc.Friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, again.ID)
}

func TestCancelRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice", models.UserTypeHasRoom)
	bob := f.signUp(t, "bob", models.UserTypeHasRoom)

	req, err := f.svc.Friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	assertCode(t, f.svc.Friends.Cancel(ctx, bob, req.ID), apperror.ErrCodeNotFound)
	require.NoError(t, f.svc.Friends.Cancel(ctx, alice, req.ID))
	assertCode(t, f.svc.Friends.Cancel(ctx, alice, req.ID), apperror.ErrCodeNotFound)

	list, err := f.svc.Friends.ListRequests(ctx, bob)
	require.NoError(t, err)
	assert.Zero(t, list.TotalPending)
}

func TestConcurrentAcceptCreatesOneFriendship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice", models.UserTypeHasRoom)
	bob := f.signUp(t, "bob", models.UserTypeHasRoom)

	req, err := f.svc.Friends.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Friends.Respond(ctx, bob, req.ID, ActionAccept); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	friends, err := f.svc.Friends.ListFriends(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}
