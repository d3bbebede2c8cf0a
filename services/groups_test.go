package services

import (
	"context"
	"testing"
	"time"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupInviteLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signUp(t, "owner", models.UserTypeHasRoom)
	bob := f.signUp(t, "bob", models.UserTypeLookingForRoom)
	carol := f.signUp(t, "carol", models.UserTypeLookingForRoom)
	dave := f.signUp(t, "dave", models.UserTypeLookingForRoom)

	group, err := f.svc.Groups.CreateGroup(ctx, owner, "Calle Mayor 5")
	require.NoError(t, err)
	require.Len(t, group.Members, 1)
	assert.Equal(t, models.GroupRoleOwner, group.Members[0].Role)

	_, err = f.svc.Groups.CreateInvite(ctx, bob, group.ID, InviteInput{})
	assertCode(t, err, apperror.ErrCodeForbidden)

	invite, err := f.svc.Groups.CreateInvite(ctx, owner, group.ID, InviteInput{MaxUses: 2, TTLHours: 1})
	require.NoError(t, err)
	assert.Len(t, invite.Token, 43)
	assert.Equal(t, f.now.Add(time.Hour), invite.ExpiresAt)

	res, err := f.svc.Groups.AcceptInvite(ctx, bob, invite.Token)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, group.ID, res.GroupID)
	assert.False(t, res.AlreadyMember)

	t.Run("existing member consumes no use", func(t *testing.T) {
		res, err := f.svc.Groups.AcceptInvite(ctx, bob, invite.Token)
		require.NoError(t, err)
		assert.True(t, res.AlreadyMember)

		res, err = f.svc.Groups.AcceptInvite(ctx, owner, invite.Token)
		require.NoError(t, err)
		assert.True(t, res.AlreadyMember)
	})

	_, err = f.svc.Groups.AcceptInvite(ctx, carol, invite.Token)
	require.NoError(t, err)

	_, err = f.svc.Groups.AcceptInvite(ctx, dave, invite.Token)
	assertCode(t, err, apperror.ErrCodeNotFound)

	invites, err := f.svc.Groups.ListInvites(ctx, bob, group.ID)
	require.NoError(t, err)
	assert.Empty(t, invites, "exhausted invites are not listed")

	view, err := f.svc.Groups.GetGroup(ctx, carol, group.ID)
	require.NoError(t, err)
	assert.Len(t, view.Members, 3)

	_, err = f.svc.Groups.GetGroup(ctx, dave, group.ID)
	assertCode(t, err, apperror.ErrCodeForbidden)
	_, err = f.svc.Groups.GetGroup(ctx, dave, "missing")
	assertCode(t, err, apperror.ErrCodeNotFound)

	groups, err := f.svc.Groups.ListGroups(ctx, bob)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Calle Mayor 5", groups[0].Name)
}

func TestInviteExpiryAndRevocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signUp(t, "owner", models.UserTypeHasRoom)
	member := f.signUp(t, "member", models.UserTypeHasRoom)
	outsider := f.signUp(t, "outsider", models.UserTypeHasRoom)

	group, err := f.svc.Groups.CreateGroup(ctx, owner, "Flat")
	require.NoError(t, err)
	first, err := f.svc.Groups.CreateInvite(ctx, owner, group.ID, InviteInput{})
	require.NoError(t, err)
	_, err = f.svc.Groups.AcceptInvite(ctx, member, first.Token)
	require.NoError(t, err)

	mine, err := f.svc.Groups.CreateInvite(ctx, member, group.ID, InviteInput{})
	require.NoError(t, err)
	ownerInvite, err := f.svc.Groups.CreateInvite(ctx, owner, group.ID, InviteInput{})
	require.NoError(t, err)

	err = f.svc.Groups.RevokeInvite(ctx, member, group.ID, ownerInvite.ID)
	assertCode(t, err, apperror.ErrCodeForbidden)
	require.NoError(t, f.svc.Groups.RevokeInvite(ctx, member, group.ID, mine.ID))
	require.NoError(t, f.svc.Groups.RevokeInvite(ctx, owner, group.ID, ownerInvite.ID))
	assertCode(t, f.svc.Groups.RevokeInvite(ctx, owner, group.ID, "missing"), apperror.ErrCodeNotFound)

	_, err = f.svc.Groups.AcceptInvite(ctx, outsider, mine.Token)
	assertCode(t, err, apperror.ErrCodeNotFound)

	f.now = f.now.Add(defaultInviteTTL + time.Minute)
	_, err = f.svc.Groups.AcceptInvite(ctx, outsider, first.Token)
	assertCode(t, err, apperror.ErrCodeNotFound)

	_, err = f.svc.Groups.AcceptInvite(ctx, outsider, "unknown-token")
	assertCode(t, err, apperror.ErrCodeNotFound)
}

func TestInviteTTLIsClamped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signUp(t, "owner", models.UserTypeHasRoom)
	group, err := f.svc.Groups.CreateGroup(ctx, owner, "Flat")
	require.NoError(t, err)

	for _, hours := range []int{24 * 365, 3_000_000, int(^uint(0) >> 1)} {
		invite, err := f.svc.Groups.CreateInvite(ctx, owner, group.ID, InviteInput{TTLHours: hours})
		require.NoError(t, err)
		assert.Equal(t, f.now.Add(maxInviteTTL), invite.ExpiresAt, "ttlHours=%d", hours)
	}
}

func TestLeaveGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signUp(t, "owner", models.UserTypeHasRoom)
	member := f.signUp(t, "member", models.UserTypeHasRoom)

	group, err := f.svc.Groups.CreateGroup(ctx, owner, "Flat")
	require.NoError(t, err)
	invite, err := f.svc.Groups.CreateInvite(ctx, owner, group.ID, InviteInput{})
	require.NoError(t, err)
	_, err = f.svc.Groups.AcceptInvite(ctx, member, invite.Token)
	require.NoError(t, err)

	assertCode(t, f.svc.Groups.LeaveGroup(ctx, owner, group.ID), apperror.ErrCodeValidation)
	require.NoError(t, f.svc.Groups.LeaveGroup(ctx, member, group.ID))
	assertCode(t, f.svc.Groups.LeaveGroup(ctx, member, group.ID), apperror.ErrCodeForbidden)

	_, err = f.svc.Groups.CreateGroup(ctx, owner, "   ")
	assertCode(t, err, apperror.ErrCodeValidation)
}
