package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"
	"Roomio/store"
	"Roomio/utils"
)

const (
	inviteTokenBytes   = 32
	defaultInviteTTL   = 72 * time.Hour
	maxInviteTTL       = 30 * 24 * time.Hour
	defaultInviteUses  = 10
	maxInviteUses      = 100
	maxGroupNameLength = 100
	msgNotGroupMember  = "You are not a member of this group"
	msgInviteNotUsable = "Invite not found, expired or already used up"
)

type GroupService struct {
	store store.Store
	now   func() time.Time
}

type InviteInput struct {
	TTLHours int
	MaxUses  int
}

type AcceptInviteResult struct {
	Success       bool   `json:"success"`
	GroupID       string `json:"groupId"`
	AlreadyMember bool   `json:"alreadyMember"`
}

func (s *GroupService) CreateGroup(ctx context.Context, userID, name string) (*GroupView, error) {
	name = utils.SanitizeText(name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if utf8.RuneCountInString(name) > maxGroupNameLength {
		return nil, apperror.Validation("name must be at most 100 characters")
	}

	group := &models.Group{
		Name:    name,
		OwnerID: userID,
		Members: []models.GroupMember{{UserID: userID, Role: models.GroupRoleOwner}},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, internal(err, "create group")
	}
	logger.Info("Group created", "group_id", group.ID, "owner_id", userID)
	return s.GetGroup(ctx, userID, group.ID)
}

func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]GroupView, error) {
	groups, err := s.store.ListGroups(ctx, userID)
	if err != nil {
		return nil, internal(err, "list groups")
	}
	out := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupView{ID: g.ID, Name: g.Name, OwnerID: g.OwnerID, CreatedAt: g.CreatedAt})
	}
	return out, nil
}

func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*GroupView, error) {
	group, _, err := s.requireMember(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, internal(err, "list members")
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := usersByID(ctx, s.store, ids)
	if err != nil {
		return nil, internal(err, "load members")
	}

	view := &GroupView{ID: group.ID, Name: group.Name, OwnerID: group.OwnerID, CreatedAt: group.CreatedAt}
	for _, m := range members {
		u := users[m.UserID]
		summary := summaryOf(&u)
		summary.ID = m.UserID
		view.Members = append(view.Members, MemberView{User: summary, Role: m.Role, JoinedAt: m.JoinedAt})
	}
	return view, nil
}

// requireMember loads the group and the caller's membership. Unknown groups
// are 404, groups the caller is not in are 403.
func (s *GroupService) requireMember(ctx context.Context, userID, groupID string) (*models.Group, *models.GroupMember, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Group not found", "get group")
	}
	member, err := s.store.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperror.Forbidden(msgNotGroupMember)
		}
		return nil, nil, internal(err, "get member")
	}
	return group, member, nil
}

func (s *GroupService) CreateInvite(ctx context.Context, userID, groupID string, in InviteInput) (*InviteView, error) {
	if _, _, err := s.requireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}
	if in.TTLHours < 0 || in.MaxUses < 0 {
		return nil, apperror.Validation("ttlHours and maxUses cannot be negative")
	}

	// compare in hours so huge values cannot overflow the Duration
	ttl := defaultInviteTTL
	switch {
	case in.TTLHours > int(maxInviteTTL/time.Hour):
		ttl = maxInviteTTL
	case in.TTLHours > 0:
		ttl = time.Duration(in.TTLHours) * time.Hour
	}
	maxUses := clampLimit(in.MaxUses, defaultInviteUses, maxInviteUses)

	token, err := utils.GenerateRandomToken(inviteTokenBytes)
	if err != nil {
		return nil, internal(err, "generate invite token")
	}
	invite := &models.GroupInvite{
		GroupID:   groupID,
		Token:     token,
		CreatedBy: userID,
		ExpiresAt: s.now().Add(ttl),
		MaxUses:   maxUses,
	}
	if err := s.store.CreateInvite(ctx, invite); err != nil {
		return nil, internal(err, "create invite")
	}
	logger.Info("Group invite created", "group_id", groupID, "invite_id", invite.ID)
	view := inviteViewOf(invite)
	return &view, nil
}

// ListInvites returns the invites that can still be redeemed.
func (s *GroupService) ListInvites(ctx context.Context, userID, groupID string) ([]InviteView, error) {
	if _, _, err := s.requireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}
	invites, err := s.store.ListActiveInvites(ctx, groupID, s.now())
	if err != nil {
		return nil, internal(err, "list invites")
	}
	out := make([]InviteView, 0, len(invites))
	for i := range invites {
		out = append(out, inviteViewOf(&invites[i]))
	}
	return out, nil
}

func (s *GroupService) RevokeInvite(ctx context.Context, userID, groupID, inviteID string) error {
	group, _, err := s.requireMember(ctx, userID, groupID)
	if err != nil {
		return err
	}
	invite, err := s.store.GetInvite(ctx, inviteID)
	if err != nil {
		return notFoundOr(err, "Invite not found", "get invite")
	}
	if invite.GroupID != groupID {
		return apperror.NotFound("Invite not found")
	}
	if group.OwnerID != userID && invite.CreatedBy != userID {
		return apperror.Forbidden("Only the group owner or the invite creator can revoke it")
	}
	if err := s.store.RevokeInvite(ctx, inviteID); err != nil {
		return notFoundOr(err, "Invite not found", "revoke invite")
	}
	return nil
}

// AcceptInvite redeems token for userID. Existing members succeed without
// consuming a use.
func (s *GroupService) AcceptInvite(ctx context.Context, userID, token string) (*AcceptInviteResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.Validation("token is required")
	}
	invite, already, err := s.store.RedeemInvite(ctx, token, userID, s.now())
	if err != nil {
		return nil, notFoundOr(err, msgInviteNotUsable, "redeem invite")
	}
	if !already {
		logger.Info("Joined group through invite", "group_id", invite.GroupID, "user_id", userID)
	}
	return &AcceptInviteResult{Success: true, GroupID: invite.GroupID, AlreadyMember: already}, nil
}

func (s *GroupService) LeaveGroup(ctx context.Context, userID, groupID string) error {
	_, member, err := s.requireMember(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if member.Role == models.GroupRoleOwner {
		return apperror.Validation("The group owner cannot leave the group")
	}
	if err := s.store.RemoveMember(ctx, groupID, userID); err != nil {
		return notFoundOr(err, msgNotGroupMember, "remove member")
	}
	return nil
}
