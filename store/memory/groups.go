package memory

import (
	"context"
	"time"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&group.ID)
	now := s.now()
	group.CreatedAt = now

	s.members[group.ID] = make(map[string]*models.GroupMember)
	for i := range group.Members {
		m := &group.Members[i]
		m.GroupID = group.ID
		m.JoinedAt = now
		stored := *m
		s.members[group.ID][m.UserID] = &stored
	}

	stored := *group
	stored.Members = nil
	s.groups[group.ID] = &stored
	s.groupOrder = append(s.groupOrder, group.ID)
	return nil
}

func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *g
	return &out, nil
}

func (s *Store) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Group
	for _, id := range s.groupOrder {
		if _, member := s.members[id][userID]; member {
			out = append(out, *s.groups[id])
		}
	}
	return out, nil
}

func (s *Store) GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[groupID][userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (s *Store) ListMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.GroupMember, 0, len(s.members[groupID]))
	for _, m := range s.members[groupID] {
		out = append(out, *m)
	}
	sortMembers(out)
	return out, nil
}

func (s *Store) RemoveMember(ctx context.Context, groupID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[groupID][userID]; !ok {
		return store.ErrNotFound
	}
	delete(s.members[groupID], userID)
	return nil
}

func (s *Store) CreateInvite(ctx context.Context, invite *models.GroupInvite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.inviteTokens[invite.Token]; taken {
		return store.ErrConflict
	}
	ensureID(&invite.ID)
	invite.CreatedAt = s.now()
	stored := *invite
	s.invites[invite.ID] = &stored
	s.inviteTokens[invite.Token] = invite.ID
	return nil
}

func (s *Store) GetInvite(ctx context.Context, id string) (*models.GroupInvite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invites[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (s *Store) ListActiveInvites(ctx context.Context, groupID string, now time.Time) ([]models.GroupInvite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.GroupInvite
	for _, inv := range s.invites {
		if inv.GroupID == groupID && inv.Usable(now) {
			out = append(out, *inv)
		}
	}
	sortInvites(out)
	return out, nil
}

func (s *Store) RevokeInvite(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invites[id]
	if !ok {
		return store.ErrNotFound
	}
	inv.Revoked = true
	return nil
}

func (s *Store) RedeemInvite(ctx context.Context, token, userID string, now time.Time) (*models.GroupInvite, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.inviteTokens[token]
	if !ok {
		return nil, false, store.ErrNotFound
	}
	inv := s.invites[id]
	if inv.Revoked || !now.Before(inv.ExpiresAt) {
		return nil, false, store.ErrNotFound
	}
	if _, member := s.members[inv.GroupID][userID]; member {
		out := *inv
		return &out, true, nil
	}
	if inv.Uses >= inv.MaxUses {
		return nil, false, store.ErrNotFound
	}

	inv.Uses++
	if s.members[inv.GroupID] == nil {
		s.members[inv.GroupID] = make(map[string]*models.GroupMember)
	}
	s.members[inv.GroupID][userID] = &models.GroupMember{
		GroupID:  inv.GroupID,
		UserID:   userID,
		Role:     models.GroupRoleMember,
		JoinedAt: s.now(),
	}
	out := *inv
	return &out, false, nil
}
