package memory

import (
	"context"
	"sort"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return store.ErrConflict
	}
	ensureID(&user.ID)
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	s.users[user.ID] = &stored
	s.emails[user.Email] = user.ID
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

func (s *Store) GetUsers(ctx context.Context, ids []string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	if existing.Email != user.Email {
		if _, taken := s.emails[user.Email]; taken {
			return store.ErrConflict
		}
		delete(s.emails, existing.Email)
		s.emails[user.Email] = user.ID
	}
	user.UpdatedAt = s.now()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Store) ListCandidates(ctx context.Context, userID, userType string, limit int) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, id := range s.userOrder {
		u := s.users[id]
		if u.ID == userID || u.UserType != userType {
			continue
		}
		if _, swiped := s.likes[likeKey(userID, u.ID)]; swiped {
			continue
		}
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
