package memory

import (
	"context"
	"sort"

	models "Roomio/models/postgres"
)

func (s *Store) RecordLike(ctx context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := likeKey(like.LikerID, like.LikedID)
	if existing, ok := s.likes[key]; ok {
		existing.Liked = like.Liked
		existing.UpdatedAt = now
		*like = *existing
		return nil
	}

	ensureID(&like.ID)
	like.CreatedAt, like.UpdatedAt = now, now
	stored := *like
	s.likes[key] = &stored
	return nil
}

func (s *Store) HasLike(ctx context.Context, likerID, likedID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.likes[likeKey(likerID, likedID)]
	return ok && l.Liked, nil
}

func (s *Store) ListMutualLikes(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, l := range s.likes {
		if l.LikerID != userID || !l.Liked {
			continue
		}
		if back, ok := s.likes[likeKey(l.LikedID, userID)]; ok && back.Liked {
			ids = append(ids, l.LikedID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func sortFriendships(fs []models.Friendship) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].CreatedAt.Equal(fs[j].CreatedAt) {
			return fs[i].ID < fs[j].ID
		}
		return fs[i].CreatedAt.Before(fs[j].CreatedAt)
	})
}
