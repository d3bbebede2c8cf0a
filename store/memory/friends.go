package memory

import (
	"context"

	models "Roomio/models/postgres"
	"Roomio/store"
)

func (s *Store) CreateFriendRequest(ctx context.Context, req *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Same rule as the partial unique index: one non-declined request per pair.
	for _, existing := range s.requests {
		if existing.PairLow == req.PairLow && existing.PairHigh == req.PairHigh &&
			existing.Status != models.FriendRequestDeclined {
			return store.ErrConflict
		}
	}

	ensureID(&req.ID)
	req.CreatedAt = s.now()
	stored := *req
	s.requests[req.ID] = &stored
	s.requestOrder = append(s.requestOrder, req.ID)
	return nil
}

func (s *Store) GetFriendRequest(ctx context.Context, id string) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *r
	return &out, nil
}

func (s *Store) FindOpenFriendRequest(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	low, high := models.CanonicalPair(a, b)
	for _, id := range s.requestOrder {
		r := s.requests[id]
		if r.PairLow == low && r.PairHigh == high && r.Status == models.FriendRequestPending {
			out := *r
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListPendingFriendRequests(ctx context.Context, userID string) ([]models.FriendRequest, []models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sent, received []models.FriendRequest
	// newest first
	for i := len(s.requestOrder) - 1; i >= 0; i-- {
		r := s.requests[s.requestOrder[i]]
		if r.Status != models.FriendRequestPending {
			continue
		}
		switch userID {
		case r.SenderID:
			sent = append(sent, *r)
		case r.ReceiverID:
			received = append(received, *r)
		}
	}
	return sent, received, nil
}

func (s *Store) AcceptFriendRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, *models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[requestID]
	if !ok || r.ReceiverID != receiverID || r.Status != models.FriendRequestPending {
		return nil, nil, store.ErrNotFound
	}
	now := s.now()
	r.Status = models.FriendRequestAccepted
	r.RespondedAt = &now

	key := pairKey(r.SenderID, r.ReceiverID)
	f, exists := s.friendships[key]
	if !exists {
		f = models.NewFriendship(r.SenderID, r.ReceiverID)
		ensureID(&f.ID)
		f.CreatedAt = now
		s.friendships[key] = f
	}

	outReq, outF := *r, *f
	return &outReq, &outF, nil
}

func (s *Store) DeclineFriendRequest(ctx context.Context, requestID, receiverID string) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[requestID]
	if !ok || r.ReceiverID != receiverID || r.Status != models.FriendRequestPending {
		return nil, store.ErrNotFound
	}
	now := s.now()
	r.Status = models.FriendRequestDeclined
	r.RespondedAt = &now

	out := *r
	return &out, nil
}

func (s *Store) DeletePendingFriendRequest(ctx context.Context, requestID, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[requestID]
	if !ok || r.SenderID != senderID || r.Status != models.FriendRequestPending {
		return store.ErrNotFound
	}
	delete(s.requests, requestID)
	for i, id := range s.requestOrder {
		if id == requestID {
			s.requestOrder = append(s.requestOrder[:i], s.requestOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetFriendship(ctx context.Context, a, b string) (*models.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.friendships[pairKey(a, b)]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *f
	return &out, nil
}

func (s *Store) ListFriendships(ctx context.Context, userID string) ([]models.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Friendship
	for _, f := range s.friendships {
		if f.UserLow == userID || f.UserHigh == userID {
			out = append(out, *f)
		}
	}
	sortFriendships(out)
	return out, nil
}
