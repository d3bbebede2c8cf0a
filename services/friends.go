package services

import (
	"context"
	"errors"
	"strings"

	models "Roomio/models/postgres"
	"Roomio/pkg/apperror"
	"Roomio/pkg/logger"
	"Roomio/store"
)

const (
	ActionAccept  = "accept"
	ActionDecline = "decline"

	msgRequestProcessed = "Friend request not found or already processed"
	msgRequestExists    = "Friend request already exists"
)

type FriendService struct {
	store    store.Store
	notifier Notifier
}

type RequestList struct {
	SentRequests     []RequestView `json:"sentRequests"`
	ReceivedRequests []RequestView `json:"receivedRequests"`
	TotalPending     int           `json:"totalPending"`
}

type RespondResult struct {
	Message    string          `json:"message"`
	Friendship *FriendshipView `json:"friendship,omitempty"`
}

// SendRequest creates a pending request from senderID to receiverID.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID string) (*RequestView, error) {
	receiverID = strings.TrimSpace(receiverID)
	if receiverID == "" {
		return nil, apperror.Validation("receiverId is required")
	}
	if receiverID == senderID {
		return nil, apperror.Validation("Cannot send a friend request to yourself")
	}

	receiver, err := s.store.GetUser(ctx, receiverID)
	if err != nil {
		return nil, notFoundOr(err, "Receiver not found", "get receiver")
	}

	if _, err := s.store.FindOpenFriendRequest(ctx, senderID, receiverID); err == nil {
		return nil, apperror.Conflict(msgRequestExists)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, internal(err, "find open friend request")
	}

	if _, err := s.store.GetFriendship(ctx, senderID, receiverID); err == nil {
		return nil, apperror.Conflict("You are already friends")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, internal(err, "get friendship")
	}

	req := models.NewFriendRequest(senderID, receiverID)
	if err := s.store.CreateFriendRequest(ctx, req); err != nil {
		// lost a race with a concurrent request for the same pair
		if errors.Is(err, store.ErrConflict) {
			return nil, apperror.Conflict(msgRequestExists)
		}
		return nil, internal(err, "create friend request")
	}

	if sender, err := s.store.GetUser(ctx, senderID); err == nil {
		s.notifier.Emit(UserRoom(receiverID), EventFriendRequest,
			requestViewOf(req, receiverID, map[string]models.User{senderID: *sender}))
	}

	logger.Info("Friend request sent", "request_id", req.ID, "sender_id", senderID, "receiver_id", receiverID)
	view := requestViewOf(req, senderID, map[string]models.User{receiverID: *receiver})
	return &view, nil
}

// Respond applies the receiver's accept or decline to a pending request.
func (s *FriendService) Respond(ctx context.Context, userID, requestID, action string) (*RespondResult, error) {
	switch action {
	case ActionAccept:
		req, friendship, err := s.store.AcceptFriendRequest(ctx, requestID, userID)
		if err != nil {
			return nil, notFoundOr(err, msgRequestProcessed, "accept friend request")
		}
		view := &FriendshipView{ID: friendship.ID, FriendID: req.SenderID, CreatedAt: friendship.CreatedAt}

		s.notifier.Emit(UserRoom(req.SenderID), EventFriendRequestAccepted, FriendshipView{
			ID: friendship.ID, FriendID: userID, CreatedAt: friendship.CreatedAt,
		})
		logger.Info("Friend request accepted", "request_id", requestID, "friendship_id", friendship.ID)
		return &RespondResult{Message: "Friend request accepted", Friendship: view}, nil

	case ActionDecline:
		if _, err := s.store.DeclineFriendRequest(ctx, requestID, userID); err != nil {
			return nil, notFoundOr(err, msgRequestProcessed, "decline friend request")
		}
		logger.Info("Friend request declined", "request_id", requestID)
		return &RespondResult{Message: "Friend request declined"}, nil

	default:
		return nil, apperror.Validation("action must be 'accept' or 'decline'")
	}
}

// Cancel lets the sender withdraw a request that is still pending.
func (s *FriendService) Cancel(ctx context.Context, userID, requestID string) error {
	if err := s.store.DeletePendingFriendRequest(ctx, requestID, userID); err != nil {
		return notFoundOr(err, msgRequestProcessed, "cancel friend request")
	}
	return nil
}

func (s *FriendService) ListRequests(ctx context.Context, userID string) (*RequestList, error) {
	sent, received, err := s.store.ListPendingFriendRequests(ctx, userID)
	if err != nil {
		return nil, internal(err, "list friend requests")
	}

	ids := make([]string, 0, len(sent)+len(received))
	for _, r := range sent {
		ids = append(ids, r.ReceiverID)
	}
	for _, r := range received {
		ids = append(ids, r.SenderID)
	}
	users, err := usersByID(ctx, s.store, ids)
	if err != nil {
		return nil, internal(err, "load request users")
	}

	out := &RequestList{
		SentRequests:     make([]RequestView, 0, len(sent)),
		ReceivedRequests: make([]RequestView, 0, len(received)),
		TotalPending:     len(received),
	}
	for i := range sent {
		out.SentRequests = append(out.SentRequests, requestViewOf(&sent[i], userID, users))
	}
	for i := range received {
		out.ReceivedRequests = append(out.ReceivedRequests, requestViewOf(&received[i], userID, users))
	}
	return out, nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]FriendView, error) {
	friendships, err := s.store.ListFriendships(ctx, userID)
	if err != nil {
		return nil, internal(err, "list friendships")
	}

	ids := make([]string, 0, len(friendships))
	for i := range friendships {
		ids = append(ids, friendships[i].Other(userID))
	}
	users, err := usersByID(ctx, s.store, ids)
	if err != nil {
		return nil, internal(err, "load friends")
	}

	out := make([]FriendView, 0, len(friendships))
	for i := range friendships {
		f := &friendships[i]
		u, ok := users[f.Other(userID)]
		if !ok {
			continue
		}
		out = append(out, FriendView{FriendshipID: f.ID, Since: f.CreatedAt, User: userViewOf(&u)})
	}
	return out, nil
}
