package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestDeclined = "declined"
)

/*
 * 'FriendRequest' goes pending -> accepted | declined exactly once, driven by
 * the receiver. The partial unique index on the canonical pair allows at most
 * one non-declined request per unordered pair of users; declined rows are
 * kept as history, so re-requesting after a decline inserts a new row.
 */
type FriendRequest struct {
	ID          string `gorm:"primaryKey;size:36"`
	SenderID    string `gorm:"size:36;not null;index:idx_friend_requests_sender"`
	ReceiverID  string `gorm:"size:36;not null;index:idx_friend_requests_receiver"`
	Status      string `gorm:"size:20;not null;default:'pending'"`
	PairLow     string `gorm:"size:36;not null;uniqueIndex:idx_friend_requests_open_pair,where:status <> 'declined'"`
	PairHigh    string `gorm:"size:36;not null;uniqueIndex:idx_friend_requests_open_pair,where:status <> 'declined'"`
	CreatedAt   time.Time
	RespondedAt *time.Time

	// Relationships
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
}

// NewFriendRequest builds a pending request with its canonical pair filled in.
func NewFriendRequest(senderID, receiverID string) *FriendRequest {
	low, high := CanonicalPair(senderID, receiverID)
	return &FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     FriendRequestPending,
		PairLow:    low,
		PairHigh:   high,
	}
}

// Counterpart returns the other side of the request as seen by userID.
func (r *FriendRequest) Counterpart(userID string) string {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.SenderID == r.ReceiverID {
		return errors.New("cannot send a friend request to yourself")
	}
	return nil
}
