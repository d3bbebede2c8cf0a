package postgres

import (
	"time"

	"gorm.io/gorm"
)

/*
 * 'Chat' is a one-to-one conversation. The unique canonical pair guarantees
 * at most one chat per two users, even when both sides match concurrently.
 */
type Chat struct {
	ID              string `gorm:"primaryKey;size:36"`
	ParticipantLow  string `gorm:"size:36;not null;uniqueIndex:idx_chats_pair"`
	ParticipantHigh string `gorm:"size:36;not null;uniqueIndex:idx_chats_pair;index:idx_chats_participant_high"`
	CreatedAt       time.Time
}

func NewChat(a, b string) *Chat {
	low, high := CanonicalPair(a, b)
	return &Chat{ParticipantLow: low, ParticipantHigh: high}
}

func (c *Chat) HasParticipant(userID string) bool {
	return c.ParticipantLow == userID || c.ParticipantHigh == userID
}

func (c *Chat) Other(userID string) string {
	if c.ParticipantLow == userID {
		return c.ParticipantHigh
	}
	return c.ParticipantLow
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

type Message struct {
	ID        string    `gorm:"primaryKey;size:36"`
	ChatID    string    `gorm:"size:36;not null;index:idx_messages_chat_created,priority:1"`
	SenderID  string    `gorm:"size:36;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_messages_chat_created,priority:2"`

	Chat Chat `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// PinnedMessage marks a message as pinned in its chat. Pinning is idempotent.
type PinnedMessage struct {
	ID        string `gorm:"primaryKey;size:36"`
	ChatID    string `gorm:"size:36;not null;uniqueIndex:idx_pinned_messages_chat_message,priority:1"`
	MessageID string `gorm:"size:36;not null;uniqueIndex:idx_pinned_messages_chat_message,priority:2"`
	PinnedBy  string `gorm:"size:36;not null"`
	CreatedAt time.Time

	Message Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

func (p *PinnedMessage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}
