package messaging

import (
	"time"
)

// Conversation is a two-party thread. Participants are stored in canonical
// order (UserLowID < UserHighID) so the composite unique index serializes
// concurrent lookup-or-create calls from either direction.
type Conversation struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserLowID  uint `gorm:"not null;index;uniqueIndex:idx_conversation_pair" json:"user_low_id"`
	UserHighID uint `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user_high_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// Participants returns both member ids.
func (conv *Conversation) Participants() (uint, uint) {
	return conv.UserLowID, conv.UserHighID
}

// HasParticipant reports whether userID belongs to the conversation.
func (conv *Conversation) HasParticipant(userID uint) bool {
	return conv.UserLowID == userID || conv.UserHighID == userID
}

// OtherParticipant returns the member that is not userID.
func (conv *Conversation) OtherParticipant(userID uint) uint {
	if conv.UserLowID == userID {
		return conv.UserHighID
	}
	return conv.UserLowID
}

// canonicalPair orders two user ids low-high.
func canonicalPair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// Message is one entry in a conversation, ordered by creation time.
type Message struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ConversationID uint   `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint   `gorm:"not null;index" json:"sender_id"`
	Content        string `gorm:"type:text;not null" json:"content"`
	IsRead         bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// ConversationSummary is one row of the conversation list view.
type ConversationSummary struct {
	Conversation Conversation `json:"conversation"`
	OtherUserID  uint         `json:"other_user_id"`
	LastMessage  *Message     `json:"last_message,omitempty"`
	UnreadCount  int64        `json:"unread_count"`
}
