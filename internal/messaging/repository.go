package messaging

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindConversationByPair(ctx context.Context, low, high uint) (*Conversation, error)
	CreateConversation(ctx context.Context, conv *Conversation) error
	FindConversationByID(ctx context.Context, id uint) (*Conversation, error)
	ListConversations(ctx context.Context, userID uint) ([]Conversation, error)

	CreateMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, conversationID uint) ([]Message, error)
	LastMessage(ctx context.Context, conversationID uint) (*Message, error)
	MarkOthersRead(ctx context.Context, conversationID, viewerID uint) error
	CountUnread(ctx context.Context, conversationID, viewerID uint) (int64, error)
	TouchConversation(ctx context.Context, conversationID uint, at time.Time) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) FindConversationByPair(ctx context.Context, low, high uint) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *repository) CreateConversation(ctx context.Context, conv *Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *repository) FindConversationByID(ctx context.Context, id uint) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *repository) ListConversations(ctx context.Context, userID uint) ([]Conversation, error) {
	var convs []Conversation
	err := r.db.WithContext(ctx).
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *repository) CreateMessage(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) ListMessages(ctx context.Context, conversationID uint) ([]Message, error) {
	var msgs []Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *repository) LastMessage(ctx context.Context, conversationID uint) (*Message, error) {
	var msg Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkOthersRead marks every message not sent by the viewer as read.
// Idempotent.
func (r *repository) MarkOthersRead(ctx context.Context, conversationID, viewerID uint) error {
	return r.db.WithContext(ctx).
		Model(&Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, viewerID, false).
		Update("is_read", true).Error
}

func (r *repository) CountUnread(ctx context.Context, conversationID, viewerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, viewerID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) TouchConversation(ctx context.Context, conversationID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", at).Error
}
