package messaging

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/notification"
	"gorm.io/gorm"
)

type Service interface {
	StartOrGetConversation(ctx context.Context, a, b uint) (*Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderID uint, content string) (*Message, error)
	OpenConversation(ctx context.Context, conversationID, viewerID uint) (*Conversation, []Message, error)
	ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, int64, error)
}

type service struct {
	repo     Repository
	notifSvc notification.Service
}

func NewService(repo Repository, notifSvc notification.Service) Service {
	return &service{repo: repo, notifSvc: notifSvc}
}

// StartOrGetConversation returns the one conversation for the unordered
// pair {a, b}, creating it on first contact. Losing a concurrent create
// race falls back to re-fetching the winner's row.
func (s *service) StartOrGetConversation(ctx context.Context, a, b uint) (*Conversation, error) {
	if a == b {
		return nil, apperr.Validation("cannot start a conversation with yourself")
	}

	low, high := canonicalPair(a, b)

	conv, err := s.repo.FindConversationByPair(ctx, low, high)
	if err == nil {
		return conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	conv = &Conversation{UserLowID: low, UserHighID: high}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		if isUniqueViolation(err) {
			return s.repo.FindConversationByPair(ctx, low, high)
		}
		return nil, err
	}
	return conv, nil
}

func (s *service) SendMessage(ctx context.Context, conversationID, senderID uint, content string) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("message content cannot be empty")
	}

	conv, err := s.repo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, apperr.NotFound("conversation not found")
	}
	if !conv.HasParticipant(senderID) {
		return nil, apperr.PermissionDenied("you are not part of this conversation")
	}

	msg := &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.repo.TouchConversation(ctx, conversationID, time.Now()); err != nil {
		return nil, err
	}

	recipient := conv.OtherParticipant(senderID)
	link := fmt.Sprintf("/messages/%d/", conversationID)
	if err := s.notifSvc.Notify(ctx, recipient, notification.TypeMessage, "New message", content, link); err != nil {
		log.Printf("⚠️ failed to notify user %d of new message: %v", recipient, err)
	}

	return msg, nil
}

// OpenConversation returns the thread oldest-first and marks the other
// side's messages read.
func (s *service) OpenConversation(ctx context.Context, conversationID, viewerID uint) (*Conversation, []Message, error) {
	conv, err := s.repo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, nil, apperr.NotFound("conversation not found")
	}
	if !conv.HasParticipant(viewerID) {
		return nil, nil, apperr.PermissionDenied("you are not part of this conversation")
	}

	if err := s.repo.MarkOthersRead(ctx, conversationID, viewerID); err != nil {
		return nil, nil, err
	}

	msgs, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	return conv, msgs, nil
}

func (s *service) ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, int64, error) {
	convs, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	var totalUnread int64
	for _, conv := range convs {
		unread, err := s.repo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, 0, err
		}
		last, err := s.repo.LastMessage(ctx, conv.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, 0, err
		}

		totalUnread += unread
		summaries = append(summaries, ConversationSummary{
			Conversation: conv,
			OtherUserID:  conv.OtherParticipant(userID),
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}

	return summaries, totalUnread, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
