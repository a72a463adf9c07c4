package chat

import (
	"context"
	"strings"
	"time"

	"rentalapp/internal/domain"
	"rentalapp/internal/pkg/metrics"
)

type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversation(ctx context.Context, id int64) (*domain.Conversation, error)
	FindConversation(ctx context.Context, propertyID, guestID int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

type Service struct {
	conversations ConversationRepository
	properties    PropertyReader
	hub           *Hub
}

func NewService(conversations ConversationRepository, properties PropertyReader, hub *Hub) *Service {
	return &Service{
		conversations: conversations,
		properties:    properties,
		hub:           hub,
	}
}

// StartConversation opens (or returns the existing) guest<->host
// conversation about a property.
func (s *Service) StartConversation(ctx context.Context, guestID, propertyID int64) (*domain.Conversation, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.HostID == guestID {
		return nil, ErrSelfChat
	}

	if existing, err := s.conversations.FindConversation(ctx, propertyID, guestID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	conv := &domain.Conversation{
		PropertyID: propertyID,
		GuestID:    guestID,
		HostID:     p.HostID,
	}
	if err := s.conversations.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *Service) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	return s.conversations.ListConversations(ctx, userID)
}

func (s *Service) conversationFor(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
	conv, err := s.conversations.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrNotFound
	}
	if !conv.Participant(userID) {
		return nil, ErrForbidden
	}
	return conv, nil
}

// SendMessage persists the message and pushes it to the other
// participant's live connection if there is one.
func (s *Service) SendMessage(ctx context.Context, senderID, conversationID int64, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.conversationFor(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	m := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.conversations.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()

	recipient := conv.GuestID
	if senderID == conv.GuestID {
		recipient = conv.HostID
	}
	if s.hub != nil {
		s.hub.SendToUser(recipient, WSMessage{
			Type:           "message",
			ConversationID: conv.ID,
			MessageID:      m.ID,
			SenderID:       senderID,
			Body:           m.Body,
			SentAt:         m.CreatedAt.Format(time.RFC3339),
		})
	}
	return m, nil
}

func (s *Service) ListMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]domain.Message, error) {
	if _, err := s.conversationFor(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.conversations.ListMessages(ctx, conversationID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID, conversationID int64) error {
	if _, err := s.conversationFor(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.conversations.MarkRead(ctx, conversationID, userID)
}
