package repository

import (
	"context"
	"errors"
	"time"

	"rentalapp/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type conversationModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PropertyID int64     `gorm:"column:property_id;uniqueIndex:idx_conv_property_guest"`
	GuestID    int64     `gorm:"column:guest_id;uniqueIndex:idx_conv_property_guest"`
	HostID     int64     `gorm:"column:host_id;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (conversationModel) TableName() string { return "conversations" }

type messageModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	ConversationID int64      `gorm:"column:conversation_id;index"`
	SenderID       int64      `gorm:"column:sender_id"`
	Body           string     `gorm:"column:body"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainConversation(m conversationModel) *domain.Conversation {
	return &domain.Conversation{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		GuestID:    m.GuestID,
		HostID:     m.HostID,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainMessage(m messageModel) *domain.Message {
	return &domain.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	m := conversationModel{
		PropertyID: conv.PropertyID,
		GuestID:    conv.GuestID,
		HostID:     conv.HostID,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*conv = *toDomainConversation(m)
	return nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id int64) (*domain.Conversation, error) {
	var m conversationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) FindConversation(ctx context.Context, propertyID, guestID int64) (*domain.Conversation, error) {
	var m conversationModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ? AND guest_id = ?", propertyID, guestID).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var models []conversationModel
	tx := r.db.WithContext(ctx).
		Where("guest_id = ? OR host_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	conversations := make([]domain.Conversation, 0, len(models))
	for _, m := range models {
		conversations = append(conversations, *toDomainConversation(m))
	}
	return conversations, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		CreatedAt:      time.Now(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = *toDomainMessage(m)
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	var models []messageModel
	tx := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	messages := make([]domain.Message, 0, len(models))
	for _, m := range models {
		messages = append(messages, *toDomainMessage(m))
	}
	return messages, nil
}

// MarkRead stamps every unread message sent by the other participant.
func (r *ChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", &now).Error
}
