package services

import (
	"context"
	"fmt"

	"labchat/models"

	"gorm.io/gorm"
)

// MessageStore 消息持久化
type MessageStore struct {
	db *gorm.DB
}

// NewMessageStore 创建消息存储
func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// SaveMessage appends the message record and returns it with its assigned id.
func (s *MessageStore) SaveMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	return msg, nil
}

// ListRoomMessages returns the room's history, oldest first.
func (s *MessageStore) ListRoomMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages for room %s: %w", roomID, err)
	}
	return messages, nil
}
