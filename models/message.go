package models

import (
	"time"
)

// Message 聊天消息模型, created once on a successful send and immutable after that.
// ReceiverID mirrors RoomID for room traffic; the room key doubles as the
// counterpart identifier.
type Message struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID      string    `gorm:"type:varchar(36);index" json:"room_id"`
	SenderID    string    `gorm:"type:varchar(36);index" json:"sender_id"`
	ReceiverID  string    `gorm:"type:varchar(36)" json:"receiver_id"`
	Content     string    `gorm:"type:text" json:"content"`
	MessageType string    `gorm:"type:varchar(10);default:'text'" json:"message_type"` // text, image, etc.
	IsRead      bool      `gorm:"default:false" json:"is_read"`                        // 是否已读
	Timestamp   time.Time `json:"timestamp"`
}
