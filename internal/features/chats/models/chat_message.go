package chats_models

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ChatID          uuid.UUID  `json:"chatId" gorm:"type:uuid;not null"`
	SenderID        uuid.UUID  `json:"senderId" gorm:"type:uuid;not null"`
	Content         string     `json:"content"`
	ParentMessageID *uuid.UUID `json:"parentMessageId" gorm:"type:uuid"`
	FileURL         *string    `json:"fileUrl"`
	FileName        *string    `json:"fileName"`
	FileType        *string    `json:"fileType"`
	FileSize        *int64     `json:"fileSize"`
	IsEdited        bool       `json:"isEdited" gorm:"not null;default:false"`

	// SentAt is assigned once on insert and never changes afterwards,
	// edits only stamp EditedAt.
	SentAt   time.Time  `json:"sentAt" gorm:"not null"`
	EditedAt *time.Time `json:"editedAt"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// ChatMessageRead marks that a user has seen a message. At most one row
// per (message, user) pair.
type ChatMessageRead struct {
	MessageID uuid.UUID `json:"messageId" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	ReadAt    time.Time `json:"readAt" gorm:"not null"`
}

func (ChatMessageRead) TableName() string {
	return "chat_message_reads"
}
