package chats_dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequestDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateChatRequestDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ChatResponseDTO struct {
	ID          uuid.UUID               `json:"id"`
	WorkspaceID uuid.UUID               `json:"workspaceId"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	CreatedBy   uuid.UUID               `json:"createdBy"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	LastMessage *ChatMessageResponseDTO `json:"lastMessage"`
}

type SendMessageRequestDTO struct {
	Content         string     `json:"content"`
	ParentMessageID *uuid.UUID `json:"parentMessageId"`
	FileURL         *string    `json:"fileUrl"`
	FileName        *string    `json:"fileName"`
	FileType        *string    `json:"fileType"`
	FileSize        *int64     `json:"fileSize"`
}

type EditMessageRequestDTO struct {
	Content string `json:"content" binding:"required"`
}

// ParentMessagePreviewDTO is a reply target rendered inline with the
// message, computed at read time from the current parent row.
type ParentMessagePreviewDTO struct {
	ID             uuid.UUID `json:"id"`
	SenderName     string    `json:"senderName"`
	ContentPreview string    `json:"contentPreview"`
}

type ChatMessageResponseDTO struct {
	ID            uuid.UUID                `json:"id"`
	ChatID        uuid.UUID                `json:"chatId"`
	SenderID      uuid.UUID                `json:"senderId"`
	SenderName    string                   `json:"senderName"`
	Content       string                   `json:"content"`
	ParentMessage *ParentMessagePreviewDTO `json:"parentMessage"`
	FileURL       *string                  `json:"fileUrl"`
	FileName      *string                  `json:"fileName"`
	FileType      *string                  `json:"fileType"`
	FileSize      *int64                   `json:"fileSize"`
	IsEdited      bool                     `json:"isEdited"`
	SentAt        time.Time                `json:"sentAt"`
	EditedAt      *time.Time               `json:"editedAt"`
	ReadByUserIDs []uuid.UUID              `json:"readByUserIds"`
}

// MessagePageResponseDTO is the paged envelope for chat history.
type MessagePageResponseDTO struct {
	Content       []ChatMessageResponseDTO `json:"content"`
	Page          int                      `json:"page"`
	Size          int                      `json:"size"`
	TotalElements int64                    `json:"totalElements"`
	TotalPages    int                      `json:"totalPages"`
}

// Chat event types pushed to websocket subscribers.
const (
	EventMessageSent    = "MESSAGE_SENT"
	EventMessageEdited  = "MESSAGE_EDITED"
	EventMessageDeleted = "MESSAGE_DELETED"
)

type ChatEventDTO struct {
	Type      string                  `json:"type"`
	Message   *ChatMessageResponseDTO `json:"message,omitempty"`
	MessageID *uuid.UUID              `json:"messageId,omitempty"`
}

type MessageReadEventDTO struct {
	MessageID uuid.UUID `json:"messageId"`
	UserID    uuid.UUID `json:"userId"`
}

type TypingRequestDTO struct {
	IsTyping bool `json:"isTyping"`
}

type TypingEventDTO struct {
	ChatID   uuid.UUID `json:"chatId"`
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	IsTyping bool      `json:"isTyping"`
}
