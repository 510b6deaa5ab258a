package chats_repositories

import (
	"errors"
	"fmt"
	"time"

	chats_models "itconnect-backend/internal/features/chats/models"
	"itconnect-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository struct{}

func (r *MessageRepository) CreateMessage(message *chats_models.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	message.SentAt = time.Now().UTC()

	return storage.GetDb().Create(message).Error
}

func (r *MessageRepository) GetMessageByID(
	messageID uuid.UUID,
) (*chats_models.ChatMessage, error) {
	var message chats_models.ChatMessage

	if err := storage.GetDb().Where("id = ?", messageID).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &message, nil
}

// GetMessagesPage returns one page of a chat's history in ascending
// SentAt order along with the total message count.
func (r *MessageRepository) GetMessagesPage(
	chatID uuid.UUID,
	page int,
	size int,
) ([]*chats_models.ChatMessage, int64, error) {
	var total int64
	if err := storage.GetDb().
		Model(&chats_models.ChatMessage{}).
		Where("chat_id = ?", chatID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	var messages []*chats_models.ChatMessage
	if err := storage.GetDb().
		Where("chat_id = ?", chatID).
		Order("sent_at ASC").
		Offset(page * size).
		Limit(size).
		Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get messages: %w", err)
	}

	return messages, total, nil
}

func (r *MessageRepository) GetLastMessage(
	chatID uuid.UUID,
) (*chats_models.ChatMessage, error) {
	var message chats_models.ChatMessage

	if err := storage.GetDb().
		Where("chat_id = ?", chatID).
		Order("sent_at DESC").
		First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get last message: %w", err)
	}

	return &message, nil
}

func (r *MessageRepository) UpdateMessage(message *chats_models.ChatMessage) error {
	return storage.GetDb().Save(message).Error
}

func (r *MessageRepository) DeleteMessage(messageID uuid.UUID) error {
	return storage.GetDb().
		Where("id = ?", messageID).
		Delete(&chats_models.ChatMessage{}).Error
}

// MarkAsRead records the reader, repeated calls are no-ops.
func (r *MessageRepository) MarkAsRead(messageID uuid.UUID, userID uuid.UUID) error {
	read := &chats_models.ChatMessageRead{
		MessageID: messageID,
		UserID:    userID,
		ReadAt:    time.Now().UTC(),
	}

	return storage.GetDb().
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(read).Error
}

func (r *MessageRepository) GetReaderIDs(messageID uuid.UUID) ([]uuid.UUID, error) {
	var readerIDs []uuid.UUID

	if err := storage.GetDb().
		Model(&chats_models.ChatMessageRead{}).
		Where("message_id = ?", messageID).
		Pluck("user_id", &readerIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to get message readers: %w", err)
	}

	return readerIDs, nil
}

func (r *MessageRepository) DeleteWorkspaceMessages(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where(
			"chat_id IN (?)",
			storage.GetDb().
				Model(&chats_models.Chat{}).
				Select("id").
				Where("workspace_id = ?", workspaceID),
		).
		Delete(&chats_models.ChatMessage{}).Error
}
