package chats_repositories

import (
	"errors"
	"fmt"
	"time"

	chats_models "itconnect-backend/internal/features/chats/models"
	"itconnect-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository struct{}

func (r *ChatRepository) CreateChat(chat *chats_models.Chat) error {
	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}

	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	return storage.GetDb().Create(chat).Error
}

func (r *ChatRepository) GetChatByID(chatID uuid.UUID) (*chats_models.Chat, error) {
	var chat chats_models.Chat

	if err := storage.GetDb().Where("id = ?", chatID).First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return &chat, nil
}

func (r *ChatRepository) GetChatsByWorkspace(
	workspaceID uuid.UUID,
) ([]*chats_models.Chat, error) {
	var chats []*chats_models.Chat

	if err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("updated_at DESC").
		Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("failed to get workspace chats: %w", err)
	}

	return chats, nil
}

// GetUserChats returns chats from every workspace the user owns or is a
// member of.
func (r *ChatRepository) GetUserChats(userID uuid.UUID) ([]*chats_models.Chat, error) {
	var chats []*chats_models.Chat

	if err := storage.GetDb().
		Distinct("chats.*").
		Joins("JOIN workspaces w ON w.id = chats.workspace_id").
		Joins("LEFT JOIN workspace_memberships wm ON wm.workspace_id = w.id AND wm.user_id = ?", userID).
		Where("w.owner_id = ? OR wm.user_id IS NOT NULL", userID).
		Order("chats.updated_at DESC").
		Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("failed to get user chats: %w", err)
	}

	return chats, nil
}

func (r *ChatRepository) UpdateChat(chat *chats_models.Chat) error {
	chat.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(chat).Error
}

// TouchChat bumps the chat's UpdatedAt so chat lists sort by activity.
func (r *ChatRepository) TouchChat(chatID uuid.UUID) error {
	return storage.GetDb().
		Model(&chats_models.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *ChatRepository) DeleteChat(chatID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", chatID).Delete(&chats_models.Chat{}).Error
}

func (r *ChatRepository) DeleteWorkspaceChats(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Delete(&chats_models.Chat{}).Error
}
