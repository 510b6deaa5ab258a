package chats_services

import (
	"fmt"
	"strings"
	"time"

	audit_logs "itconnect-backend/internal/features/audit_logs"
	chats_dto "itconnect-backend/internal/features/chats/dto"
	chats_models "itconnect-backend/internal/features/chats/models"
	chats_repositories "itconnect-backend/internal/features/chats/repositories"
	users_models "itconnect-backend/internal/features/users/models"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_access "itconnect-backend/internal/features/workspaces/access"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
)

const parentPreviewLength = 100

// Publisher pushes a payload to everyone currently subscribed to a
// topic. Delivery is best effort.
type Publisher interface {
	Publish(topic string, payload any)
}

type ChatService struct {
	chatRepository    *chats_repositories.ChatRepository
	messageRepository *chats_repositories.MessageRepository
	userService       *users_services.UserService
	workspaceService  *workspaces_services.WorkspaceService
	auditLogService   *audit_logs.AuditLogService
	publisher         Publisher
}

func (s *ChatService) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

func chatTopic(chatID uuid.UUID) string {
	return "/topic/chat/" + chatID.String()
}

func (s *ChatService) publish(topic string, payload any) {
	if s.publisher != nil {
		s.publisher.Publish(topic, payload)
	}
}

func (s *ChatService) CreateChat(
	workspaceID uuid.UUID,
	request *chats_dto.CreateChatRequestDTO,
	creator *users_models.User,
) (*chats_dto.ChatResponseDTO, error) {
	standing, workspace, err := s.workspaceService.ResolveStanding(workspaceID, creator.ID)
	if err != nil {
		return nil, err
	}

	if workspace == nil || !workspaces_access.CanReadWorkspace(standing) {
		return nil, ErrNotFound
	}

	if strings.TrimSpace(request.Name) == "" {
		return nil, ErrEmptyContent
	}

	chat := &chats_models.Chat{
		WorkspaceID: workspaceID,
		Name:        request.Name,
		Description: request.Description,
		CreatedBy:   creator.ID,
	}

	if err := s.chatRepository.CreateChat(chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Chat created: %s", chat.Name),
		&creator.ID,
		&workspaceID,
	)

	return s.toChatDTO(chat)
}

func (s *ChatService) GetChat(
	chatID uuid.UUID,
	user *users_models.User,
) (*chats_dto.ChatResponseDTO, error) {
	chat, standing, err := s.resolveChatStanding(chatID, user.ID)
	if err != nil {
		return nil, err
	}

	if chat == nil || !workspaces_access.CanReadWorkspace(standing) {
		return nil, ErrNotFound
	}

	return s.toChatDTO(chat)
}

func (s *ChatService) GetChatsByWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) ([]*chats_dto.ChatResponseDTO, error) {
	standing, workspace, err := s.workspaceService.ResolveStanding(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if workspace == nil || !workspaces_access.CanReadWorkspace(standing) {
		return nil, ErrNotFound
	}

	chats, err := s.chatRepository.GetChatsByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	return s.toChatDTOs(chats)
}

func (s *ChatService) GetAllUserChats(
	user *users_models.User,
) ([]*chats_dto.ChatResponseDTO, error) {
	chats, err := s.chatRepository.GetUserChats(user.ID)
	if err != nil {
		return nil, err
	}

	return s.toChatDTOs(chats)
}

func (s *ChatService) UpdateChat(
	chatID uuid.UUID,
	request *chats_dto.UpdateChatRequestDTO,
	user *users_models.User,
) (*chats_dto.ChatResponseDTO, error) {
	chat, standing, err := s.resolveChatStanding(chatID, user.ID)
	if err != nil {
		return nil, err
	}

	if chat == nil || !workspaces_access.CanReadWorkspace(standing) {
		return nil, ErrNotFound
	}

	if standing != workspaces_access.StandingOwner && chat.CreatedBy != user.ID {
		return nil, ErrAccessDenied
	}

	// blank or absent fields keep their previous values
	if request.Name != nil && strings.TrimSpace(*request.Name) != "" {
		chat.Name = *request.Name
	}
	if request.Description != nil {
		chat.Description = *request.Description
	}

	if err := s.chatRepository.UpdateChat(chat); err != nil {
		return nil, fmt.Errorf("failed to update chat: %w", err)
	}

	return s.toChatDTO(chat)
}

func (s *ChatService) DeleteChat(chatID uuid.UUID, user *users_models.User) error {
	chat, standing, err := s.resolveChatStanding(chatID, user.ID)
	if err != nil {
		return err
	}

	if chat == nil || !workspaces_access.CanReadWorkspace(standing) {
		return ErrNotFound
	}

	if standing != workspaces_access.StandingOwner && chat.CreatedBy != user.ID {
		return ErrAccessDenied
	}

	if err := s.chatRepository.DeleteChat(chatID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Chat deleted: %s", chat.Name),
		&user.ID,
		&chat.WorkspaceID,
	)

	return nil
}

func (s *ChatService) SendMessage(
	chatID uuid.UUID,
	request *chats_dto.SendMessageRequestDTO,
	sender *users_models.User,
) (*chats_dto.ChatMessageResponseDTO, error) {
	chat, standing, err := s.resolveChatStanding(chatID, sender.ID)
	if err != nil {
		return nil, err
	}

	if chat == nil {
		return nil, ErrNotFound
	}

	if !workspaces_access.CanSendChatMessage(standing) {
		return nil, ErrAccessDenied
	}

	if strings.TrimSpace(request.Content) == "" && request.FileURL == nil {
		return nil, ErrEmptyContent
	}

	message := &chats_models.ChatMessage{
		ChatID:          chatID,
		SenderID:        sender.ID,
		Content:         request.Content,
		ParentMessageID: request.ParentMessageID,
		FileURL:         request.FileURL,
		FileName:        request.FileName,
		FileType:        request.FileType,
		FileSize:        request.FileSize,
	}

	if err := s.messageRepository.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if err := s.chatRepository.TouchChat(chatID); err != nil {
		return nil, fmt.Errorf("failed to touch chat: %w", err)
	}

	dto, err := s.toMessageDTO(message)
	if err != nil {
		return nil, err
	}

	s.publish(chatTopic(chatID), &chats_dto.ChatEventDTO{
		Type:    chats_dto.EventMessageSent,
		Message: dto,
	})

	return dto, nil
}

func (s *ChatService) EditMessage(
	chatID uuid.UUID,
	messageID uuid.UUID,
	content string,
	user *users_models.User,
) (*chats_dto.ChatMessageResponseDTO, error) {
	message, err := s.messageRepository.GetMessageByID(messageID)
	if err != nil {
		return nil, err
	}

	if message == nil || message.ChatID != chatID {
		return nil, ErrNotFound
	}

	if message.SenderID != user.ID {
		return nil, ErrAccessDenied
	}

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	now := time.Now().UTC()
	message.Content = content
	message.IsEdited = true
	message.EditedAt = &now

	if err := s.messageRepository.UpdateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to edit message: %w", err)
	}

	if err := s.chatRepository.TouchChat(chatID); err != nil {
		return nil, fmt.Errorf("failed to touch chat: %w", err)
	}

	dto, err := s.toMessageDTO(message)
	if err != nil {
		return nil, err
	}

	s.publish(chatTopic(chatID), &chats_dto.ChatEventDTO{
		Type:    chats_dto.EventMessageEdited,
		Message: dto,
	})

	return dto, nil
}

func (s *ChatService) DeleteMessage(
	chatID uuid.UUID,
	messageID uuid.UUID,
	user *users_models.User,
) error {
	message, err := s.messageRepository.GetMessageByID(messageID)
	if err != nil {
		return err
	}

	if message == nil || message.ChatID != chatID {
		return ErrNotFound
	}

	if message.SenderID != user.ID {
		return ErrAccessDenied
	}

	if err := s.messageRepository.DeleteMessage(messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if err := s.chatRepository.TouchChat(chatID); err != nil {
		return fmt.Errorf("failed to touch chat: %w", err)
	}

	s.publish(chatTopic(chatID), &chats_dto.ChatEventDTO{
		Type:      chats_dto.EventMessageDeleted,
		MessageID: &messageID,
	})

	return nil
}

func (s *ChatService) MarkMessageAsRead(
	chatID uuid.UUID,
	messageID uuid.UUID,
	user *users_models.User,
) error {
	chat, standing, err := s.resolveChatStanding(chatID, user.ID)
	if err != nil {
		return err
	}

	if chat == nil || !workspaces_access.CanReadWorkspace(standing) {
		return ErrNotFound
	}

	message, err := s.messageRepository.GetMessageByID(messageID)
	if err != nil {
		return err
	}

	if message == nil || message.ChatID != chatID {
		return ErrNotFound
	}

	if err := s.messageRepository.MarkAsRead(messageID, user.ID); err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}

	s.publish(chatTopic(chatID)+"/messageRead", &chats_dto.MessageReadEventDTO{
		MessageID: messageID,
		UserID:    user.ID,
	})

	return nil
}

// GetMessagesByChat returns one ascending page of chat history. A user
// without access gets an empty page rather than an error.
func (s *ChatService) GetMessagesByChat(
	chatID uuid.UUID,
	page int,
	size int,
	user *users_models.User,
) (*chats_dto.MessagePageResponseDTO, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	chat, standing, err := s.resolveChatStanding(chatID, user.ID)
	if err != nil {
		return nil, err
	}

	if chat == nil {
		return nil, ErrNotFound
	}

	if !workspaces_access.CanReadWorkspace(standing) {
		return &chats_dto.MessagePageResponseDTO{
			Content: []chats_dto.ChatMessageResponseDTO{},
			Page:    page,
			Size:    size,
		}, nil
	}

	messages, total, err := s.messageRepository.GetMessagesPage(chatID, page, size)
	if err != nil {
		return nil, err
	}

	content := make([]chats_dto.ChatMessageResponseDTO, 0, len(messages))
	for _, message := range messages {
		dto, err := s.toMessageDTO(message)
		if err != nil {
			return nil, err
		}

		content = append(content, *dto)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return &chats_dto.MessagePageResponseDTO{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// NotifyTyping broadcasts a typing indicator, nothing is persisted.
// isTyping false announces that the user stopped typing.
func (s *ChatService) NotifyTyping(chatID uuid.UUID, isTyping bool, user *users_models.User) error {
	canAccess, err := s.CanAccessChat(chatID, user.ID)
	if err != nil {
		return err
	}

	if !canAccess {
		return ErrAccessDenied
	}

	s.publish(chatTopic(chatID)+"/typing", &chats_dto.TypingEventDTO{
		ChatID:   chatID,
		UserID:   user.ID,
		Username: user.Username,
		IsTyping: isTyping,
	})

	return nil
}

// CanAccessChat reports whether the user may read the chat. Used to
// gate websocket subscriptions and attachment downloads.
func (s *ChatService) CanAccessChat(chatID uuid.UUID, userID uuid.UUID) (bool, error) {
	chat, standing, err := s.resolveChatStanding(chatID, userID)
	if err != nil {
		return false, err
	}

	return chat != nil && workspaces_access.CanReadWorkspace(standing), nil
}

func (s *ChatService) GetMessageByID(
	messageID uuid.UUID,
) (*chats_models.ChatMessage, error) {
	return s.messageRepository.GetMessageByID(messageID)
}

// OnBeforeWorkspaceDeletion removes the workspace's messages and chats.
func (s *ChatService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	if err := s.messageRepository.DeleteWorkspaceMessages(workspaceID); err != nil {
		return err
	}

	return s.chatRepository.DeleteWorkspaceChats(workspaceID)
}

func (s *ChatService) resolveChatStanding(
	chatID uuid.UUID,
	userID uuid.UUID,
) (*chats_models.Chat, workspaces_access.Standing, error) {
	chat, err := s.chatRepository.GetChatByID(chatID)
	if err != nil {
		return nil, workspaces_access.StandingNone, err
	}

	if chat == nil {
		return nil, workspaces_access.StandingNone, nil
	}

	standing, _, err := s.workspaceService.ResolveStanding(chat.WorkspaceID, userID)
	if err != nil {
		return nil, workspaces_access.StandingNone, err
	}

	return chat, standing, nil
}

func (s *ChatService) toChatDTOs(
	chats []*chats_models.Chat,
) ([]*chats_dto.ChatResponseDTO, error) {
	result := make([]*chats_dto.ChatResponseDTO, 0, len(chats))
	for _, chat := range chats {
		dto, err := s.toChatDTO(chat)
		if err != nil {
			return nil, err
		}

		result = append(result, dto)
	}

	return result, nil
}

func (s *ChatService) toChatDTO(
	chat *chats_models.Chat,
) (*chats_dto.ChatResponseDTO, error) {
	lastMessage, err := s.messageRepository.GetLastMessage(chat.ID)
	if err != nil {
		return nil, err
	}

	var lastMessageDTO *chats_dto.ChatMessageResponseDTO
	if lastMessage != nil {
		lastMessageDTO, err = s.toMessageDTO(lastMessage)
		if err != nil {
			return nil, err
		}
	}

	return &chats_dto.ChatResponseDTO{
		ID:          chat.ID,
		WorkspaceID: chat.WorkspaceID,
		Name:        chat.Name,
		Description: chat.Description,
		CreatedBy:   chat.CreatedBy,
		CreatedAt:   chat.CreatedAt,
		UpdatedAt:   chat.UpdatedAt,
		LastMessage: lastMessageDTO,
	}, nil
}

func (s *ChatService) toMessageDTO(
	message *chats_models.ChatMessage,
) (*chats_dto.ChatMessageResponseDTO, error) {
	senderName, err := s.getUsername(message.SenderID)
	if err != nil {
		return nil, err
	}

	readerIDs, err := s.messageRepository.GetReaderIDs(message.ID)
	if err != nil {
		return nil, err
	}

	parentPreview, err := s.buildParentPreview(message.ParentMessageID)
	if err != nil {
		return nil, err
	}

	return &chats_dto.ChatMessageResponseDTO{
		ID:            message.ID,
		ChatID:        message.ChatID,
		SenderID:      message.SenderID,
		SenderName:    senderName,
		Content:       message.Content,
		ParentMessage: parentPreview,
		FileURL:       message.FileURL,
		FileName:      message.FileName,
		FileType:      message.FileType,
		FileSize:      message.FileSize,
		IsEdited:      message.IsEdited,
		SentAt:        message.SentAt,
		EditedAt:      message.EditedAt,
		ReadByUserIDs: readerIDs,
	}, nil
}

// buildParentPreview resolves a reply target at read time, a deleted
// parent simply yields no preview.
func (s *ChatService) buildParentPreview(
	parentMessageID *uuid.UUID,
) (*chats_dto.ParentMessagePreviewDTO, error) {
	if parentMessageID == nil {
		return nil, nil
	}

	parent, err := s.messageRepository.GetMessageByID(*parentMessageID)
	if err != nil {
		return nil, err
	}

	if parent == nil {
		return nil, nil
	}

	senderName, err := s.getUsername(parent.SenderID)
	if err != nil {
		return nil, err
	}

	preview := parent.Content
	if runes := []rune(preview); len(runes) > parentPreviewLength {
		preview = string(runes[:parentPreviewLength])
	}

	return &chats_dto.ParentMessagePreviewDTO{
		ID:             parent.ID,
		SenderName:     senderName,
		ContentPreview: preview,
	}, nil
}

func (s *ChatService) getUsername(userID uuid.UUID) (string, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	if user == nil {
		return "", nil
	}

	return user.Username, nil
}
