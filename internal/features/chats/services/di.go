package chats_services

import (
	audit_logs "itconnect-backend/internal/features/audit_logs"
	chats_repositories "itconnect-backend/internal/features/chats/repositories"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"
)

var chatService = &ChatService{
	chatRepository:    &chats_repositories.ChatRepository{},
	messageRepository: &chats_repositories.MessageRepository{},
	userService:       users_services.GetUserService(),
	workspaceService:  workspaces_services.GetWorkspaceService(),
	auditLogService:   audit_logs.GetAuditLogService(),
}

func GetChatService() *ChatService {
	return chatService
}

// SetupDependencies registers cross-feature listeners.
func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(chatService)
}
