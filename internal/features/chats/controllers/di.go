package chats_controllers

import (
	chats_services "itconnect-backend/internal/features/chats/services"
)

var chatController = &ChatController{chats_services.GetChatService()}

func GetChatController() *ChatController {
	return chatController
}
