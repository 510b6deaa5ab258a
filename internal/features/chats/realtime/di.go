package realtime

import (
	chats_services "itconnect-backend/internal/features/chats/services"
	users_services "itconnect-backend/internal/features/users/services"
)

var hub = NewHub()

var wsController = &WsController{
	hub:         hub,
	chatService: chats_services.GetChatService(),
	userService: users_services.GetUserService(),
}

func GetHub() *Hub {
	return hub
}

func GetWsController() *WsController {
	return wsController
}

// SetupDependencies points the chat service's broadcasts at the hub.
func SetupDependencies() {
	chats_services.GetChatService().SetPublisher(hub)
}
