package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chats_dto "itconnect-backend/internal/features/chats/dto"
	chats_services "itconnect-backend/internal/features/chats/services"
	users_services "itconnect-backend/internal/features/users/services"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WsController struct {
	hub         *Hub
	chatService *chats_services.ChatService
	userService *users_services.UserService
}

func (c *WsController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", c.HandleConnection)
}

// HandleConnection
// @Summary Open a websocket connection
// @Description Authenticated realtime channel for chat events
// @Tags realtime
// @Param token query string true "JWT access token"
// @Success 101
// @Failure 401 {object} response.DTO
// @Router /ws [get]
func (c *WsController) HandleConnection(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		response.Error(ctx, http.StatusUnauthorized, "Missing token")
		return
	}

	user, err := c.userService.GetUserFromToken(token)
	if err != nil {
		response.Error(ctx, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "userId", user.ID, "error", err)
		return
	}

	client := newClient(c.hub, conn, user, c.handleFrame)

	go client.writePump()
	go client.readPump()
}

type subscriptionPayload struct {
	Topic string `json:"topic"`
}

func (c *WsController) handleFrame(client *Client, frame *InboundFrame) error {
	destination := frame.Destination

	switch {
	case destination == "subscribe":
		return c.handleSubscribe(client, frame.Payload)
	case destination == "unsubscribe":
		return c.handleUnsubscribe(client, frame.Payload)
	case strings.HasPrefix(destination, "chat.sendMessage/"):
		return c.handleSendMessage(client, destination, frame.Payload)
	case strings.HasPrefix(destination, "chat.typing/"):
		return c.handleTyping(client, destination, frame.Payload)
	case strings.HasPrefix(destination, "chat.readMessage/"):
		return c.handleReadMessage(client, destination)
	case strings.HasPrefix(destination, "chat.editMessage/"):
		return c.handleEditMessage(client, destination, frame.Payload)
	case strings.HasPrefix(destination, "chat.deleteMessage/"):
		return c.handleDeleteMessage(client, destination)
	default:
		return fmt.Errorf("unknown destination: %s", destination)
	}
}

func (c *WsController) handleSubscribe(client *Client, payload json.RawMessage) error {
	var request subscriptionPayload
	if err := json.Unmarshal(payload, &request); err != nil {
		return fmt.Errorf("invalid subscribe payload: %w", err)
	}

	chatID, err := chatIDFromTopic(request.Topic)
	if err != nil {
		return err
	}

	canAccess, err := c.chatService.CanAccessChat(chatID, client.user.ID)
	if err != nil {
		return err
	}

	if !canAccess {
		return fmt.Errorf("subscription to %s denied", request.Topic)
	}

	c.hub.Subscribe(request.Topic, client)

	return nil
}

func (c *WsController) handleUnsubscribe(client *Client, payload json.RawMessage) error {
	var request subscriptionPayload
	if err := json.Unmarshal(payload, &request); err != nil {
		return fmt.Errorf("invalid unsubscribe payload: %w", err)
	}

	c.hub.Unsubscribe(request.Topic, client)

	return nil
}

func (c *WsController) handleSendMessage(
	client *Client,
	destination string,
	payload json.RawMessage,
) error {
	chatID, err := destinationID(destination, 1)
	if err != nil {
		return err
	}

	var request chats_dto.SendMessageRequestDTO
	if err := json.Unmarshal(payload, &request); err != nil {
		return fmt.Errorf("invalid message payload: %w", err)
	}

	_, err = c.chatService.SendMessage(chatID, &request, client.user)

	return err
}

func (c *WsController) handleTyping(
	client *Client,
	destination string,
	payload json.RawMessage,
) error {
	chatID, err := destinationID(destination, 1)
	if err != nil {
		return err
	}

	var request chats_dto.TypingRequestDTO
	if err := json.Unmarshal(payload, &request); err != nil {
		return fmt.Errorf("invalid typing payload: %w", err)
	}

	return c.chatService.NotifyTyping(chatID, request.IsTyping, client.user)
}

func (c *WsController) handleReadMessage(client *Client, destination string) error {
	chatID, err := destinationID(destination, 1)
	if err != nil {
		return err
	}

	messageID, err := destinationID(destination, 2)
	if err != nil {
		return err
	}

	return c.chatService.MarkMessageAsRead(chatID, messageID, client.user)
}

func (c *WsController) handleEditMessage(
	client *Client,
	destination string,
	payload json.RawMessage,
) error {
	chatID, err := destinationID(destination, 1)
	if err != nil {
		return err
	}

	messageID, err := destinationID(destination, 2)
	if err != nil {
		return err
	}

	var request chats_dto.EditMessageRequestDTO
	if err := json.Unmarshal(payload, &request); err != nil {
		return fmt.Errorf("invalid edit payload: %w", err)
	}

	_, err = c.chatService.EditMessage(chatID, messageID, request.Content, client.user)

	return err
}

func (c *WsController) handleDeleteMessage(client *Client, destination string) error {
	chatID, err := destinationID(destination, 1)
	if err != nil {
		return err
	}

	messageID, err := destinationID(destination, 2)
	if err != nil {
		return err
	}

	return c.chatService.DeleteMessage(chatID, messageID, client.user)
}

// destinationID extracts the index-th path segment of a destination
// like "chat.editMessage/{chatId}/{messageId}" as a UUID.
func destinationID(destination string, index int) (uuid.UUID, error) {
	parts := strings.Split(destination, "/")
	if index >= len(parts) {
		return uuid.Nil, fmt.Errorf("malformed destination: %s", destination)
	}

	id, err := uuid.Parse(parts[index])
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed destination: %s", destination)
	}

	return id, nil
}

// chatIDFromTopic extracts the chat id out of topics shaped like
// "/topic/chat/{chatId}", "/topic/chat/{chatId}/typing" and
// "/topic/chat/{chatId}/messageRead".
func chatIDFromTopic(topic string) (uuid.UUID, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 4 || parts[0] != "" || parts[1] != "topic" || parts[2] != "chat" {
		return uuid.Nil, fmt.Errorf("unknown topic: %s", topic)
	}

	id, err := uuid.Parse(parts[3])
	if err != nil {
		return uuid.Nil, fmt.Errorf("unknown topic: %s", topic)
	}

	return id, nil
}
