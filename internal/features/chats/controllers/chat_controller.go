package chats_controllers

import (
	"errors"
	"net/http"
	"strconv"

	chats_dto "itconnect-backend/internal/features/chats/dto"
	chats_services "itconnect-backend/internal/features/chats/services"
	users_middleware "itconnect-backend/internal/features/users/middleware"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatController struct {
	chatService *chats_services.ChatService
}

func (c *ChatController) RegisterRoutes(router *gin.RouterGroup) {
	chatRoutes := router.Group("/workspaces/:id/chats")

	chatRoutes.POST("", c.CreateChat)
	chatRoutes.GET("", c.GetChatsByWorkspace)
	chatRoutes.GET("/:chatId", c.GetChat)
	chatRoutes.PUT("/:chatId", c.UpdateChat)
	chatRoutes.DELETE("/:chatId", c.DeleteChat)
	chatRoutes.POST("/:chatId/messages", c.SendMessage)
	chatRoutes.GET("/:chatId/messages", c.GetMessages)
	chatRoutes.POST("/:chatId/messages/:messageId/read", c.MarkMessageAsRead)

	router.GET("/chats/all", c.GetAllUserChats)
}

func mapChatError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, chats_services.ErrNotFound):
		response.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, chats_services.ErrAccessDenied):
		response.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, chats_services.ErrEmptyContent):
		response.Error(ctx, http.StatusBadRequest, err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, err.Error())
	}
}

// CreateChat
// @Summary Create a chat
// @Description Create a chat in a workspace
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body chats_dto.CreateChatRequestDTO true "Chat creation data"
// @Success 201 {object} chats_dto.ChatResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats [post]
func (c *ChatController) CreateChat(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid workspace ID")
		return
	}

	var request chats_dto.CreateChatRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	chat, err := c.chatService.CreateChat(workspaceID, &request, user)
	if err != nil {
		mapChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, chat)
}

// GetChatsByWorkspace
// @Summary List chats in a workspace
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {array} chats_dto.ChatResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats [get]
func (c *ChatController) GetChatsByWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid workspace ID")
		return
	}

	chats, err := c.chatService.GetChatsByWorkspace(workspaceID, user)
	if err != nil {
		mapChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chats)
}

// GetAllUserChats
// @Summary List chats across all accessible workspaces
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} chats_dto.ChatResponseDTO
// @Failure 401 {object} response.DTO
// @Router /chats/all [get]
func (c *ChatController) GetAllUserChats(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	chats, err := c.chatService.GetAllUserChats(user)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to retrieve chats")
		return
	}

	ctx.JSON(http.StatusOK, chats)
}

// GetChat
// @Summary Get a chat
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param chatId path string true "Chat ID"
// @Success 200 {object} chats_dto.ChatResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats/{chatId} [get]
func (c *ChatController) GetChat(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	chatID, err := uuid.Parse(ctx.Param("chatId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	chat, err := c.chatService.GetChat(chatID, user)
	if err != nil {
		mapChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chat)
}

// UpdateChat
// @Summary Rename a chat
// @Description Update chat name or description (workspace owner or chat creator)
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param chatId path string true "Chat ID"
// @Param request body chats_dto.UpdateChatRequestDTO true "Chat update data"
// @Success 200 {object} chats_dto.ChatResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats/{chatId} [put]
func (c *ChatController) UpdateChat(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	chatID, err := uuid.Parse(ctx.Param("chatId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	var request chats_dto.UpdateChatRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	chat, err := c.chatService.UpdateChat(chatID, &request, user)
	if err != nil {
		mapChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chat)
}

// DeleteChat
// @Summary Delete a chat
// @Description Delete a chat and its messages (workspace owner or chat creator)
// @Tags chats
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param chatId path string true "Chat ID"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats/{chatId} [delete]
func (c *ChatController) DeleteChat(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	chatID, err := uuid.Parse(ctx.Param("chatId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	if err := c.chatService.DeleteChat(chatID, user); err != nil {
		mapChatError(ctx, err)
		return
	}

	response.Ok(ctx, "Chat deleted successfully")
}

// SendMessage
// @Summary Send a message
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param chatId path string true "Chat ID"
// @Param request body chats_dto.SendMessageRequestDTO true "Message data"
// @Success 200 {object} chats_dto.ChatMessageResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats/{chatId}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	chatID, err := uuid.Parse(ctx.Param("chatId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	var request chats_dto.SendMessageRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	message, err := c.chatService.SendMessage(chatID, &request, user)
	if err != nil {
		mapChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, message)
}

// GetMessages
// @Summary Get chat history
// @Description Paged chat history in ascending send order
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param chatId path string true "Chat ID"
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} chats_dto.MessagePageResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats/{chatId}/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	chatID, err := uuid.Parse(ctx.Param("chatId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))

	messages, err := c.chatService.GetMessagesByChat(chatID, page, size, user)
	if err != nil {
		mapChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// MarkMessageAsRead
// @Summary Mark a message as read
// @Tags chats
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param chatId path string true "Chat ID"
// @Param messageId path string true "Message ID"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/chats/{chatId}/messages/{messageId}/read [post]
func (c *ChatController) MarkMessageAsRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	chatID, err := uuid.Parse(ctx.Param("chatId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	messageID, err := uuid.Parse(ctx.Param("messageId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid message ID")
		return
	}

	if err := c.chatService.MarkMessageAsRead(chatID, messageID, user); err != nil {
		mapChatError(ctx, err)
		return
	}

	response.Ok(ctx, "Message marked as read")
}
