package notifications

import (
	"net/http"

	users_middleware "itconnect-backend/internal/features/users/middleware"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationController struct {
	notificationService *NotificationService
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	notificationRoutes := router.Group("/notifications")

	notificationRoutes.GET("", c.GetNotifications)
	notificationRoutes.GET("/unread", c.GetUnreadNotifications)
	notificationRoutes.GET("/unread/count", c.GetUnreadCount)
	notificationRoutes.GET("/workspace-invitations", c.GetWorkspaceInvitations)
	notificationRoutes.POST("/:id/accept", c.AcceptInvitation)
	notificationRoutes.POST("/:id/decline", c.DeclineInvitation)
	notificationRoutes.POST("/:id/read", c.MarkAsRead)
	notificationRoutes.POST("/read-all", c.MarkAllAsRead)
	notificationRoutes.DELETE("/:id", c.DeleteNotification)

	// invitations are created against a workspace
	router.POST("/workspaces/:id/invitations", c.CreateInvitation)
}

func mapNotificationError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "notification not found", "workspace not found":
		response.Error(ctx, http.StatusNotFound, err.Error())
	case "insufficient permissions to invite at this role":
		response.Error(ctx, http.StatusForbidden, err.Error())
	default:
		response.Error(ctx, http.StatusBadRequest, err.Error())
	}
}

// CreateInvitation
// @Summary Invite a user to a workspace
// @Description Create a workspace invitation notification for a user by email
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body CreateInvitationRequestDTO true "Invitation data"
// @Success 200 {object} Notification
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/invitations [post]
func (c *NotificationController) CreateInvitation(ctx *gin.Context) {
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

	var request CreateInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	notification, err := c.notificationService.CreateWorkspaceInvitation(
		workspaceID,
		&request,
		user,
	)
	if err != nil {
		mapNotificationError(ctx, err)
		return
	}

	if notification == nil {
		// unknown email or already a member, nothing was created
		response.Ok(ctx, "Invitation processed")
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

// GetNotifications
// @Summary List all notifications for the current user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Notification
// @Failure 401 {object} response.DTO
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notifications, err := c.notificationService.GetAll(user)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// GetUnreadNotifications
// @Summary List unread notifications for the current user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Notification
// @Failure 401 {object} response.DTO
// @Router /notifications/unread [get]
func (c *NotificationController) GetUnreadNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notifications, err := c.notificationService.GetUnread(user)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// GetUnreadCount
// @Summary Count unread notifications for the current user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadCountResponseDTO
// @Failure 401 {object} response.DTO
// @Router /notifications/unread/count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	count, err := c.notificationService.GetUnreadCount(user)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to count notifications")
		return
	}

	ctx.JSON(http.StatusOK, UnreadCountResponseDTO{Count: count})
}

// GetWorkspaceInvitations
// @Summary List active workspace invitations for the current user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Notification
// @Failure 401 {object} response.DTO
// @Router /notifications/workspace-invitations [get]
func (c *NotificationController) GetWorkspaceInvitations(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	invitations, err := c.notificationService.GetWorkspaceInvitations(user)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to retrieve invitations")
		return
	}

	ctx.JSON(http.StatusOK, invitations)
}

// AcceptInvitation
// @Summary Accept a workspace invitation
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /notifications/{id}/accept [post]
func (c *NotificationController) AcceptInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := c.notificationService.AcceptInvitation(notificationID, user); err != nil {
		mapNotificationError(ctx, err)
		return
	}

	response.Ok(ctx, "Invitation accepted")
}

// DeclineInvitation
// @Summary Decline a workspace invitation
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /notifications/{id}/decline [post]
func (c *NotificationController) DeclineInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := c.notificationService.DeclineInvitation(notificationID, user); err != nil {
		mapNotificationError(ctx, err)
		return
	}

	response.Ok(ctx, "Invitation declined")
}

// MarkAsRead
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := c.notificationService.MarkAsRead(notificationID, user); err != nil {
		mapNotificationError(ctx, err)
		return
	}

	response.Ok(ctx, "Notification marked as read")
}

// MarkAllAsRead
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := c.notificationService.MarkAllAsRead(user); err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}

	response.Ok(ctx, "All notifications marked as read")
}

// DeleteNotification
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := c.notificationService.Delete(notificationID, user); err != nil {
		mapNotificationError(ctx, err)
		return
	}

	response.Ok(ctx, "Notification deleted")
}
