package workspaces_controllers

import (
	"net/http"

	audit_logs "itconnect-backend/internal/features/audit_logs"
	users_middleware "itconnect-backend/internal/features/users/middleware"
	workspaces_dto "itconnect-backend/internal/features/workspaces/dto"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceController struct {
	workspaceService *workspaces_services.WorkspaceService
}

func (c *WorkspaceController) RegisterRoutes(router *gin.RouterGroup) {
	workspaceRoutes := router.Group("/workspaces")

	workspaceRoutes.POST("", c.CreateWorkspace)
	workspaceRoutes.GET("", c.GetWorkspaces)
	workspaceRoutes.GET("/:id", c.GetWorkspace)
	workspaceRoutes.PUT("/:id", c.UpdateWorkspace)
	workspaceRoutes.DELETE("/:id", c.DeleteWorkspace)
	workspaceRoutes.GET("/:id/audit-logs", c.GetWorkspaceAuditLogs)
}

// CreateWorkspace
// @Summary Create a new workspace
// @Description Create a workspace owned by the current user
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body workspaces_dto.CreateWorkspaceRequestDTO true "Workspace creation data"
// @Success 201 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Router /workspaces [post]
func (c *WorkspaceController) CreateWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request workspaces_dto.CreateWorkspaceRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	workspace, err := c.workspaceService.CreateWorkspace(&request, user)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, workspace)
}

// GetWorkspaces
// @Summary List user's workspaces
// @Description Get workspaces the user owns or is a member of
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workspaces_dto.ListWorkspacesResponseDTO
// @Failure 401 {object} response.DTO
// @Router /workspaces [get]
func (c *WorkspaceController) GetWorkspaces(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaces, err := c.workspaceService.GetUserWorkspaces(user)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to retrieve workspaces")
		return
	}

	ctx.JSON(http.StatusOK, workspaces)
}

// GetWorkspace
// @Summary Get workspace details
// @Description Get a workspace with its full member list
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id} [get]
func (c *WorkspaceController) GetWorkspace(ctx *gin.Context) {
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

	workspace, err := c.workspaceService.GetWorkspace(workspaceID, user)
	if err != nil {
		if err.Error() == "workspace not found" {
			response.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, workspace)
}

// UpdateWorkspace
// @Summary Update workspace
// @Description Update workspace name and description (owner only)
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body workspaces_dto.UpdateWorkspaceRequestDTO true "Workspace update data"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id} [put]
func (c *WorkspaceController) UpdateWorkspace(ctx *gin.Context) {
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

	var request workspaces_dto.UpdateWorkspaceRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	workspace, err := c.workspaceService.UpdateWorkspace(workspaceID, &request, user)
	if err != nil {
		switch err.Error() {
		case "workspace not found":
			response.Error(ctx, http.StatusNotFound, err.Error())
		case "only workspace owner can update workspace":
			response.Error(ctx, http.StatusForbidden, err.Error())
		default:
			response.Error(ctx, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx.JSON(http.StatusOK, workspace)
}

// DeleteWorkspace
// @Summary Delete workspace
// @Description Delete a workspace and everything in it (owner only)
// @Tags workspaces
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id} [delete]
func (c *WorkspaceController) DeleteWorkspace(ctx *gin.Context) {
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

	if err := c.workspaceService.DeleteWorkspace(workspaceID, user); err != nil {
		switch err.Error() {
		case "workspace not found":
			response.Error(ctx, http.StatusNotFound, err.Error())
		case "only workspace owner can delete workspace":
			response.Error(ctx, http.StatusForbidden, err.Error())
		default:
			response.Error(ctx, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.Ok(ctx, "Workspace deleted successfully")
}

// GetWorkspaceAuditLogs
// @Summary Get workspace audit logs
// @Description Retrieve audit logs for a workspace (member access required)
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/audit-logs [get]
func (c *WorkspaceController) GetWorkspaceAuditLogs(ctx *gin.Context) {
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

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	logs, err := c.workspaceService.GetWorkspaceAuditLogs(workspaceID, user, request)
	if err != nil {
		if err.Error() == "workspace not found" {
			response.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, logs)
}
