package workspaces_controllers

import (
	"net/http"

	users_middleware "itconnect-backend/internal/features/users/middleware"
	workspaces_dto "itconnect-backend/internal/features/workspaces/dto"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *workspaces_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	memberRoutes := router.Group("/workspaces/:id/members")

	memberRoutes.POST("", c.AddMember)
	memberRoutes.DELETE("/:userId", c.RemoveMember)
	memberRoutes.PUT("/:userId/role", c.ChangeMemberRole)
}

func mapMembershipError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "workspace not found":
		response.Error(ctx, http.StatusNotFound, err.Error())
	case "insufficient permissions to manage members",
		"only workspace owner can remove members",
		"only workspace owner can change member roles":
		response.Error(ctx, http.StatusForbidden, err.Error())
	default:
		response.Error(ctx, http.StatusBadRequest, err.Error())
	}
}

// AddMember
// @Summary Add member to workspace
// @Description Add a user to the workspace, re-adding an existing member overwrites the role
// @Tags workspace-membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body workspaces_dto.AddMemberRequestDTO true "Member addition data"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
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

	var request workspaces_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := c.membershipService.AddMember(workspaceID, &request, user); err != nil {
		mapMembershipError(ctx, err)
		return
	}

	response.Ok(ctx, "Member added successfully")
}

// RemoveMember
// @Summary Remove member from workspace
// @Description Remove a member from the workspace (owner only)
// @Tags workspace-membership
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := c.membershipService.RemoveMember(workspaceID, memberUserID, user); err != nil {
		mapMembershipError(ctx, err)
		return
	}

	response.Ok(ctx, "Member removed successfully")
}

// ChangeMemberRole
// @Summary Change member role
// @Description Change the role of an existing workspace member (owner only)
// @Tags workspace-membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Param request body workspaces_dto.ChangeMemberRoleRequestDTO true "Role change data"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /workspaces/{id}/members/{userId}/role [put]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var request workspaces_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := c.membershipService.ChangeMemberRole(workspaceID, memberUserID, &request, user); err != nil {
		mapMembershipError(ctx, err)
		return
	}

	response.Ok(ctx, "Member role changed successfully")
}
