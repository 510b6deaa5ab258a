package boards

import (
	"net/http"

	users_middleware "itconnect-backend/internal/features/users/middleware"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardController struct {
	boardService *BoardService
}

func (c *BoardController) RegisterRoutes(router *gin.RouterGroup) {
	boardRoutes := router.Group("/boards")

	boardRoutes.POST("", c.CreateBoard)
	boardRoutes.GET("", c.GetUserBoards)
	boardRoutes.GET("/workspace/:workspaceId", c.GetBoardsByWorkspace)
	boardRoutes.GET("/:id", c.GetBoard)
	boardRoutes.PUT("/:id", c.UpdateBoard)
	boardRoutes.DELETE("/:id", c.DeleteBoard)
}

func mapBoardError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "board not found", "workspace not found":
		response.Error(ctx, http.StatusNotFound, err.Error())
	case "insufficient permissions to create boards",
		"insufficient permissions to edit board",
		"insufficient permissions to delete board":
		response.Error(ctx, http.StatusForbidden, err.Error())
	default:
		response.Error(ctx, http.StatusBadRequest, err.Error())
	}
}

// CreateBoard
// @Summary Create a board
// @Description Create a board in a workspace (owner or admin)
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBoardRequestDTO true "Board creation data"
// @Success 201 {object} BoardResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /boards [post]
func (c *BoardController) CreateBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request CreateBoardRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	board, err := c.boardService.CreateBoard(&request, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, board)
}

// GetUserBoards
// @Summary List boards across all accessible workspaces
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BoardResponseDTO
// @Failure 401 {object} response.DTO
// @Router /boards [get]
func (c *BoardController) GetUserBoards(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	boards, err := c.boardService.GetUserBoards(user)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to retrieve boards")
		return
	}

	ctx.JSON(http.StatusOK, boards)
}

// GetBoardsByWorkspace
// @Summary List boards in a workspace
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {array} BoardResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /boards/workspace/{workspaceId} [get]
func (c *BoardController) GetBoardsByWorkspace(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid workspace ID")
		return
	}

	boards, err := c.boardService.GetBoardsByWorkspace(workspaceID, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, boards)
}

// GetBoard
// @Summary Get a board
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Success 200 {object} BoardResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /boards/{id} [get]
func (c *BoardController) GetBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	boardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid board ID")
		return
	}

	board, err := c.boardService.GetBoard(boardID, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// UpdateBoard
// @Summary Update a board
// @Description Update board name or content, viewers cannot edit
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Param request body UpdateBoardRequestDTO true "Board update data"
// @Success 200 {object} BoardResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /boards/{id} [put]
func (c *BoardController) UpdateBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	boardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid board ID")
		return
	}

	var request UpdateBoardRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	board, err := c.boardService.UpdateBoard(boardID, &request, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// DeleteBoard
// @Summary Delete a board
// @Description Delete a board (owner or admin)
// @Tags boards
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 403 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /boards/{id} [delete]
func (c *BoardController) DeleteBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	boardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid board ID")
		return
	}

	if err := c.boardService.DeleteBoard(boardID, user); err != nil {
		mapBoardError(ctx, err)
		return
	}

	response.Ok(ctx, "Board deleted successfully")
}
