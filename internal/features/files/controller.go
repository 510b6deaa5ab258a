package files

import (
	"fmt"
	"net/http"

	users_middleware "itconnect-backend/internal/features/users/middleware"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileController struct {
	fileService *FileService
}

func (c *FileController) RegisterRoutes(router *gin.RouterGroup) {
	fileRoutes := router.Group("/files")

	fileRoutes.POST("/upload", c.UploadFile)
	fileRoutes.GET("/:messageId/download", c.DownloadAttachment)
}

// UploadFile
// @Summary Upload a file
// @Description Upload a chat attachment to blob storage
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 200 {object} UploadFileResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 500 {object} response.DTO
// @Router /files/upload [post]
func (c *FileController) UploadFile(ctx *gin.Context) {
	_, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Missing file")
		return
	}

	result, err := c.fileService.UploadFile(ctx.Request.Context(), fileHeader)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DownloadAttachment
// @Summary Download a message attachment
// @Description Stream the attachment of a chat message
// @Tags files
// @Produce octet-stream
// @Security BearerAuth
// @Param messageId path string true "Message ID"
// @Success 200 {file} binary
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Failure 404 {object} response.DTO
// @Router /files/{messageId}/download [get]
func (c *FileController) DownloadAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	messageID, err := uuid.Parse(ctx.Param("messageId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid message ID")
		return
	}

	reader, info, err := c.fileService.DownloadAttachment(ctx.Request.Context(), messageID, user)
	if err != nil {
		if err.Error() == "file not found" {
			response.Error(ctx, http.StatusNotFound, err.Error())
			return
		}

		response.Error(ctx, http.StatusInternalServerError, "Failed to download file")
		return
	}
	defer reader.Close()

	ctx.DataFromReader(
		http.StatusOK,
		info.Size,
		info.Type,
		reader,
		map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", info.Name),
		},
	)
}
