package response

import "github.com/gin-gonic/gin"

// DTO is the uniform message envelope for status-only endpoints and errors.
type DTO struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func Ok(ctx *gin.Context, message string) {
	ctx.JSON(200, DTO{Message: message, Success: true})
}

func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, DTO{Message: message, Success: false})
}
