package users_middleware

import (
	"net/http"
	"strings"

	users_models "itconnect-backend/internal/features/users/models"
	users_services "itconnect-backend/internal/features/users/services"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// AuthMiddleware resolves the bearer token into a user and aborts
// with 401 otherwise.
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(ctx, http.StatusUnauthorized, "Authorization header is missing")
			ctx.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			response.Error(ctx, http.StatusUnauthorized, "Invalid authorization header format")
			ctx.Abort()
			return
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			response.Error(ctx, http.StatusUnauthorized, "Invalid or expired token")
			ctx.Abort()
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)
	return user, ok
}
