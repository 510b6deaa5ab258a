package users_controllers

import (
	"net/http"

	users_dto "itconnect-backend/internal/features/users/dto"
	users_middleware "itconnect-backend/internal/features/users/middleware"
	users_services "itconnect-backend/internal/features/users/services"
	"itconnect-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type UserController struct {
	userService     *users_services.UserService
	authRateLimiter *rate.Limiter
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	authRoutes := router.Group("/auth")
	authRoutes.POST("/signup", c.SignUp)
	authRoutes.POST("/signin", c.SignIn)
}

func (c *UserController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/users")
	userRoutes.GET("/me", c.GetCurrentUser)
	userRoutes.PUT("/me", c.UpdateCurrentUser)
	userRoutes.GET("/search", c.SearchUsers)
}

// SignUp
// @Summary Register a new user
// @Description Create a user account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.SignUpRequestDTO true "Sign up data"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 429 {object} response.DTO
// @Router /auth/signup [post]
func (c *UserController) SignUp(ctx *gin.Context) {
	if !c.authRateLimiter.Allow() {
		response.Error(ctx, http.StatusTooManyRequests, "Too many requests, please try again later")
		return
	}

	var request users_dto.SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	tokenResponse, err := c.userService.SignUp(&request)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, tokenResponse)
}

// SignIn
// @Summary Sign in
// @Description Exchange email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.SignInRequestDTO true "Sign in data"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 429 {object} response.DTO
// @Router /auth/signin [post]
func (c *UserController) SignIn(ctx *gin.Context) {
	if !c.authRateLimiter.Allow() {
		response.Error(ctx, http.StatusTooManyRequests, "Too many requests, please try again later")
		return
	}

	var request users_dto.SignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	tokenResponse, err := c.userService.SignIn(&request)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, tokenResponse)
}

// GetCurrentUser
// @Summary Get current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} response.DTO
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	ctx.JSON(http.StatusOK, c.userService.GetCurrentUserProfile(user))
}

// UpdateCurrentUser
// @Summary Update current user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateUserInfoRequestDTO true "Profile update data"
// @Success 200 {object} response.DTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Router /users/me [put]
func (c *UserController) UpdateCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request users_dto.UpdateUserInfoRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := c.userService.UpdateUserInfo(user.ID, &request); err != nil {
		response.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	response.Ok(ctx, "Profile updated successfully")
}

// SearchUsers
// @Summary Search users by email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string true "Email substring"
// @Success 200 {array} users_dto.UserProfileResponseDTO
// @Failure 400 {object} response.DTO
// @Failure 401 {object} response.DTO
// @Router /users/search [get]
func (c *UserController) SearchUsers(ctx *gin.Context) {
	_, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	emailQuery := ctx.Query("email")
	if emailQuery == "" {
		response.Error(ctx, http.StatusBadRequest, "Email query is required")
		return
	}

	users, err := c.userService.SearchUsersByEmail(emailQuery)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to search users")
		return
	}

	ctx.JSON(http.StatusOK, users)
}
