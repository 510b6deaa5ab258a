package users_dto

import (
	"time"

	users_enums "itconnect-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}

type UpdateUserInfoRequestDTO struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID            `json:"id"`
	Username  string               `json:"username"`
	Email     string               `json:"email"`
	Role      users_enums.UserRole `json:"role"`
	CreatedAt time.Time            `json:"createdAt"`
}
