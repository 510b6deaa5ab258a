package users_models

import (
	"time"

	users_enums "itconnect-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID            `json:"id"        gorm:"column:id"`
	Username       string               `json:"username"  gorm:"column:username"`
	Email          string               `json:"email"     gorm:"column:email"`
	HashedPassword string               `json:"-"         gorm:"column:hashed_password"`
	Role           users_enums.UserRole `json:"role"      gorm:"column:role"`
	CreatedAt      time.Time            `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt      time.Time            `json:"updatedAt" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
