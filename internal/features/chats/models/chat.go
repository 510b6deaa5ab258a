package chats_models

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"type:uuid;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null"`
}

func (Chat) TableName() string {
	return "chats"
}
