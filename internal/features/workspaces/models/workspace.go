package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace keeps its owner in a dedicated column. The owner never has
// a membership row.
type Workspace struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	OwnerID     uuid.UUID `json:"ownerId"     gorm:"column:owner_id"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
