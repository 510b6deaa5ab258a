package boards

import (
	"time"

	"github.com/google/uuid"
)

// Board stores its content as an opaque JSON document, the server never
// interprets BoardData.
type Board struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	Name        string    `json:"name"        gorm:"column:name"`
	BoardData   string    `json:"boardData"   gorm:"column:board_data"`
	CreatedBy   uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Board) TableName() string {
	return "boards"
}
