package boards

import (
	"time"

	"github.com/google/uuid"
)

type CreateBoardRequestDTO struct {
	WorkspaceID uuid.UUID `json:"workspaceId" binding:"required"`
	Name        string    `json:"name"        binding:"required,min=1,max=255"`
	BoardData   string    `json:"boardData"`
}

type UpdateBoardRequestDTO struct {
	Name      *string `json:"name"`
	BoardData *string `json:"boardData"`
}

type BoardResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Name        string    `json:"name"`
	BoardData   string    `json:"boardData"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Whether the requesting user may modify this board
	CanEdit bool `json:"canEdit"`
}
