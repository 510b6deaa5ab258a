package workspaces_dto

import (
	"time"

	users_enums "itconnect-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// Workspace DTOs
type CreateWorkspaceRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description"`
}

type UpdateWorkspaceRequestDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type WorkspaceResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Requesting user's role in this workspace
	UserRole *users_enums.WorkspaceRole `json:"userRole,omitempty"`

	Members []WorkspaceMemberResponseDTO `json:"members"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []WorkspaceResponseDTO `json:"workspaces"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	UserID uuid.UUID                 `json:"userId" binding:"required"`
	Role   users_enums.WorkspaceRole `json:"role"   binding:"required"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.WorkspaceRole `json:"role" binding:"required"`
}

type WorkspaceMemberResponseDTO struct {
	UserID   uuid.UUID                 `json:"userId"`
	Username string                    `json:"username"`
	Email    string                    `json:"email"`
	Role     users_enums.WorkspaceRole `json:"role"`
	IsOwner  bool                      `json:"isOwner"`
	JoinedAt time.Time                 `json:"joinedAt"`
}
