package notifications

import (
	users_enums "itconnect-backend/internal/features/users/enums"
)

type CreateInvitationRequestDTO struct {
	Email string                    `json:"email" binding:"required,email"`
	Role  users_enums.WorkspaceRole `json:"role"  binding:"required"`
}

type UnreadCountResponseDTO struct {
	Count int64 `json:"count"`
}
