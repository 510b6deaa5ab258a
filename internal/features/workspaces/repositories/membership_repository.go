package workspaces_repositories

import (
	"errors"
	"time"

	users_enums "itconnect-backend/internal/features/users/enums"
	workspaces_dto "itconnect-backend/internal/features/workspaces/dto"
	workspaces_models "itconnect-backend/internal/features/workspaces/models"
	"itconnect-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(
	membership *workspaces_models.WorkspaceMembership,
) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}
	membership.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Create(membership).Error
}

// UpsertMembership inserts a membership or, if the user already holds one
// in the workspace, overwrites its role. The conflict is resolved by the
// database so concurrent adds for the same pair cannot race.
func (r *MembershipRepository) UpsertMembership(
	workspaceID, userID uuid.UUID,
	role users_enums.WorkspaceRole,
) error {
	now := time.Now().UTC()

	membership := &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return storage.GetDb().
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"role":       role,
				"updated_at": now,
			}),
		}).
		Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByUserAndWorkspace(
	userID, workspaceID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	var membership workspaces_models.WorkspaceMembership

	if err := storage.GetDb().
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetWorkspaceMembers(
	workspaceID uuid.UUID,
) ([]*workspaces_dto.WorkspaceMemberResponseDTO, error) {
	var members []*workspaces_dto.WorkspaceMemberResponseDTO

	err := storage.GetDb().
		Table("workspace_memberships wm").
		Select("wm.user_id, u.username, u.email, wm.role, wm.created_at as joined_at").
		Joins("JOIN users u ON wm.user_id = u.id").
		Where("wm.workspace_id = ?", workspaceID).
		Order("wm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) UpdateMemberRole(
	userID, workspaceID uuid.UUID,
	role users_enums.WorkspaceRole,
) error {
	return storage.GetDb().
		Model(&workspaces_models.WorkspaceMembership{}).
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		Updates(map[string]any{
			"role":       role,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *MembershipRepository) RemoveMember(userID, workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		Delete(&workspaces_models.WorkspaceMembership{}).Error
}

func (r *MembershipRepository) GetUserWorkspaceRole(
	workspaceID, userID uuid.UUID,
) (*users_enums.WorkspaceRole, error) {
	membership, err := r.GetMembershipByUserAndWorkspace(userID, workspaceID)
	if err != nil {
		return nil, err
	}

	if membership == nil {
		return nil, nil
	}

	return &membership.Role, nil
}

func (r *MembershipRepository) DeleteWorkspaceMemberships(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Delete(&workspaces_models.WorkspaceMembership{}).Error
}
