package workspaces_repositories

import (
	"errors"
	"time"

	workspaces_models "itconnect-backend/internal/features/workspaces/models"
	"itconnect-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct{}

func (r *WorkspaceRepository) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}

	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now().UTC()
	}
	workspace.UpdatedAt = workspace.CreatedAt

	return storage.GetDb().Create(workspace).Error
}

func (r *WorkspaceRepository) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("id = ?", workspaceID).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) UpdateWorkspace(workspace *workspaces_models.Workspace) error {
	workspace.UpdatedAt = time.Now().UTC()
	return storage.GetDb().Save(workspace).Error
}

func (r *WorkspaceRepository) DeleteWorkspace(workspaceID uuid.UUID) error {
	return storage.GetDb().Delete(&workspaces_models.Workspace{}, workspaceID).Error
}

// GetUserWorkspaces returns workspaces the user owns plus workspaces the
// user is a member of, without duplicates.
func (r *WorkspaceRepository) GetUserWorkspaces(
	userID uuid.UUID,
) ([]*workspaces_models.Workspace, error) {
	var workspaces []*workspaces_models.Workspace

	err := storage.GetDb().
		Distinct("workspaces.*").
		Joins("LEFT JOIN workspace_memberships wm ON workspaces.id = wm.workspace_id").
		Where("workspaces.owner_id = ? OR wm.user_id = ?", userID, userID).
		Order("workspaces.name ASC").
		Find(&workspaces).Error

	return workspaces, err
}
