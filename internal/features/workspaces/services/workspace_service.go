package workspaces_services

import (
	"errors"
	"fmt"
	"strings"

	audit_logs "itconnect-backend/internal/features/audit_logs"
	users_enums "itconnect-backend/internal/features/users/enums"
	users_models "itconnect-backend/internal/features/users/models"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_access "itconnect-backend/internal/features/workspaces/access"
	workspaces_dto "itconnect-backend/internal/features/workspaces/dto"
	workspaces_interfaces "itconnect-backend/internal/features/workspaces/interfaces"
	workspaces_models "itconnect-backend/internal/features/workspaces/models"
	workspaces_repositories "itconnect-backend/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

type WorkspaceService struct {
	workspaceRepository        *workspaces_repositories.WorkspaceRepository
	membershipRepository       *workspaces_repositories.MembershipRepository
	userService                *users_services.UserService
	auditLogService            *audit_logs.AuditLogService
	workspaceDeletionListeners []workspaces_interfaces.WorkspaceDeletionListener
}

func (s *WorkspaceService) AddWorkspaceDeletionListener(
	listener workspaces_interfaces.WorkspaceDeletionListener,
) {
	s.workspaceDeletionListeners = append(s.workspaceDeletionListeners, listener)
}

func (s *WorkspaceService) CreateWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, errors.New("workspace name cannot be blank")
	}

	workspace := &workspaces_models.Workspace{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		OwnerID:     creator.ID,
	}

	if err := s.workspaceRepository.CreateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace created: %s", workspace.Name),
		&creator.ID,
		&workspace.ID,
	)

	return s.buildWorkspaceDTO(workspace, creator.ID)
}

// ResolveStanding loads the workspace and derives the user's standing in
// it. A missing workspace resolves to NONE with a nil workspace.
func (s *WorkspaceService) ResolveStanding(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (workspaces_access.Standing, *workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return workspaces_access.StandingNone, nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace == nil {
		return workspaces_access.StandingNone, nil, nil
	}

	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, userID)
	if err != nil {
		return workspaces_access.StandingNone, nil, fmt.Errorf(
			"failed to get workspace role: %w",
			err,
		)
	}

	return workspaces_access.Resolve(workspace.OwnerID, userID, role), workspace, nil
}

func (s *WorkspaceService) GetWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	standing, workspace, err := s.ResolveStanding(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if workspace == nil || !workspaces_access.CanReadWorkspace(standing) {
		return nil, errors.New("workspace not found")
	}

	return s.buildWorkspaceDTO(workspace, user.ID)
}

func (s *WorkspaceService) GetUserWorkspaces(
	user *users_models.User,
) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	workspaces, err := s.workspaceRepository.GetUserWorkspaces(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	result := make([]workspaces_dto.WorkspaceResponseDTO, 0, len(workspaces))
	for _, workspace := range workspaces {
		dto, err := s.buildWorkspaceDTO(workspace, user.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, *dto)
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: result,
	}, nil
}

func (s *WorkspaceService) UpdateWorkspace(
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceRequestDTO,
	user *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	standing, workspace, err := s.ResolveStanding(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if workspace == nil {
		return nil, errors.New("workspace not found")
	}

	if !workspaces_access.CanManageWorkspace(standing) {
		return nil, errors.New("only workspace owner can update workspace")
	}

	// blank or absent fields keep their previous values
	if request.Name != nil && strings.TrimSpace(*request.Name) != "" {
		workspace.Name = *request.Name
	}
	if request.Description != nil {
		workspace.Description = *request.Description
	}

	if err := s.workspaceRepository.UpdateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace updated: %s", workspace.Name),
		&user.ID,
		&workspaceID,
	)

	return s.buildWorkspaceDTO(workspace, user.ID)
}

func (s *WorkspaceService) DeleteWorkspace(workspaceID uuid.UUID, user *users_models.User) error {
	standing, workspace, err := s.ResolveStanding(workspaceID, user.ID)
	if err != nil {
		return err
	}

	if workspace == nil {
		return errors.New("workspace not found")
	}

	if !workspaces_access.CanManageWorkspace(standing) {
		return errors.New("only workspace owner can delete workspace")
	}

	for _, listener := range s.workspaceDeletionListeners {
		if err := listener.OnBeforeWorkspaceDeletion(workspaceID); err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}
	}

	if err := s.membershipRepository.DeleteWorkspaceMemberships(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace memberships: %w", err)
	}

	if err := s.workspaceRepository.DeleteWorkspace(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace deleted: %s", workspace.Name),
		&user.ID,
		&workspaceID,
	)

	return nil
}

func (s *WorkspaceService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	standing, workspace, err := s.ResolveStanding(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if workspace == nil || !workspaces_access.CanReadWorkspace(standing) {
		return nil, errors.New("workspace not found")
	}

	return s.auditLogService.GetWorkspaceAuditLogs(workspaceID, request)
}

func (s *WorkspaceService) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	return s.workspaceRepository.GetWorkspaceByID(workspaceID)
}

func (s *WorkspaceService) buildWorkspaceDTO(
	workspace *workspaces_models.Workspace,
	requesterID uuid.UUID,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	members, err := s.membershipRepository.GetWorkspaceMembers(workspace.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace members: %w", err)
	}

	owner, err := s.userService.GetUserByID(workspace.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace owner: %w", err)
	}

	if owner == nil {
		return nil, errors.New("workspace owner not found")
	}

	// the owner has no membership row, synthesize a member entry for it
	membersList := make([]workspaces_dto.WorkspaceMemberResponseDTO, 0, len(members)+1)
	membersList = append(membersList, workspaces_dto.WorkspaceMemberResponseDTO{
		UserID:   owner.ID,
		Username: owner.Username,
		Email:    owner.Email,
		Role:     users_enums.WorkspaceRoleAdmin,
		IsOwner:  true,
		JoinedAt: workspace.CreatedAt,
	})

	for _, member := range members {
		membersList = append(membersList, *member)
	}

	role, err := s.membershipRepository.GetUserWorkspaceRole(workspace.ID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace role: %w", err)
	}

	standing := workspaces_access.Resolve(workspace.OwnerID, requesterID, role)

	return &workspaces_dto.WorkspaceResponseDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		OwnerID:     workspace.OwnerID,
		CreatedAt:   workspace.CreatedAt,
		UpdatedAt:   workspace.UpdatedAt,
		UserRole:    standing.Role(),
		Members:     membersList,
	}, nil
}
