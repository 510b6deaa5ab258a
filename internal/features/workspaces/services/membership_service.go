package workspaces_services

import (
	"errors"
	"fmt"

	audit_logs "itconnect-backend/internal/features/audit_logs"
	users_models "itconnect-backend/internal/features/users/models"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_access "itconnect-backend/internal/features/workspaces/access"
	workspaces_dto "itconnect-backend/internal/features/workspaces/dto"
	workspaces_repositories "itconnect-backend/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *workspaces_repositories.MembershipRepository
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
	workspaceService     *WorkspaceService
}

// AddMember adds a user to the workspace, or overwrites the role if the
// user already holds a membership. The owner is never written as a member.
func (s *MembershipService) AddMember(
	workspaceID uuid.UUID,
	request *workspaces_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) error {
	standing, workspace, err := s.workspaceService.ResolveStanding(workspaceID, addedBy.ID)
	if err != nil {
		return err
	}

	if workspace == nil {
		return errors.New("workspace not found")
	}

	if !workspaces_access.CanManageMembers(standing) {
		return errors.New("insufficient permissions to manage members")
	}

	if !request.Role.IsAssignable() {
		return errors.New("invalid member role")
	}

	if request.UserID == workspace.OwnerID {
		return errors.New("workspace owner cannot be added as a member")
	}

	targetUser, err := s.userService.GetUserByID(request.UserID)
	if err != nil || targetUser == nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.UpsertMembership(workspaceID, request.UserID, request.Role); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to workspace: %s as %s", targetUser.Email, request.Role),
		&addedBy.ID,
		&workspaceID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	standing, workspace, err := s.workspaceService.ResolveStanding(workspaceID, removedBy.ID)
	if err != nil {
		return err
	}

	if workspace == nil {
		return errors.New("workspace not found")
	}

	if !workspaces_access.CanRemoveMember(standing) {
		return errors.New("only workspace owner can remove members")
	}

	if memberUserID == workspace.OwnerID {
		return errors.New("workspace owner cannot be removed")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
		memberUserID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if existingMembership == nil {
		return errors.New("user is not a member of this workspace")
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil || targetUser == nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.RemoveMember(memberUserID, workspaceID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member removed from workspace: %s", targetUser.Email),
		&removedBy.ID,
		&workspaceID,
	)

	return nil
}

func (s *MembershipService) ChangeMemberRole(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	request *workspaces_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	standing, workspace, err := s.workspaceService.ResolveStanding(workspaceID, changedBy.ID)
	if err != nil {
		return err
	}

	if workspace == nil {
		return errors.New("workspace not found")
	}

	if !workspaces_access.CanChangeMemberRole(standing) {
		return errors.New("only workspace owner can change member roles")
	}

	if !request.Role.IsAssignable() {
		return errors.New("invalid member role")
	}

	if memberUserID == workspace.OwnerID {
		return errors.New("workspace owner role cannot be changed")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
		memberUserID,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if existingMembership == nil {
		return errors.New("user is not a member of this workspace")
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil || targetUser == nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.UpdateMemberRole(memberUserID, workspaceID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf(
			"Member role changed: %s from %s to %s",
			targetUser.Email,
			existingMembership.Role,
			request.Role,
		),
		&changedBy.ID,
		&workspaceID,
	)

	return nil
}
