package notifications

import (
	"errors"
	"fmt"
	"time"

	audit_logs "itconnect-backend/internal/features/audit_logs"
	users_enums "itconnect-backend/internal/features/users/enums"
	users_models "itconnect-backend/internal/features/users/models"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_access "itconnect-backend/internal/features/workspaces/access"
	workspaces_repositories "itconnect-backend/internal/features/workspaces/repositories"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
)

const invitationLifetime = 7 * 24 * time.Hour

type NotificationService struct {
	notificationRepository *NotificationRepository
	membershipRepository   *workspaces_repositories.MembershipRepository
	userService            *users_services.UserService
	workspaceService       *workspaces_services.WorkspaceService
	auditLogService        *audit_logs.AuditLogService
}

// CreateWorkspaceInvitation creates an invitation notification for the
// invitee. Unknown emails and users already in the workspace resolve to
// nil without error, an active duplicate invitation is returned as is.
func (s *NotificationService) CreateWorkspaceInvitation(
	workspaceID uuid.UUID,
	request *CreateInvitationRequestDTO,
	inviter *users_models.User,
) (*Notification, error) {
	standing, workspace, err := s.workspaceService.ResolveStanding(workspaceID, inviter.ID)
	if err != nil {
		return nil, err
	}

	if workspace == nil {
		return nil, errors.New("workspace not found")
	}

	if !workspaces_access.CanInviteAtRole(standing, request.Role) {
		return nil, errors.New("insufficient permissions to invite at this role")
	}

	invitee, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}

	if invitee == nil {
		return nil, nil
	}

	if invitee.ID == workspace.OwnerID {
		return nil, nil
	}

	existingRole, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, invitee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existingRole != nil {
		return nil, nil
	}

	existingInvitation, err := s.notificationRepository.FindActiveInvitation(
		workspaceID,
		invitee.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing invitations: %w", err)
	}
	if existingInvitation != nil {
		return existingInvitation, nil
	}

	notification := &Notification{
		ReceiverID: invitee.ID,
		SenderID:   &inviter.ID,
		Type:       NotificationTypeWorkspaceInvitation,
		Title:      "Workspace invitation",
		Message: fmt.Sprintf(
			"%s invited you to join workspace \"%s\"",
			inviter.Username,
			workspace.Name,
		),
		Invitation: &NotificationInvitation{
			WorkspaceID: workspaceID,
			Role:        request.Role,
			Token:       uuid.New(),
			ExpiresAt:   time.Now().UTC().Add(invitationLifetime),
		},
	}

	saved, err := s.notificationRepository.Save(notification)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User invited to workspace: %s as %s", invitee.Email, request.Role),
		&inviter.ID,
		&workspaceID,
	)

	return saved, nil
}

func (s *NotificationService) GetAll(user *users_models.User) ([]*Notification, error) {
	return s.notificationRepository.GetByReceiver(user.ID)
}

func (s *NotificationService) GetUnread(user *users_models.User) ([]*Notification, error) {
	return s.notificationRepository.GetUnreadByReceiver(user.ID)
}

func (s *NotificationService) GetUnreadCount(user *users_models.User) (int64, error) {
	return s.notificationRepository.CountUnreadByReceiver(user.ID)
}

func (s *NotificationService) GetWorkspaceInvitations(
	user *users_models.User,
) ([]*Notification, error) {
	return s.notificationRepository.GetWorkspaceInvitationsByReceiver(user.ID)
}

// AcceptInvitation turns a pending invitation into a workspace membership.
// An expired invitation is closed and the accept fails, an invitee who
// became a member by other means closes the invitation successfully.
func (s *NotificationService) AcceptInvitation(
	notificationID uuid.UUID,
	user *users_models.User,
) error {
	notification, err := s.getOwnInvitation(notificationID, user)
	if err != nil {
		return err
	}

	if notification.Invitation.IsExpired() {
		if err := s.notificationRepository.MarkAsCompleted(notificationID, true); err != nil {
			return fmt.Errorf("failed to close invitation: %w", err)
		}

		return errors.New("invitation has expired")
	}

	workspace, err := s.workspaceService.GetWorkspaceByID(notification.Invitation.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace == nil {
		if err := s.notificationRepository.MarkAsCompleted(notificationID, true); err != nil {
			return fmt.Errorf("failed to close invitation: %w", err)
		}

		return errors.New("workspace no longer exists")
	}

	// invitee may have joined by other means since the invitation was sent
	if workspace.OwnerID != user.ID {
		existingRole, err := s.membershipRepository.GetUserWorkspaceRole(workspace.ID, user.ID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}

		if existingRole == nil {
			role := notification.Invitation.Role
			if !role.IsAssignable() {
				role = users_enums.WorkspaceRoleViewer
			}

			if err := s.membershipRepository.UpsertMembership(workspace.ID, user.ID, role); err != nil {
				return fmt.Errorf("failed to join workspace: %w", err)
			}
		}
	}

	if err := s.notificationRepository.MarkAsCompleted(notificationID, true); err != nil {
		return fmt.Errorf("failed to close invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace invitation accepted by: %s", user.Email),
		&user.ID,
		&workspace.ID,
	)

	return nil
}

func (s *NotificationService) DeclineInvitation(
	notificationID uuid.UUID,
	user *users_models.User,
) error {
	notification, err := s.getOwnInvitation(notificationID, user)
	if err != nil {
		return err
	}

	if err := s.notificationRepository.MarkAsCompleted(notificationID, true); err != nil {
		return fmt.Errorf("failed to close invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace invitation declined by: %s", user.Email),
		&user.ID,
		&notification.Invitation.WorkspaceID,
	)

	return nil
}

func (s *NotificationService) MarkAsRead(notificationID uuid.UUID, user *users_models.User) error {
	notification, err := s.notificationRepository.GetByID(notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}

	if notification == nil || notification.ReceiverID != user.ID {
		return errors.New("notification not found")
	}

	return s.notificationRepository.MarkAsRead(notificationID)
}

func (s *NotificationService) MarkAllAsRead(user *users_models.User) error {
	return s.notificationRepository.MarkAllAsRead(user.ID)
}

func (s *NotificationService) Delete(notificationID uuid.UUID, user *users_models.User) error {
	notification, err := s.notificationRepository.GetByID(notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}

	if notification == nil || notification.ReceiverID != user.ID {
		return errors.New("notification not found")
	}

	return s.notificationRepository.Delete(notificationID)
}

// OnBeforeWorkspaceDeletion drops invitations pointing at the workspace.
func (s *NotificationService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	return s.notificationRepository.DeleteWorkspaceInvitations(workspaceID)
}

func (s *NotificationService) getOwnInvitation(
	notificationID uuid.UUID,
	user *users_models.User,
) (*Notification, error) {
	notification, err := s.notificationRepository.GetByID(notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	if notification == nil || notification.ReceiverID != user.ID {
		return nil, errors.New("notification not found")
	}

	if notification.Type != NotificationTypeWorkspaceInvitation ||
		notification.Invitation == nil {
		return nil, errors.New("notification is not a workspace invitation")
	}

	if notification.IsCompleted {
		return nil, errors.New("invitation is no longer active")
	}

	return notification, nil
}
