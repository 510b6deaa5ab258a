package notifications

import (
	audit_logs "itconnect-backend/internal/features/audit_logs"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_repositories "itconnect-backend/internal/features/workspaces/repositories"
	workspaces_services "itconnect-backend/internal/features/workspaces/services"
)

var notificationRepository = &NotificationRepository{}

var notificationService = &NotificationService{
	notificationRepository,
	&workspaces_repositories.MembershipRepository{},
	users_services.GetUserService(),
	workspaces_services.GetWorkspaceService(),
	audit_logs.GetAuditLogService(),
}

var notificationController = &NotificationController{notificationService}

func GetNotificationService() *NotificationService {
	return notificationService
}

func GetNotificationController() *NotificationController {
	return notificationController
}

// SetupDependencies registers cross-feature listeners.
func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(notificationService)
}
