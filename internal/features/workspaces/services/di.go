package workspaces_services

import (
	"itconnect-backend/internal/features/audit_logs"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_interfaces "itconnect-backend/internal/features/workspaces/interfaces"
	workspaces_repositories "itconnect-backend/internal/features/workspaces/repositories"
)

var workspaceRepository = &workspaces_repositories.WorkspaceRepository{}
var membershipRepository = &workspaces_repositories.MembershipRepository{}

var workspaceService = &WorkspaceService{
	workspaceRepository,
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	[]workspaces_interfaces.WorkspaceDeletionListener{},
}

var membershipService = &MembershipService{
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	workspaceService,
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
