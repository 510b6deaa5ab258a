package workspaces_access

import (
	users_enums "itconnect-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// Standing is a user's effective position in a workspace. Unlike
// WorkspaceRole it is total: every user has a standing in every
// workspace, including NONE for strangers.
type Standing string

const (
	StandingOwner  Standing = "OWNER"
	StandingAdmin  Standing = "ADMIN"
	StandingMember Standing = "MEMBER"
	StandingViewer Standing = "VIEWER"
	StandingNone   Standing = "NONE"
)

// Resolve derives the standing from the workspace owner column and the
// membership role, if any. A nil role means no membership row exists.
func Resolve(
	ownerID uuid.UUID,
	userID uuid.UUID,
	membershipRole *users_enums.WorkspaceRole,
) Standing {
	if ownerID == userID {
		return StandingOwner
	}

	if membershipRole == nil {
		return StandingNone
	}

	switch *membershipRole {
	case users_enums.WorkspaceRoleAdmin:
		return StandingAdmin
	case users_enums.WorkspaceRoleMember:
		return StandingMember
	case users_enums.WorkspaceRoleViewer:
		return StandingViewer
	default:
		return StandingNone
	}
}

// Role maps a standing back to the wire role string, the owner reports
// OWNER even though no membership row carries it.
func (s Standing) Role() *users_enums.WorkspaceRole {
	switch s {
	case StandingOwner:
		role := users_enums.WorkspaceRoleOwner
		return &role
	case StandingAdmin:
		role := users_enums.WorkspaceRoleAdmin
		return &role
	case StandingMember:
		role := users_enums.WorkspaceRoleMember
		return &role
	case StandingViewer:
		role := users_enums.WorkspaceRoleViewer
		return &role
	default:
		return nil
	}
}

func CanReadWorkspace(s Standing) bool {
	return s != StandingNone
}

func CanManageWorkspace(s Standing) bool {
	return s == StandingOwner
}

func CanManageMembers(s Standing) bool {
	return s == StandingOwner || s == StandingAdmin
}

// CanInviteAtRole checks both that the user may invite at all and that
// the target role is within their reach: owners and admins invite at
// any assignable role, members only at VIEWER, viewers not at all.
func CanInviteAtRole(s Standing, role users_enums.WorkspaceRole) bool {
	if !role.IsAssignable() {
		return false
	}

	switch s {
	case StandingOwner, StandingAdmin:
		return true
	case StandingMember:
		return role == users_enums.WorkspaceRoleViewer
	default:
		return false
	}
}

func CanRemoveMember(s Standing) bool {
	return s == StandingOwner
}

func CanChangeMemberRole(s Standing) bool {
	return s == StandingOwner
}

func CanCreateBoard(s Standing) bool {
	return s == StandingOwner || s == StandingAdmin
}

func CanEditBoard(s Standing) bool {
	return s == StandingOwner || s == StandingAdmin || s == StandingMember
}

func CanDeleteBoard(s Standing) bool {
	return s == StandingOwner || s == StandingAdmin
}

func CanSendChatMessage(s Standing) bool {
	return s != StandingNone
}
