package users_enums

// WorkspaceRole is the role a user holds inside a single workspace.
// OWNER is never stored in a membership row, it is derived from the
// workspace owner column.
type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "OWNER"
	WorkspaceRoleAdmin  WorkspaceRole = "ADMIN"
	WorkspaceRoleMember WorkspaceRole = "MEMBER"
	WorkspaceRoleViewer WorkspaceRole = "VIEWER"
)

// IsValid validates the WorkspaceRole
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case WorkspaceRoleOwner, WorkspaceRoleAdmin, WorkspaceRoleMember, WorkspaceRoleViewer:
		return true
	default:
		return false
	}
}

// IsAssignable reports whether the role can be written to a membership row.
func (r WorkspaceRole) IsAssignable() bool {
	switch r {
	case WorkspaceRoleAdmin, WorkspaceRoleMember, WorkspaceRoleViewer:
		return true
	default:
		return false
	}
}
