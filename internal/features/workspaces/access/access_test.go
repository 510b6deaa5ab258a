package workspaces_access

import (
	"testing"

	users_enums "itconnect-backend/internal/features/users/enums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Resolve_OwnerWinsOverMembership(t *testing.T) {
	ownerID := uuid.New()
	role := users_enums.WorkspaceRoleViewer

	// an owner resolves to OWNER even if a stray membership row exists
	assert.Equal(t, StandingOwner, Resolve(ownerID, ownerID, &role))
	assert.Equal(t, StandingOwner, Resolve(ownerID, ownerID, nil))
}

func Test_Resolve_MembershipRoles(t *testing.T) {
	ownerID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		role     users_enums.WorkspaceRole
		expected Standing
	}{
		{users_enums.WorkspaceRoleAdmin, StandingAdmin},
		{users_enums.WorkspaceRoleMember, StandingMember},
		{users_enums.WorkspaceRoleViewer, StandingViewer},
	}

	for _, test := range tests {
		role := test.role
		assert.Equal(t, test.expected, Resolve(ownerID, userID, &role))
	}
}

func Test_Resolve_NoMembership_ReturnsNone(t *testing.T) {
	assert.Equal(t, StandingNone, Resolve(uuid.New(), uuid.New(), nil))
}

func Test_StandingRole_OwnerReportsOwnerRole(t *testing.T) {
	role := StandingOwner.Role()

	assert.NotNil(t, role)
	assert.Equal(t, users_enums.WorkspaceRoleOwner, *role)
}

func Test_StandingRole_NoneHasNoRole(t *testing.T) {
	assert.Nil(t, StandingNone.Role())
}

func Test_Policies_PerStanding(t *testing.T) {
	tests := []struct {
		standing         Standing
		canRead          bool
		canManage        bool
		canManageMembers bool
		canCreateBoard   bool
		canEditBoard     bool
		canDeleteBoard   bool
		canSendMessage   bool
	}{
		{StandingOwner, true, true, true, true, true, true, true},
		{StandingAdmin, true, false, true, true, true, true, true},
		{StandingMember, true, false, false, false, true, false, true},
		{StandingViewer, true, false, false, false, false, false, true},
		{StandingNone, false, false, false, false, false, false, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.canRead, CanReadWorkspace(test.standing), "read %s", test.standing)
		assert.Equal(t, test.canManage, CanManageWorkspace(test.standing), "manage %s", test.standing)
		assert.Equal(
			t,
			test.canManageMembers,
			CanManageMembers(test.standing),
			"members %s",
			test.standing,
		)
		assert.Equal(
			t,
			test.canCreateBoard,
			CanCreateBoard(test.standing),
			"create board %s",
			test.standing,
		)
		assert.Equal(
			t,
			test.canEditBoard,
			CanEditBoard(test.standing),
			"edit board %s",
			test.standing,
		)
		assert.Equal(
			t,
			test.canDeleteBoard,
			CanDeleteBoard(test.standing),
			"delete board %s",
			test.standing,
		)
		assert.Equal(
			t,
			test.canSendMessage,
			CanSendChatMessage(test.standing),
			"send message %s",
			test.standing,
		)
	}
}

func Test_RemoveAndRoleChange_OwnerOnly(t *testing.T) {
	assert.True(t, CanRemoveMember(StandingOwner))
	assert.True(t, CanChangeMemberRole(StandingOwner))

	for _, standing := range []Standing{StandingAdmin, StandingMember, StandingViewer, StandingNone} {
		assert.False(t, CanRemoveMember(standing))
		assert.False(t, CanChangeMemberRole(standing))
	}
}

func Test_CanInviteAtRole(t *testing.T) {
	// owner and admin may invite at any assignable role
	for _, standing := range []Standing{StandingOwner, StandingAdmin} {
		assert.True(t, CanInviteAtRole(standing, users_enums.WorkspaceRoleAdmin))
		assert.True(t, CanInviteAtRole(standing, users_enums.WorkspaceRoleMember))
		assert.True(t, CanInviteAtRole(standing, users_enums.WorkspaceRoleViewer))
	}

	// members only at viewer
	assert.True(t, CanInviteAtRole(StandingMember, users_enums.WorkspaceRoleViewer))
	assert.False(t, CanInviteAtRole(StandingMember, users_enums.WorkspaceRoleMember))
	assert.False(t, CanInviteAtRole(StandingMember, users_enums.WorkspaceRoleAdmin))

	// viewers and strangers not at all
	assert.False(t, CanInviteAtRole(StandingViewer, users_enums.WorkspaceRoleViewer))
	assert.False(t, CanInviteAtRole(StandingNone, users_enums.WorkspaceRoleViewer))

	// OWNER is never an assignable role
	assert.False(t, CanInviteAtRole(StandingOwner, users_enums.WorkspaceRoleOwner))
}
