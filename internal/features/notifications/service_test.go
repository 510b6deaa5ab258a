package notifications

import (
	"net/http"
	"testing"
	"time"

	users_enums "itconnect-backend/internal/features/users/enums"
	users_testing "itconnect-backend/internal/features/users/testing"
	workspaces_controllers "itconnect-backend/internal/features/workspaces/controllers"
	workspaces_testing "itconnect-backend/internal/features/workspaces/testing"
	test_utils "itconnect-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createInvitationTestRouter() *gin.Engine {
	return workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
		workspaces_controllers.GetMembershipController(),
		GetNotificationController(),
	)
}

func inviteUser(
	t *testing.T,
	router *gin.Engine,
	workspaceID uuid.UUID,
	inviterToken string,
	email string,
	role users_enums.WorkspaceRole,
	expectedStatus int,
) {
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspaceID.String()+"/invitations",
		"Bearer "+inviterToken,
		CreateInvitationRequestDTO{Email: email, Role: role},
		expectedStatus,
	)
}

func getInvitations(t *testing.T, router *gin.Engine, token string) []Notification {
	var invitations []Notification
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications/workspace-invitations",
		"Bearer "+token,
		http.StatusOK,
		&invitations,
	)

	return invitations
}

func Test_InvitationFlow_AcceptJoinsAtInvitedRole(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Invites", owner, router)

	inviteUser(
		t,
		router,
		workspace.ID,
		owner.Token,
		invitee.Email,
		users_enums.WorkspaceRoleMember,
		http.StatusOK,
	)

	invitations := getInvitations(t, router, invitee.Token)
	assert.Len(t, invitations, 1)
	assert.Equal(t, NotificationTypeWorkspaceInvitation, invitations[0].Type)
	assert.NotNil(t, invitations[0].Invitation)
	assert.Equal(t, workspace.ID, invitations[0].Invitation.WorkspaceID)
	assert.False(t, invitations[0].IsCompleted)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/notifications/"+invitations[0].ID.String()+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK,
	)

	fetched := workspaces_testing.GetWorkspace(workspace.ID, invitee.Token, router)
	assert.NotNil(t, fetched.UserRole)
	assert.Equal(t, users_enums.WorkspaceRoleMember, *fetched.UserRole)

	// accepting closed the invitation
	assert.Empty(t, getInvitations(t, router, invitee.Token))
}

func Test_InvitationFlow_DeclineDoesNotJoin(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Declined", owner, router)

	inviteUser(
		t,
		router,
		workspace.ID,
		owner.Token,
		invitee.Email,
		users_enums.WorkspaceRoleViewer,
		http.StatusOK,
	)

	invitations := getInvitations(t, router, invitee.Token)
	assert.Len(t, invitations, 1)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/notifications/"+invitations[0].ID.String()+"/decline",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String(),
		"Bearer "+invitee.Token,
		http.StatusNotFound,
	)
}

func Test_Invitation_UnknownEmailDoesNotLeak(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Opaque", owner, router)

	// same response as a successful invitation, nothing is created
	inviteUser(
		t,
		router,
		workspace.ID,
		owner.Token,
		"nobody-"+uuid.New().String()[:8]+"@example.com",
		users_enums.WorkspaceRoleMember,
		http.StatusOK,
	)
}

func Test_Invitation_DuplicateReturnsExisting(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Once", owner, router)

	inviteUser(
		t,
		router,
		workspace.ID,
		owner.Token,
		invitee.Email,
		users_enums.WorkspaceRoleMember,
		http.StatusOK,
	)
	inviteUser(
		t,
		router,
		workspace.ID,
		owner.Token,
		invitee.Email,
		users_enums.WorkspaceRoleAdmin,
		http.StatusOK,
	)

	invitations := getInvitations(t, router, invitee.Token)
	assert.Len(t, invitations, 1)

	// the original invitation wins, the second role is ignored
	assert.Equal(t, users_enums.WorkspaceRoleMember, invitations[0].Invitation.Role)
}

func Test_Invitation_MemberCanOnlyInviteViewers(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Limited", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	inviteUser(
		t,
		router,
		workspace.ID,
		member.Token,
		invitee.Email,
		users_enums.WorkspaceRoleMember,
		http.StatusForbidden,
	)
	inviteUser(
		t,
		router,
		workspace.ID,
		member.Token,
		invitee.Email,
		users_enums.WorkspaceRoleViewer,
		http.StatusOK,
	)
}

func Test_AcceptInvitation_ExpiredFailsAndCompletes(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Too late", owner, router)

	notification := &Notification{
		ReceiverID: invitee.UserID,
		SenderID:   &owner.UserID,
		Type:       NotificationTypeWorkspaceInvitation,
		Title:      "Workspace invitation",
		Message:    "expired invitation",
		Invitation: &NotificationInvitation{
			WorkspaceID: workspace.ID,
			Role:        users_enums.WorkspaceRoleMember,
			Token:       uuid.New(),
			ExpiresAt:   time.Now().UTC().Add(-time.Hour),
		},
	}

	saved, err := notificationRepository.Save(notification)
	assert.NoError(t, err)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/notifications/"+saved.ID.String()+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusBadRequest,
	)

	// the failed accept closed the invitation for good
	stored, err := notificationRepository.GetByID(saved.ID)
	assert.NoError(t, err)
	assert.True(t, stored.IsCompleted)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String(),
		"Bearer "+invitee.Token,
		http.StatusNotFound,
	)
}

func Test_AcceptInvitation_ForeignInvitationNotFound(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Not yours", owner, router)

	inviteUser(
		t,
		router,
		workspace.ID,
		owner.Token,
		invitee.Email,
		users_enums.WorkspaceRoleMember,
		http.StatusOK,
	)

	invitations := getInvitations(t, router, invitee.Token)
	assert.Len(t, invitations, 1)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/notifications/"+invitations[0].ID.String()+"/accept",
		"Bearer "+outsider.Token,
		nil,
		http.StatusNotFound,
	)
}

func Test_Notifications_ReadLifecycle(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Reads", owner, router)
	inviteUser(
		t,
		router,
		workspace.ID,
		owner.Token,
		invitee.Email,
		users_enums.WorkspaceRoleMember,
		http.StatusOK,
	)

	var count UnreadCountResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications/unread/count",
		"Bearer "+invitee.Token,
		http.StatusOK,
		&count,
	)
	assert.Equal(t, int64(1), count.Count)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/notifications/read-all",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK,
	)

	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications/unread/count",
		"Bearer "+invitee.Token,
		http.StatusOK,
		&count,
	)
	assert.Equal(t, int64(0), count.Count)
}
