package boards

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"

	users_dto "itconnect-backend/internal/features/users/dto"
	users_enums "itconnect-backend/internal/features/users/enums"
	users_testing "itconnect-backend/internal/features/users/testing"
	workspaces_controllers "itconnect-backend/internal/features/workspaces/controllers"
	workspaces_testing "itconnect-backend/internal/features/workspaces/testing"
	test_utils "itconnect-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	SetupDependencies()
	os.Exit(m.Run())
}

func createBoardTestRouter() *gin.Engine {
	return workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
		workspaces_controllers.GetMembershipController(),
		GetBoardController(),
	)
}

func createTestBoard(
	t *testing.T,
	router *gin.Engine,
	workspaceID uuid.UUID,
	name string,
	creator *users_dto.SignInResponseDTO,
) *BoardResponseDTO {
	var board BoardResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/boards",
		"Bearer "+creator.Token,
		CreateBoardRequestDTO{WorkspaceID: workspaceID, Name: name},
		http.StatusCreated,
		&board,
	)

	return &board
}

func Test_CreateBoard_DefaultsToEmptyDocument(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Boards", owner, router)
	board := createTestBoard(t, router, workspace.ID, "Sprint 1", owner)

	assert.Equal(t, "Sprint 1", board.Name)
	assert.Equal(t, "{}", board.BoardData)
	assert.Equal(t, owner.UserID, board.CreatedBy)
	assert.True(t, board.CanEdit)
}

func Test_CreateBoard_MemberAndViewerDenied(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Locked", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/boards",
		"Bearer "+member.Token,
		CreateBoardRequestDTO{WorkspaceID: workspace.ID, Name: "Nope"},
		http.StatusForbidden,
	)
}

func Test_GetBoard_StrangerGetsNotFound(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Hidden", owner, router)
	board := createTestBoard(t, router, workspace.ID, "Secret", owner)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+stranger.Token,
		http.StatusNotFound,
	)
}

func Test_UpdateBoard_ViewerDeniedMemberAllowed(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	viewer := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Edits", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		viewer.UserID,
		users_enums.WorkspaceRoleViewer,
		owner.Token,
		router,
	)

	board := createTestBoard(t, router, workspace.ID, "Shared board", owner)
	boardURL := "/api/v1/boards/" + board.ID.String()

	newData := `{"columns":[]}`
	request := UpdateBoardRequestDTO{BoardData: &newData}

	test_utils.MakePutRequest(
		t,
		router,
		boardURL,
		"Bearer "+viewer.Token,
		request,
		http.StatusForbidden,
	)

	var updated BoardResponseDTO
	w := test_utils.MakePutRequest(
		t,
		router,
		boardURL,
		"Bearer "+member.Token,
		request,
		http.StatusOK,
	)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, newData, updated.BoardData)

	// viewers can still read it, flagged read only
	var fetched BoardResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		boardURL,
		"Bearer "+viewer.Token,
		http.StatusOK,
		&fetched,
	)
	assert.False(t, fetched.CanEdit)
	assert.Equal(t, newData, fetched.BoardData)
}

func Test_UpdateBoard_AbsentFieldsKeepOldValues(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Partial", owner, router)
	board := createTestBoard(t, router, workspace.ID, "Original name", owner)

	newData := `{"cards":[1]}`
	var updated BoardResponseDTO
	w := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+owner.Token,
		UpdateBoardRequestDTO{BoardData: &newData},
		http.StatusOK,
	)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))

	assert.Equal(t, "Original name", updated.Name)
	assert.Equal(t, newData, updated.BoardData)
}

func Test_DeleteBoard_MemberDeniedAdminAllowed(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	admin := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Deletions", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		admin.UserID,
		users_enums.WorkspaceRoleAdmin,
		owner.Token,
		router,
	)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	board := createTestBoard(t, router, workspace.ID, "Short lived", owner)
	boardURL := "/api/v1/boards/" + board.ID.String()

	test_utils.MakeDeleteRequest(t, router, boardURL, "Bearer "+member.Token, http.StatusForbidden)
	test_utils.MakeDeleteRequest(t, router, boardURL, "Bearer "+admin.Token, http.StatusOK)
	test_utils.MakeGetRequest(t, router, boardURL, "Bearer "+owner.Token, http.StatusNotFound)
}

func Test_GetBoardsByWorkspace_ListsAllBoards(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Many boards", owner, router)
	createTestBoard(t, router, workspace.ID, "First", owner)
	createTestBoard(t, router, workspace.ID, "Second", owner)

	var boards []BoardResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/boards/workspace/"+workspace.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
		&boards,
	)

	assert.Len(t, boards, 2)
}

func Test_DeleteWorkspace_RemovesItsBoards(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Cascade", owner, router)
	board := createTestBoard(t, router, workspace.ID, "Goes with it", owner)

	workspaces_testing.DeleteWorkspace(workspace.ID, owner.Token, router)

	stored, err := boardRepository.GetBoardByID(board.ID)
	assert.NoError(t, err)
	assert.Nil(t, stored)
}
