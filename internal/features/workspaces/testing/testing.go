package workspaces_testing

import (
	"encoding/json"
	"fmt"
	"net/http"

	users_dto "itconnect-backend/internal/features/users/dto"
	users_enums "itconnect-backend/internal/features/users/enums"
	users_middleware "itconnect-backend/internal/features/users/middleware"
	users_services "itconnect-backend/internal/features/users/services"
	workspaces_dto "itconnect-backend/internal/features/workspaces/dto"
	test_utils "itconnect-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	return router
}

func CreateTestWorkspace(
	name string,
	owner *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *workspaces_dto.WorkspaceResponseDTO {
	request := workspaces_dto.CreateWorkspaceRequestDTO{Name: name}
	w := test_utils.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/workspaces",
		"Bearer "+owner.Token,
		request,
	)

	if w.Code != http.StatusCreated {
		panic(
			fmt.Sprintf(
				"Failed to create workspace. Status: %d, Body: %s",
				w.Code,
				w.Body.String(),
			),
		)
	}

	var response workspaces_dto.WorkspaceResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func AddMemberToWorkspace(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	role users_enums.WorkspaceRole,
	ownerToken string,
	router *gin.Engine,
) {
	request := workspaces_dto.AddMemberRequestDTO{
		UserID: memberUserID,
		Role:   role,
	}

	w := test_utils.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/workspaces/"+workspaceID.String()+"/members",
		"Bearer "+ownerToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to add member to workspace via API: " + w.Body.String())
	}
}

func GetWorkspace(
	workspaceID uuid.UUID,
	requesterToken string,
	router *gin.Engine,
) *workspaces_dto.WorkspaceResponseDTO {
	w := test_utils.MakeAPIRequest(
		router,
		"GET",
		"/api/v1/workspaces/"+workspaceID.String(),
		"Bearer "+requesterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to get workspace via API: " + w.Body.String())
	}

	var response workspaces_dto.WorkspaceResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func DeleteWorkspace(
	workspaceID uuid.UUID,
	deleterToken string,
	router *gin.Engine,
) {
	w := test_utils.MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/workspaces/"+workspaceID.String(),
		"Bearer "+deleterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to delete workspace via API: " + w.Body.String())
	}
}
