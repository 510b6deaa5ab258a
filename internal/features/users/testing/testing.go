package users_testing

import (
	"fmt"

	users_dto "itconnect-backend/internal/features/users/dto"
	users_services "itconnect-backend/internal/features/users/services"

	"github.com/google/uuid"
)

// CreateTestUser registers a fresh user and returns its sign in response
// with a valid access token.
func CreateTestUser() *users_dto.SignInResponseDTO {
	suffix := uuid.New().String()[:8]

	request := &users_dto.SignUpRequestDTO{
		Username: "testuser-" + suffix,
		Email:    fmt.Sprintf("test-%s@example.com", suffix),
		Password: "test-password-123",
	}

	response, err := users_services.GetUserService().SignUp(request)
	if err != nil {
		panic("Failed to create test user: " + err.Error())
	}

	return response
}
