package users_controllers

import (
	users_services "itconnect-backend/internal/features/users/services"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	users_services.GetUserService(),
	rate.NewLimiter(rate.Limit(3), 3), // 3 rps with 3 burst
}

func GetUserController() *UserController {
	return userController
}
